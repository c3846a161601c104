package models

// Course tags one slot of the four-course menu board.
type Course string

const (
	CourseSoup      Course = "soup"
	CourseLunch     Course = "lunch"
	CourseDinner    Course = "dinner"
	CourseVegetable Course = "vegetable"
)

// Courses lists the board slots in display order.
var Courses = []Course{CourseSoup, CourseLunch, CourseDinner, CourseVegetable}

// BoardItem is one course entry on the menu board.
type BoardItem struct {
	// Name is the dish name, trimmed. May be empty when the slot is
	// unset for the day.
	Name string

	// PriceCents is the non-negative price in minor units.
	PriceCents int64
}

// MenuBoard is the four-course daily board, the older of the two
// record shapes. One row exists per SpecialDate; saves overwrite the
// whole row.
type MenuBoard struct {
	SpecialDate  string
	Items        map[Course]BoardItem
	CurrencyCode string

	CreatedAt int64
	UpdatedAt int64
}

// EmptyBoard returns a board with all four slots present and unset,
// the shape read back when no row exists for a date.
func EmptyBoard(date string) *MenuBoard {
	items := make(map[Course]BoardItem, len(Courses))
	for _, c := range Courses {
		items[c] = BoardItem{}
	}
	return &MenuBoard{
		SpecialDate:  date,
		Items:        items,
		CurrencyCode: "USD",
	}
}
