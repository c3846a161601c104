// Package validate holds the one shared validation routine for
// daily-special submissions. Every save path (form action, board
// API) goes through this package, so the rules cannot drift between
// surfaces.
package validate

import (
	"errors"
	"strings"
	"time"

	"github.com/harborlane/specials/internal/models"
	"github.com/harborlane/specials/internal/money"
)

// Error is a user-correctable rejection of one field. Submissions
// failing validation never reach storage.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var errInvalidCurrency = errors.New("invalid currency code")

// RawSpecial is the untrusted form input for the rich single record.
type RawSpecial struct {
	SpecialDate  string
	Title        string
	Description  string
	PriceMajor   string
	CurrencyCode string
	Emoji        string
	Highlights   string
}

// Special checks a raw submission and returns the normalized record.
// Checks run in order and the first failure wins.
func Special(raw RawSpecial) (*models.DailySpecial, error) {
	if strings.TrimSpace(raw.SpecialDate) == "" {
		return nil, &Error{Field: "special_date", Message: "A special date is required."}
	}
	date, err := parseDate(raw.SpecialDate)
	if err != nil {
		return nil, &Error{Field: "special_date", Message: "Special date is invalid."}
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return nil, &Error{Field: "title", Message: "Title is required."}
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return nil, &Error{Field: "description", Message: "Description is required."}
	}

	priceCents, err := money.ParseMajor(raw.PriceMajor)
	if err != nil {
		return nil, &Error{Field: "price_major", Message: "Price must be a positive number."}
	}

	code, err := currencyCode(raw.CurrencyCode)
	if err != nil {
		return nil, &Error{Field: "currency_code", Message: "Currency code must be three letters."}
	}

	return &models.DailySpecial{
		SpecialDate:  date,
		Title:        title,
		Description:  description,
		PriceCents:   priceCents,
		CurrencyCode: code,
		Emoji:        strings.TrimSpace(raw.Emoji),
		Highlights:   Highlights(raw.Highlights),
	}, nil
}

// RawBoard is the untrusted JSON input for the four-course board.
// Name fields are pointers so an absent field is distinguishable
// from an empty one; prices are major units as sent on the wire and
// default to 0 when absent.
type RawBoard struct {
	SoupName       *string  `json:"soup_name"`
	SoupPrice      *float64 `json:"soup_price"`
	LunchName      *string  `json:"lunch_name"`
	LunchPrice     *float64 `json:"lunch_price"`
	DinnerName     *string  `json:"dinner_name"`
	DinnerPrice    *float64 `json:"dinner_price"`
	VegetableName  *string  `json:"vegetable_name"`
	VegetablePrice *float64 `json:"vegetable_price"`
}

// Board checks a raw board submission and returns the normalized
// tagged board (without a date; the caller keys it to today).
func Board(raw RawBoard) (*models.MenuBoard, error) {
	slots := []struct {
		course models.Course
		name   *string
		price  *float64
	}{
		{models.CourseSoup, raw.SoupName, raw.SoupPrice},
		{models.CourseLunch, raw.LunchName, raw.LunchPrice},
		{models.CourseDinner, raw.DinnerName, raw.DinnerPrice},
		{models.CourseVegetable, raw.VegetableName, raw.VegetablePrice},
	}

	for _, slot := range slots {
		if slot.name == nil {
			return nil, &Error{Field: string(slot.course) + "_name", Message: "All name fields are required"}
		}
	}

	board := models.EmptyBoard("")
	for _, slot := range slots {
		var major float64
		if slot.price != nil {
			major = *slot.price
		}
		cents, err := money.RoundMajor(major)
		if err != nil {
			return nil, &Error{Field: string(slot.course) + "_price", Message: "Prices are out of range"}
		}
		if cents < 0 {
			return nil, &Error{Field: string(slot.course) + "_price", Message: "Prices must be non-negative"}
		}
		board.Items[slot.course] = models.BoardItem{
			Name:       strings.TrimSpace(*slot.name),
			PriceCents: cents,
		}
	}
	return board, nil
}

// Highlights splits textarea input into trimmed, non-empty lines,
// preserving order.
func Highlights(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return []string{}
	}
	var lines []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if lines == nil {
		return []string{}
	}
	return lines
}

func parseDate(input string) (string, error) {
	input = strings.TrimSpace(input)
	if t, err := time.Parse(models.DateLayout, input); err == nil {
		return t.Format(models.DateLayout), nil
	}
	// Datetime inputs arrive with a time component; keep the date part.
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format(models.DateLayout), nil
		}
	}
	return "", errors.New("unrecognized date")
}

func currencyCode(input string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(input))
	if code == "" {
		return "USD", nil
	}
	if len(code) != 3 {
		return "", errInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", errInvalidCurrency
		}
	}
	return code, nil
}
