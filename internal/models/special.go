package models

// DateLayout is the civil-date format used for special_date keys.
const DateLayout = "2006-01-02"

// DailySpecial represents the rich single-item daily special.
// At most one exists per SpecialDate; saves overwrite the whole row.
type DailySpecial struct {
	// ID is the unique identifier for the row (UUID format).
	ID string

	// SpecialDate is the civil date this special applies to, in
	// DateLayout form. It is the unique key for upserts.
	SpecialDate string

	// Title is the dish name shown to guests.
	Title string

	// Description is the longer guest-facing text.
	Description string

	// PriceCents is the price in the currency's minor units.
	// Validation guarantees it derives from a strictly positive
	// major-unit input.
	PriceCents int64

	// CurrencyCode is the 3-letter uppercase ISO code, "USD" by default.
	CurrencyCode string

	// Emoji is an optional decorative marker for the dish.
	Emoji string

	// Highlights are short selling points, one per line on the admin
	// form. Order is preserved; lines are trimmed and never empty.
	Highlights []string

	// CreatedAt and UpdatedAt are Unix timestamps set by the store.
	CreatedAt int64
	UpdatedAt int64
}
