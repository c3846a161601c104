// Package money converts between user-entered major-unit prices and
// the integer minor-unit (cents) representation stored everywhere
// else in the system.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidAmount indicates a price input that is not a finite,
// strictly positive number, or is too large to represent in minor
// units.
var ErrInvalidAmount = errors.New("price must be a positive number")

// maxMajor bounds major-unit amounts so the cents conversion cannot
// overflow int64.
const maxMajor = float64(math.MaxInt64 / 100)

// ParseMajor parses a major-unit price string ("26.00") into minor
// units (2600). Non-finite, non-positive and out-of-range inputs are
// rejected.
func ParseMajor(text string) (int64, error) {
	major, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(major) || math.IsInf(major, 0) || major <= 0 {
		return 0, ErrInvalidAmount
	}
	if major > maxMajor {
		return 0, ErrInvalidAmount
	}
	return int64(math.Round(major * 100)), nil
}

// RoundMajor converts a major-unit amount that is already numeric
// (the board API sends JSON numbers) into minor units. Unlike
// ParseMajor it allows zero and negative values; the board treats a
// missing price as 0 and rejects negatives itself.
func RoundMajor(major float64) (int64, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, ErrInvalidAmount
	}
	if major > maxMajor || major < -maxMajor {
		return 0, ErrInvalidAmount
	}
	return int64(math.Round(major * 100)), nil
}

// MajorUnits converts minor units back to a major-unit amount for
// API payloads.
func MajorUnits(cents int64) float64 {
	return float64(cents) / 100
}

// Currency units are parsed once per code and reused. This cache is
// an optimization, not a correctness requirement.
var (
	unitMu  sync.Mutex
	units   = make(map[string]currency.Unit)
	printer = message.NewPrinter(language.AmericanEnglish)
)

// Format renders a minor-unit amount for guest display using
// locale-aware currency formatting. Purely presentational; unknown
// codes fall back to "CODE 26.00".
func Format(cents int64, currencyCode string) string {
	unit, err := unitFor(currencyCode)
	if err != nil {
		return fmt.Sprintf("%s %.2f", currencyCode, MajorUnits(cents))
	}
	return printer.Sprint(currency.NarrowSymbol(unit.Amount(MajorUnits(cents))))
}

func unitFor(code string) (currency.Unit, error) {
	unitMu.Lock()
	defer unitMu.Unlock()

	if unit, ok := units[code]; ok {
		return unit, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, err
	}
	units[code] = unit
	return unit, nil
}
