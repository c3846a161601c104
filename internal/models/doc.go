// Package models defines the core domain models for the specials
// admin backend.
//
// # Two Record Shapes
//
// The restaurant's daily-special data historically exists in two
// shapes, and both remain writable:
//   - DailySpecial: the rich single record shown on the guest-facing
//     page (title, description, one price, highlight lines)
//   - MenuBoard: the older four-course board (soup, lunch, dinner,
//     vegetable), each course a name/price pair
//
// Rather than carrying eight flat name/price fields for the board,
// its items are tagged by Course. The storage layer maps the tagged
// form back onto the legacy column layout so existing rows keep
// reading back unchanged.
//
// # Design Principles
//
//  1. Prices are integer minor units (cents). Major-unit parsing and
//     display live in the money package.
//  2. Dates are civil dates ("2006-01-02" strings), never instants;
//     at most one row exists per date per shape.
//  3. CreatedAt/UpdatedAt are Unix timestamps owned by the storage
//     layer. Application code never sets them.
package models
