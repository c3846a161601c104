package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist. The board table keeps
// the legacy per-course column names so rows written by the previous
// system keep reading back.
const schema = `
CREATE TABLE IF NOT EXISTS daily_specials (
    id TEXT PRIMARY KEY,
    special_date TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    price_cents INTEGER NOT NULL,
    currency_code TEXT NOT NULL DEFAULT 'USD',
    emoji TEXT NOT NULL DEFAULT '',
    highlights TEXT NOT NULL DEFAULT '[]',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_special_boards (
    id TEXT PRIMARY KEY,
    special_date TEXT NOT NULL UNIQUE,
    soup_name TEXT NOT NULL DEFAULT '',
    soup_price INTEGER NOT NULL DEFAULT 0,
    lunch_name TEXT NOT NULL DEFAULT '',
    lunch_price INTEGER NOT NULL DEFAULT 0,
    dinner_name TEXT NOT NULL DEFAULT '',
    dinner_price INTEGER NOT NULL DEFAULT 0,
    vegetable_name TEXT NOT NULL DEFAULT '',
    vegetable_price INTEGER NOT NULL DEFAULT 0,
    currency_code TEXT NOT NULL DEFAULT 'USD',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_daily_specials_latest
    ON daily_specials(special_date DESC, updated_at DESC);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
