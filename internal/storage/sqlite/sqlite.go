// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface, used for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/harborlane/specials/internal/models"
	"github.com/harborlane/specials/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertSpecial inserts or overwrites the record for its date.
func (s *SQLiteStore) UpsertSpecial(ctx context.Context, special *models.DailySpecial) error {
	highlights, err := json.Marshal(special.Highlights)
	if err != nil {
		return fmt.Errorf("failed to encode highlights: %w", err)
	}

	now := time.Now().Unix()
	query := `
		INSERT INTO daily_specials
			(id, special_date, title, description, price_cents, currency_code, emoji, highlights, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (special_date) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			price_cents = excluded.price_cents,
			currency_code = excluded.currency_code,
			emoji = excluded.emoji,
			highlights = excluded.highlights,
			updated_at = excluded.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		uuid.New().String(),
		special.SpecialDate,
		special.Title,
		special.Description,
		special.PriceCents,
		special.CurrencyCode,
		special.Emoji,
		string(highlights),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily special: %w", err)
	}
	return nil
}

// GetSpecialByDate retrieves the record for a civil date.
func (s *SQLiteStore) GetSpecialByDate(ctx context.Context, date string) (*models.DailySpecial, error) {
	return s.querySpecial(ctx, `
		SELECT id, special_date, title, description, price_cents, currency_code, emoji, highlights, created_at, updated_at
		FROM daily_specials
		WHERE special_date = ?
	`, date)
}

// GetLatestSpecial retrieves the most recent record by date, then
// update time.
func (s *SQLiteStore) GetLatestSpecial(ctx context.Context) (*models.DailySpecial, error) {
	return s.querySpecial(ctx, `
		SELECT id, special_date, title, description, price_cents, currency_code, emoji, highlights, created_at, updated_at
		FROM daily_specials
		ORDER BY special_date DESC, updated_at DESC
		LIMIT 1
	`)
}

func (s *SQLiteStore) querySpecial(ctx context.Context, query string, args ...any) (*models.DailySpecial, error) {
	special := &models.DailySpecial{}
	var highlights string

	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&special.ID,
		&special.SpecialDate,
		&special.Title,
		&special.Description,
		&special.PriceCents,
		&special.CurrencyCode,
		&special.Emoji,
		&highlights,
		&special.CreatedAt,
		&special.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily special: %w", err)
	}

	if err := json.Unmarshal([]byte(highlights), &special.Highlights); err != nil {
		return nil, fmt.Errorf("failed to decode highlights: %w", err)
	}
	return special, nil
}

// UpsertBoard inserts or overwrites the board row for its date,
// mapping the tagged items back onto the legacy columns.
func (s *SQLiteStore) UpsertBoard(ctx context.Context, board *models.MenuBoard) error {
	now := time.Now().Unix()
	query := `
		INSERT INTO daily_special_boards
			(id, special_date,
			 soup_name, soup_price, lunch_name, lunch_price,
			 dinner_name, dinner_price, vegetable_name, vegetable_price,
			 currency_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (special_date) DO UPDATE SET
			soup_name = excluded.soup_name,
			soup_price = excluded.soup_price,
			lunch_name = excluded.lunch_name,
			lunch_price = excluded.lunch_price,
			dinner_name = excluded.dinner_name,
			dinner_price = excluded.dinner_price,
			vegetable_name = excluded.vegetable_name,
			vegetable_price = excluded.vegetable_price,
			currency_code = excluded.currency_code,
			updated_at = excluded.updated_at
	`

	currency := board.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	_, err := s.db.ExecContext(ctx, query,
		uuid.New().String(),
		board.SpecialDate,
		board.Items[models.CourseSoup].Name,
		board.Items[models.CourseSoup].PriceCents,
		board.Items[models.CourseLunch].Name,
		board.Items[models.CourseLunch].PriceCents,
		board.Items[models.CourseDinner].Name,
		board.Items[models.CourseDinner].PriceCents,
		board.Items[models.CourseVegetable].Name,
		board.Items[models.CourseVegetable].PriceCents,
		currency,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert board: %w", err)
	}
	return nil
}

// GetBoard retrieves the board for a civil date.
func (s *SQLiteStore) GetBoard(ctx context.Context, date string) (*models.MenuBoard, error) {
	board := models.EmptyBoard(date)
	var soup, lunch, dinner, vegetable models.BoardItem

	err := s.db.QueryRowContext(ctx, `
		SELECT special_date,
		       soup_name, soup_price, lunch_name, lunch_price,
		       dinner_name, dinner_price, vegetable_name, vegetable_price,
		       currency_code, created_at, updated_at
		FROM daily_special_boards
		WHERE special_date = ?
	`, date).Scan(
		&board.SpecialDate,
		&soup.Name, &soup.PriceCents,
		&lunch.Name, &lunch.PriceCents,
		&dinner.Name, &dinner.PriceCents,
		&vegetable.Name, &vegetable.PriceCents,
		&board.CurrencyCode,
		&board.CreatedAt,
		&board.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	board.Items[models.CourseSoup] = soup
	board.Items[models.CourseLunch] = lunch
	board.Items[models.CourseDinner] = dinner
	board.Items[models.CourseVegetable] = vegetable
	return board, nil
}
