// Package postgres provides the production storage.Store backed by
// the hosted PostgreSQL database, accessed with the service-role DSN.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlane/specials/internal/models"
	"github.com/harborlane/specials/internal/storage"
)

// Ensure PostgresStore implements storage.Store
var _ storage.Store = (*PostgresStore)(nil)

// PostgresStore implements storage.Store using a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// schema mirrors the SQLite migrations; CREATE IF NOT EXISTS is a
// no-op against an already-provisioned hosted database.
const schema = `
CREATE TABLE IF NOT EXISTS daily_specials (
    id UUID PRIMARY KEY,
    special_date DATE NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    price_cents BIGINT NOT NULL,
    currency_code TEXT NOT NULL DEFAULT 'USD',
    emoji TEXT NOT NULL DEFAULT '',
    highlights TEXT[] NOT NULL DEFAULT '{}',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_special_boards (
    id UUID PRIMARY KEY,
    special_date DATE NOT NULL UNIQUE,
    soup_name TEXT NOT NULL DEFAULT '',
    soup_price BIGINT NOT NULL DEFAULT 0,
    lunch_name TEXT NOT NULL DEFAULT '',
    lunch_price BIGINT NOT NULL DEFAULT 0,
    dinner_name TEXT NOT NULL DEFAULT '',
    dinner_price BIGINT NOT NULL DEFAULT 0,
    vegetable_name TEXT NOT NULL DEFAULT '',
    vegetable_price BIGINT NOT NULL DEFAULT 0,
    currency_code TEXT NOT NULL DEFAULT 'USD',
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);
`

// New connects to the database at databaseURL and ensures the schema
// exists.
func New(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// UpsertSpecial inserts or overwrites the record for its date.
func (s *PostgresStore) UpsertSpecial(ctx context.Context, special *models.DailySpecial) error {
	now := time.Now().Unix()
	highlights := special.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_specials
			(id, special_date, title, description, price_cents, currency_code, emoji, highlights, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (special_date) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			price_cents = excluded.price_cents,
			currency_code = excluded.currency_code,
			emoji = excluded.emoji,
			highlights = excluded.highlights,
			updated_at = excluded.updated_at
	`,
		uuid.New().String(),
		special.SpecialDate,
		special.Title,
		special.Description,
		special.PriceCents,
		special.CurrencyCode,
		special.Emoji,
		highlights,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily special: %w", err)
	}
	return nil
}

// GetSpecialByDate retrieves the record for a civil date.
func (s *PostgresStore) GetSpecialByDate(ctx context.Context, date string) (*models.DailySpecial, error) {
	return s.querySpecial(ctx, `
		SELECT id, special_date::text, title, description, price_cents, currency_code, emoji, highlights, created_at, updated_at
		FROM daily_specials
		WHERE special_date = $1
	`, date)
}

// GetLatestSpecial retrieves the most recent record by date, then
// update time.
func (s *PostgresStore) GetLatestSpecial(ctx context.Context) (*models.DailySpecial, error) {
	return s.querySpecial(ctx, `
		SELECT id, special_date::text, title, description, price_cents, currency_code, emoji, highlights, created_at, updated_at
		FROM daily_specials
		ORDER BY special_date DESC, updated_at DESC
		LIMIT 1
	`)
}

func (s *PostgresStore) querySpecial(ctx context.Context, query string, args ...any) (*models.DailySpecial, error) {
	special := &models.DailySpecial{}
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&special.ID,
		&special.SpecialDate,
		&special.Title,
		&special.Description,
		&special.PriceCents,
		&special.CurrencyCode,
		&special.Emoji,
		&special.Highlights,
		&special.CreatedAt,
		&special.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily special: %w", err)
	}
	return special, nil
}

// UpsertBoard inserts or overwrites the board row for its date.
func (s *PostgresStore) UpsertBoard(ctx context.Context, board *models.MenuBoard) error {
	now := time.Now().Unix()
	currency := board.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_special_boards
			(id, special_date,
			 soup_name, soup_price, lunch_name, lunch_price,
			 dinner_name, dinner_price, vegetable_name, vegetable_price,
			 currency_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
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
	`,
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
func (s *PostgresStore) GetBoard(ctx context.Context, date string) (*models.MenuBoard, error) {
	board := models.EmptyBoard(date)
	var soup, lunch, dinner, vegetable models.BoardItem

	err := s.pool.QueryRow(ctx, `
		SELECT special_date::text,
		       soup_name, soup_price, lunch_name, lunch_price,
		       dinner_name, dinner_price, vegetable_name, vegetable_price,
		       currency_code, created_at, updated_at
		FROM daily_special_boards
		WHERE special_date = $1
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
	if errors.Is(err, pgx.ErrNoRows) {
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
