// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/harborlane/specials/internal/models"
)

// ErrNotFound is returned when no row exists for the requested key.
// Callers treat it as a normal empty result, never a failure.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for daily-special persistence.
// This abstraction allows swapping storage backends (the hosted
// PostgreSQL database in production, SQLite for development and
// tests) without changing the service layer.
type Store interface {
	// UpsertSpecial atomically inserts or updates the rich record
	// keyed on SpecialDate. All listed fields are overwritten on
	// conflict; CreatedAt/UpdatedAt are owned by the store. No retry.
	UpsertSpecial(ctx context.Context, special *models.DailySpecial) error

	// GetSpecialByDate retrieves the record for a civil date, or
	// ErrNotFound.
	GetSpecialByDate(ctx context.Context, date string) (*models.DailySpecial, error)

	// GetLatestSpecial retrieves the most recent record ordered by
	// special_date descending then updated_at descending, or
	// ErrNotFound when the table is empty.
	GetLatestSpecial(ctx context.Context) (*models.DailySpecial, error)

	// UpsertBoard atomically inserts or updates the four-course board
	// keyed on SpecialDate, same overwrite semantics as UpsertSpecial.
	UpsertBoard(ctx context.Context, board *models.MenuBoard) error

	// GetBoard retrieves the board for a civil date, or ErrNotFound.
	GetBoard(ctx context.Context, date string) (*models.MenuBoard, error)

	// Close releases any resources held by the store.
	Close() error
}
