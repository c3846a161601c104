// Package service implements the application flows between the HTTP
// surface and storage: validate-then-upsert saves, the
// today-or-latest read, and admin login.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/harborlane/specials/internal/models"
	"github.com/harborlane/specials/internal/storage"
	"github.com/harborlane/specials/internal/validate"
)

// SpecialService owns the daily-special flows for both record shapes.
type SpecialService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSpecialService creates a service with the given storage backend.
func NewSpecialService(store storage.Store, logger *slog.Logger) *SpecialService {
	return &SpecialService{store: store, logger: logger}
}

// SaveSpecial validates a raw submission and upserts the record for
// its date. Validation failures never touch storage.
func (s *SpecialService) SaveSpecial(ctx context.Context, raw validate.RawSpecial) (*models.DailySpecial, error) {
	special, err := validate.Special(raw)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpsertSpecial(ctx, special); err != nil {
		s.logger.Error("Failed to save daily special", "date", special.SpecialDate, "error", err)
		return nil, err
	}

	s.logger.Info("Daily special saved", "date", special.SpecialDate, "title", special.Title)
	return special, nil
}

// CurrentOrLatest returns today's record when it exists, else the
// most recent prior record, else storage.ErrNotFound. The fallback
// drives form prefill and the guest page; it never writes anything.
func (s *SpecialService) CurrentOrLatest(ctx context.Context) (*models.DailySpecial, error) {
	today := todayDate()

	special, err := s.store.GetSpecialByDate(ctx, today)
	if err == nil {
		return special, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error("Failed to load today's special", "date", today, "error", err)
		return nil, err
	}

	special, err = s.store.GetLatestSpecial(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Failed to load latest special", "error", err)
		}
		return nil, err
	}
	return special, nil
}

// SaveBoard validates a raw board submission and upserts it for
// today.
func (s *SpecialService) SaveBoard(ctx context.Context, raw validate.RawBoard) error {
	board, err := validate.Board(raw)
	if err != nil {
		return err
	}
	board.SpecialDate = todayDate()
	board.CurrencyCode = "USD"

	if err := s.store.UpsertBoard(ctx, board); err != nil {
		s.logger.Error("Failed to save board", "date", board.SpecialDate, "error", err)
		return err
	}

	s.logger.Info("Board saved", "date", board.SpecialDate)
	return nil
}

// BoardForToday returns today's board, or all-empty defaults when no
// row exists yet.
func (s *SpecialService) BoardForToday(ctx context.Context) (*models.MenuBoard, error) {
	today := todayDate()

	board, err := s.store.GetBoard(ctx, today)
	if errors.Is(err, storage.ErrNotFound) {
		return models.EmptyBoard(today), nil
	}
	if err != nil {
		s.logger.Error("Failed to load board", "date", today, "error", err)
		return nil, err
	}
	return board, nil
}

func todayDate() string {
	return time.Now().Format(models.DateLayout)
}
