package measurement

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const dateLayout = "2006-01-02"

type Servicer interface {
	List(ctx context.Context, userID int, kind Kind) ([]Entry, error)
	Create(ctx context.Context, userID int, kind Kind, date string, value float64) (*Entry, error)
	Delete(ctx context.Context, userID int, kind Kind, entryID int) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func (s *Service) List(ctx context.Context, userID int, kind Kind) ([]Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	return s.repo.List(ctx, userID, kind)
}

func (s *Service) Create(ctx context.Context, userID int, kind Kind, date string, value float64) (*Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	normalized, err := normalizeDate(date)
	if err != nil {
		s.log.Debug("measurement date rejected", "date", date, "error", err)
		return nil, err
	}
	if value <= 0 {
		return nil, fmt.Errorf("%w: value must be positive", ErrInvalidInput)
	}
	if kind == KindBodyFat && value >= 100 {
		return nil, fmt.Errorf("%w: body fat percentage must be below 100", ErrInvalidInput)
	}

	e := &Entry{UserID: userID, Kind: kind, Date: normalized, Value: value}
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create measurement: %w", err)
	}
	e.ID = id
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID int, kind Kind, entryID int) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	return s.repo.Delete(ctx, userID, kind, entryID)
}

// normalizeDate accepts a plain day or an RFC3339 timestamp and returns the
// day. An empty date means today.
func normalizeDate(date string) (string, error) {
	if date == "" {
		return time.Now().UTC().Format(dateLayout), nil
	}
	if t, err := time.Parse(dateLayout, date); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.UTC().Format(dateLayout), nil
	}
	return "", fmt.Errorf("%w: unparseable date %q", ErrInvalidInput, date)
}
