package exercise

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

const maxNameLen = 120

type Servicer interface {
	List(ctx context.Context, userID, workoutID int) ([]Exercise, error)
	Create(ctx context.Context, e Exercise) (*Exercise, error)
	BulkUpdate(ctx context.Context, userID int, exercises []Exercise) ([]Exercise, error)
	Delete(ctx context.Context, userID, exerciseID int) error
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

// List returns the user's exercises, optionally narrowed to one workout
// when workoutID is positive.
func (s *Service) List(ctx context.Context, userID, workoutID int) ([]Exercise, error) {
	if workoutID > 0 {
		return s.repo.ListByWorkout(ctx, userID, workoutID)
	}
	return s.repo.List(ctx, userID)
}

func (s *Service) Create(ctx context.Context, e Exercise) (*Exercise, error) {
	e.Name = strings.TrimSpace(e.Name)
	if err := validate(e); err != nil {
		s.log.Debug("exercise validation failed", "user_id", e.UserID, "error", err)
		return nil, err
	}

	id, err := s.repo.Create(ctx, &e)
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	e.ID = id
	return &e, nil
}

// BulkUpdate rewrites the given exercises in one call. All rows must pass
// validation before any row is written.
func (s *Service) BulkUpdate(ctx context.Context, userID int, exercises []Exercise) ([]Exercise, error) {
	for i := range exercises {
		exercises[i].UserID = userID
		exercises[i].Name = strings.TrimSpace(exercises[i].Name)
		if err := validate(exercises[i]); err != nil {
			return nil, err
		}
	}

	out := make([]Exercise, 0, len(exercises))
	for _, e := range exercises {
		if err := s.repo.Update(ctx, &e); err != nil {
			return nil, fmt.Errorf("update exercise %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, userID, exerciseID int) error {
	return s.repo.Delete(ctx, userID, exerciseID)
}

func validate(e Exercise) error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(e.Name) > maxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, maxNameLen)
	}
	if e.WorkoutID <= 0 {
		return fmt.Errorf("%w: workoutId is required", ErrInvalidInput)
	}
	if e.Sets < 1 || e.Reps < 1 {
		return fmt.Errorf("%w: sets and reps must be at least 1", ErrInvalidInput)
	}
	if e.Weight < 0 || e.RestSeconds < 0 {
		return fmt.Errorf("%w: weight and rest must not be negative", ErrInvalidInput)
	}
	return nil
}
