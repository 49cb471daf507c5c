package workout

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

const (
	maxNameLen        = 120
	maxDescriptionLen = 2000
)

type Servicer interface {
	List(ctx context.Context, userID int) ([]Workout, error)
	Get(ctx context.Context, userID, workoutID int) (*Workout, error)
	Create(ctx context.Context, userID int, name, description string) (*Workout, error)
	Update(ctx context.Context, userID, workoutID int, name, description string) (*Workout, error)
	Delete(ctx context.Context, userID, workoutID int) error
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

func (s *Service) List(ctx context.Context, userID int) ([]Workout, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, workoutID int) (*Workout, error) {
	return s.repo.Get(ctx, userID, workoutID)
}

func (s *Service) Create(ctx context.Context, userID int, name, description string) (*Workout, error) {
	name = strings.TrimSpace(name)
	if err := validate(name, description); err != nil {
		s.log.Debug("workout validation failed", "user_id", userID, "error", err)
		return nil, err
	}

	w := &Workout{UserID: userID, Name: name, Description: description}
	id, err := s.repo.Create(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	w.ID = id
	return w, nil
}

func (s *Service) Update(ctx context.Context, userID, workoutID int, name, description string) (*Workout, error) {
	name = strings.TrimSpace(name)
	if err := validate(name, description); err != nil {
		return nil, err
	}

	w := &Workout{ID: workoutID, UserID: userID, Name: name, Description: description}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, workoutID)
}

func (s *Service) Delete(ctx context.Context, userID, workoutID int) error {
	return s.repo.Delete(ctx, userID, workoutID)
}

func validate(name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, maxNameLen)
	}
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, maxDescriptionLen)
	}
	return nil
}
