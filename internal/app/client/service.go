package client

import (
	"context"

	"golang.org/x/exp/slog"
)

// The services sit between the state containers and the offline-aware
// APIs. A service never fails a read outright while the cache holds
// something usable: when the API layer returns an error the service makes
// one more attempt against the local store before giving up.

type WorkoutService struct {
	api   *WorkoutAPI
	store *LocalStore
	log   *slog.Logger
}

func NewWorkoutService(api *WorkoutAPI, store *LocalStore, log *slog.Logger) *WorkoutService {
	return &WorkoutService{api: api, store: store, log: log.With("component", "workout_service")}
}

func (s *WorkoutService) GetAll(ctx context.Context) ([]Workout, ListStatus, error) {
	items, status, err := s.api.GetAll(ctx)
	if err == nil {
		return items, status, nil
	}
	cached, cacheErr := s.store.ListWorkouts(ctx)
	if cacheErr == nil && len(cached) > 0 {
		s.log.Warn("serving workouts from cache", "error", err)
		return cached, ListStatus{FromCache: true, Warning: cacheWarningPrefix + err.Error()}, nil
	}
	return nil, ListStatus{}, err
}

func (s *WorkoutService) Create(ctx context.Context, w Workout) (Workout, error) {
	return s.api.Create(ctx, w)
}

func (s *WorkoutService) Update(ctx context.Context, w Workout) (Workout, error) {
	return s.api.Update(ctx, w)
}

func (s *WorkoutService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, id)
}

// UpdateCache writes a record to the local store without touching the
// network. The state containers use it to persist optimistic rows.
func (s *WorkoutService) UpdateCache(ctx context.Context, w Workout) error {
	return s.store.SaveWorkout(ctx, w)
}

func (s *WorkoutService) DeleteFromCache(ctx context.Context, id string) error {
	return s.store.DeleteWorkout(ctx, id)
}

type ExerciseService struct {
	api   *ExerciseAPI
	store *LocalStore
	log   *slog.Logger
}

func NewExerciseService(api *ExerciseAPI, store *LocalStore, log *slog.Logger) *ExerciseService {
	return &ExerciseService{api: api, store: store, log: log.With("component", "exercise_service")}
}

func (s *ExerciseService) GetAll(ctx context.Context, workoutID string) ([]Exercise, ListStatus, error) {
	items, status, err := s.api.GetAll(ctx, workoutID)
	if err == nil {
		return items, status, nil
	}
	cached, cacheErr := s.store.ListExercises(ctx, workoutID)
	if cacheErr == nil && len(cached) > 0 {
		s.log.Warn("serving exercises from cache", "error", err)
		return cached, ListStatus{FromCache: true, Warning: cacheWarningPrefix + err.Error()}, nil
	}
	return nil, ListStatus{}, err
}

func (s *ExerciseService) Create(ctx context.Context, e Exercise) (Exercise, error) {
	return s.api.Create(ctx, e)
}

func (s *ExerciseService) BulkUpdate(ctx context.Context, exercises []Exercise) ([]Exercise, error) {
	return s.api.BulkUpdate(ctx, exercises)
}

func (s *ExerciseService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, id)
}

func (s *ExerciseService) UpdateCache(ctx context.Context, e Exercise) error {
	return s.store.SaveExercise(ctx, e)
}

func (s *ExerciseService) DeleteFromCache(ctx context.Context, id string) error {
	return s.store.DeleteExercise(ctx, id)
}

type MeasurementService struct {
	entity Entity
	api    *MeasurementAPI
	store  *LocalStore
	log    *slog.Logger
}

func NewMeasurementService(entity Entity, api *MeasurementAPI, store *LocalStore, log *slog.Logger) *MeasurementService {
	return &MeasurementService{
		entity: entity,
		api:    api,
		store:  store,
		log:    log.With("component", string(entity)+"_service"),
	}
}

func (s *MeasurementService) Entity() Entity {
	return s.entity
}

func (s *MeasurementService) GetAll(ctx context.Context) ([]MeasurementEntry, ListStatus, error) {
	items, status, err := s.api.GetAll(ctx)
	if err == nil {
		return items, status, nil
	}
	cached, cacheErr := s.store.ListMeasurements(ctx, s.entity)
	if cacheErr == nil && len(cached) > 0 {
		s.log.Warn("serving measurements from cache", "error", err)
		return cached, ListStatus{FromCache: true, Warning: cacheWarningPrefix + err.Error()}, nil
	}
	return nil, ListStatus{}, err
}

func (s *MeasurementService) Create(ctx context.Context, m MeasurementEntry) (MeasurementEntry, error) {
	return s.api.Create(ctx, m)
}

func (s *MeasurementService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, id)
}

func (s *MeasurementService) UpdateCache(ctx context.Context, m MeasurementEntry) error {
	return s.store.SaveMeasurement(ctx, s.entity, m)
}

func (s *MeasurementService) DeleteFromCache(ctx context.Context, id string) error {
	return s.store.DeleteMeasurement(ctx, s.entity, id)
}
