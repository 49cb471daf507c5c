package exercise

import "context"

type Repository interface {
	List(ctx context.Context, userID int) ([]Exercise, error)
	ListByWorkout(ctx context.Context, userID, workoutID int) ([]Exercise, error)
	Get(ctx context.Context, userID, exerciseID int) (*Exercise, error)
	Create(ctx context.Context, e *Exercise) (int, error)
	Update(ctx context.Context, e *Exercise) error
	Delete(ctx context.Context, userID, exerciseID int) error
}
