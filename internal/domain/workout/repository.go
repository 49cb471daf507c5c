package workout

import "context"

type Repository interface {
	List(ctx context.Context, userID int) ([]Workout, error)
	Get(ctx context.Context, userID, workoutID int) (*Workout, error)
	Create(ctx context.Context, w *Workout) (int, error)
	Update(ctx context.Context, w *Workout) error
	Delete(ctx context.Context, userID, workoutID int) error
}
