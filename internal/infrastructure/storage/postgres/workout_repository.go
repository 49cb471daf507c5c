package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"fitlog/internal/domain/workout"
)

type WorkoutRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewWorkoutRepository(pool *pgxpool.Pool, log *slog.Logger) *WorkoutRepository {
	return &WorkoutRepository{
		pool: pool,
		log:  log.With("component", "workout_repository"),
	}
}

func (r *WorkoutRepository) List(ctx context.Context, userID int) ([]workout.Workout, error) {
	const query = `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM workouts
		WHERE user_id = $1
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list workouts", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []workout.Workout
	for rows.Next() {
		var w workout.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (r *WorkoutRepository) Get(ctx context.Context, userID, workoutID int) (*workout.Workout, error) {
	const query = `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM workouts
		WHERE id = $1 AND user_id = $2`

	var w workout.Workout
	err := r.pool.QueryRow(ctx, query, workoutID, userID).
		Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workout.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get workout", "workout_id", workoutID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return &w, nil
}

func (r *WorkoutRepository) Create(ctx context.Context, w *workout.Workout) (int, error) {
	const query = `
		INSERT INTO workouts (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, w.UserID, w.Name, w.Description).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create workout", "user_id", w.UserID, "error", err)
		return 0, fmt.Errorf("create workout: %w", err)
	}
	return w.ID, nil
}

func (r *WorkoutRepository) Update(ctx context.Context, w *workout.Workout) error {
	const query = `
		UPDATE workouts
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3 AND user_id = $4`

	tag, err := r.pool.Exec(ctx, query, w.Name, w.Description, w.ID, w.UserID)
	if err != nil {
		r.log.Error("failed to update workout", "workout_id", w.ID, "error", err)
		return fmt.Errorf("update workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, userID, workoutID int) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM workouts WHERE id = $1 AND user_id = $2", workoutID, userID)
	if err != nil {
		r.log.Error("failed to delete workout", "workout_id", workoutID, "error", err)
		return fmt.Errorf("delete workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}
