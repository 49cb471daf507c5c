package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"fitlog/internal/domain/exercise"
)

type ExerciseRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewExerciseRepository(pool *pgxpool.Pool, log *slog.Logger) *ExerciseRepository {
	return &ExerciseRepository{
		pool: pool,
		log:  log.With("component", "exercise_repository"),
	}
}

const exerciseColumns = `
	id, user_id, workout_id, name, sets, reps, weight, rest_seconds, media_url, muscle_group`

func (r *ExerciseRepository) List(ctx context.Context, userID int) ([]exercise.Exercise, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT"+exerciseColumns+" FROM exercises WHERE user_id = $1 ORDER BY workout_id, id", userID)
	if err != nil {
		r.log.Error("failed to list exercises", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()
	return r.scanExercises(rows)
}

func (r *ExerciseRepository) ListByWorkout(ctx context.Context, userID, workoutID int) ([]exercise.Exercise, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT"+exerciseColumns+" FROM exercises WHERE user_id = $1 AND workout_id = $2 ORDER BY id",
		userID, workoutID)
	if err != nil {
		r.log.Error("failed to list workout exercises",
			"user_id", userID, "workout_id", workoutID, "error", err)
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	defer rows.Close()
	return r.scanExercises(rows)
}

func (r *ExerciseRepository) Get(ctx context.Context, userID, exerciseID int) (*exercise.Exercise, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT"+exerciseColumns+" FROM exercises WHERE id = $1 AND user_id = $2", exerciseID, userID)

	e, err := scanExercise(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, exercise.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get exercise", "exercise_id", exerciseID, "error", err)
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, e *exercise.Exercise) (int, error) {
	const query = `
		INSERT INTO exercises (user_id, workout_id, name, sets, reps, weight,
		                       rest_seconds, media_url, muscle_group)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, e.UserID, e.WorkoutID, e.Name, e.Sets, e.Reps,
		e.Weight, e.RestSeconds, e.MediaURL, e.MuscleGroup).Scan(&e.ID)
	if err != nil {
		r.log.Error("failed to create exercise", "user_id", e.UserID, "error", err)
		return 0, fmt.Errorf("create exercise: %w", err)
	}
	return e.ID, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, e *exercise.Exercise) error {
	const query = `
		UPDATE exercises
		SET workout_id = $1, name = $2, sets = $3, reps = $4, weight = $5,
		    rest_seconds = $6, media_url = $7, muscle_group = $8
		WHERE id = $9 AND user_id = $10`

	tag, err := r.pool.Exec(ctx, query, e.WorkoutID, e.Name, e.Sets, e.Reps, e.Weight,
		e.RestSeconds, e.MediaURL, e.MuscleGroup, e.ID, e.UserID)
	if err != nil {
		r.log.Error("failed to update exercise", "exercise_id", e.ID, "error", err)
		return fmt.Errorf("update exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return exercise.ErrNotFound
	}
	return nil
}

func (r *ExerciseRepository) Delete(ctx context.Context, userID, exerciseID int) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM exercises WHERE id = $1 AND user_id = $2", exerciseID, userID)
	if err != nil {
		r.log.Error("failed to delete exercise", "exercise_id", exerciseID, "error", err)
		return fmt.Errorf("delete exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return exercise.ErrNotFound
	}
	return nil
}

func (r *ExerciseRepository) scanExercises(rows pgx.Rows) ([]exercise.Exercise, error) {
	var exercises []exercise.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, *e)
	}
	return exercises, rows.Err()
}

func scanExercise(row pgx.Row) (*exercise.Exercise, error) {
	var e exercise.Exercise
	err := row.Scan(&e.ID, &e.UserID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps,
		&e.Weight, &e.RestSeconds, &e.MediaURL, &e.MuscleGroup)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
