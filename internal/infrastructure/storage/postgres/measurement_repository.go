package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"fitlog/internal/domain/measurement"
)

// MeasurementRepository stores weight and bodyfat series in one table keyed
// by kind.
type MeasurementRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewMeasurementRepository(pool *pgxpool.Pool, log *slog.Logger) *MeasurementRepository {
	return &MeasurementRepository{
		pool: pool,
		log:  log.With("component", "measurement_repository"),
	}
}

func (r *MeasurementRepository) List(ctx context.Context, userID int, kind measurement.Kind) ([]measurement.Entry, error) {
	const query = `
		SELECT id, user_id, kind, to_char(date, 'YYYY-MM-DD'), value
		FROM measurements
		WHERE user_id = $1 AND kind = $2
		ORDER BY date, id`

	rows, err := r.pool.Query(ctx, query, userID, string(kind))
	if err != nil {
		r.log.Error("failed to list measurements", "user_id", userID, "kind", kind, "error", err)
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	var entries []measurement.Entry
	for rows.Next() {
		var e measurement.Entry
		var kindStr string
		if err := rows.Scan(&e.ID, &e.UserID, &kindStr, &e.Date, &e.Value); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		e.Kind = measurement.Kind(kindStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Create inserts an entry, replacing any entry the series already has for
// the same day.
func (r *MeasurementRepository) Create(ctx context.Context, e *measurement.Entry) (int, error) {
	const query = `
		INSERT INTO measurements (user_id, kind, date, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, kind, date) DO UPDATE SET value = EXCLUDED.value
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, e.UserID, string(e.Kind), e.Date, e.Value).Scan(&e.ID)
	if err != nil {
		r.log.Error("failed to create measurement", "user_id", e.UserID, "kind", e.Kind, "error", err)
		return 0, fmt.Errorf("create measurement: %w", err)
	}
	return e.ID, nil
}

func (r *MeasurementRepository) Delete(ctx context.Context, userID int, kind measurement.Kind, entryID int) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM measurements WHERE id = $1 AND user_id = $2 AND kind = $3",
		entryID, userID, string(kind))
	if err != nil {
		r.log.Error("failed to delete measurement", "entry_id", entryID, "error", err)
		return fmt.Errorf("delete measurement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return measurement.ErrNotFound
	}
	return nil
}
