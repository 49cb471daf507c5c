package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by the local store when a record does not exist.
var ErrNotFound = errors.New("record not found")

// LocalStore is the durable client-side cache: one table per entity plus the
// offline queue, its dead-letter table and the drain lease. All access goes
// through an explicit handle so tests and callers never share hidden state.
type LocalStore struct {
	db *sql.DB
}

func NewLocalStore(path string) (*LocalStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	store := &LocalStore{db: db}

	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store tables: %w", err)
	}

	return store, nil
}

func (s *LocalStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS workouts (
			id TEXT PRIMARY KEY,
			client_uid TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			pending INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS exercises (
			id TEXT PRIMARY KEY,
			client_uid TEXT NOT NULL DEFAULT '',
			workout_id TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			sets INTEGER NOT NULL DEFAULT 0,
			reps INTEGER NOT NULL DEFAULT 0,
			weight REAL NOT NULL DEFAULT 0,
			rest_seconds INTEGER NOT NULL DEFAULT 0,
			media_url TEXT NOT NULL DEFAULT '',
			muscle_group TEXT NOT NULL DEFAULT '',
			pending INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_exercises_workout ON exercises(workout_id);

		CREATE TABLE IF NOT EXISTS weight (
			id TEXT PRIMARY KEY,
			client_uid TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			value REAL NOT NULL,
			pending INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_weight_date ON weight(date);

		CREATE TABLE IF NOT EXISTS bodyfat (
			id TEXT PRIMARY KEY,
			client_uid TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			value REAL NOT NULL,
			pending INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_bodyfat_date ON bodyfat(date);

		CREATE TABLE IF NOT EXISTS queue (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			method TEXT NOT NULL,
			body BLOB,
			headers TEXT NOT NULL DEFAULT '{}',
			type TEXT NOT NULL,
			client_uid TEXT NOT NULL DEFAULT '',
			timestamp DATETIME NOT NULL,
			retry_count INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_queue_timestamp ON queue(timestamp);

		CREATE TABLE IF NOT EXISTS queue_dead (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			method TEXT NOT NULL,
			body BLOB,
			headers TEXT NOT NULL DEFAULT '{}',
			type TEXT NOT NULL,
			client_uid TEXT NOT NULL DEFAULT '',
			timestamp DATETIME NOT NULL,
			retry_count INTEGER NOT NULL DEFAULT 0,
			abandoned_at DATETIME NOT NULL,
			last_error TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS sync_lease (
			name TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			expires_at DATETIME NOT NULL
		);
	`)

	return err
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// ==================== Workouts ====================

func (s *LocalStore) SaveWorkout(ctx context.Context, w Workout) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workouts (id, client_uid, name, description, pending, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_uid = excluded.client_uid,
			name = excluded.name,
			description = excluded.description,
			pending = excluded.pending,
			updated_at = excluded.updated_at
	`, w.ID, w.ClientUID, w.Name, w.Description, w.Pending, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	return nil
}

func (s *LocalStore) GetWorkout(ctx context.Context, id string) (Workout, error) {
	var w Workout
	var pending int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, client_uid, name, description, pending FROM workouts WHERE id = ?
	`, id).Scan(&w.ID, &w.ClientUID, &w.Name, &w.Description, &pending)
	if errors.Is(err, sql.ErrNoRows) {
		return Workout{}, ErrNotFound
	}
	if err != nil {
		return Workout{}, fmt.Errorf("get workout: %w", err)
	}
	w.Pending = pending != 0
	return w, nil
}

func (s *LocalStore) ListWorkouts(ctx context.Context) ([]Workout, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_uid, name, description, pending FROM workouts ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var w Workout
		var pending int
		if err := rows.Scan(&w.ID, &w.ClientUID, &w.Name, &w.Description, &pending); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		w.Pending = pending != 0
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (s *LocalStore) DeleteWorkout(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM workouts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// ReplaceWorkouts swaps the full table contents for the given records in one
// transaction, preserving their order.
func (s *LocalStore) ReplaceWorkouts(ctx context.Context, workouts []Workout) error {
	return s.replace(ctx, "workouts", len(workouts), func(tx *sql.Tx, i int) error {
		w := workouts[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO workouts (id, client_uid, name, description, pending, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, w.ID, w.ClientUID, w.Name, w.Description, w.Pending, time.Now().UTC().Format(time.RFC3339))
		return err
	})
}

// ReconcileWorkout replaces an offline-created temporary record with its
// server-assigned counterpart, matched by the stable client uid.
func (s *LocalStore) ReconcileWorkout(ctx context.Context, uid string, w Workout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reconcile workout: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM workouts WHERE client_uid = ? AND id LIKE 'temp-%'", uid); err != nil {
		return fmt.Errorf("reconcile workout: drop temp record: %w", err)
	}
	w.ClientUID = uid
	w.Pending = false
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO workouts (id, client_uid, name, description, pending, updated_at)
		VALUES (?, ?, ?, ?, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_uid = excluded.client_uid,
			name = excluded.name,
			description = excluded.description,
			pending = 0,
			updated_at = excluded.updated_at
	`, w.ID, w.ClientUID, w.Name, w.Description, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("reconcile workout: insert server record: %w", err)
	}

	return tx.Commit()
}

// ==================== Exercises ====================

func (s *LocalStore) SaveExercise(ctx context.Context, e Exercise) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercises (id, client_uid, workout_id, name, sets, reps, weight,
		                       rest_seconds, media_url, muscle_group, pending, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_uid = excluded.client_uid,
			workout_id = excluded.workout_id,
			name = excluded.name,
			sets = excluded.sets,
			reps = excluded.reps,
			weight = excluded.weight,
			rest_seconds = excluded.rest_seconds,
			media_url = excluded.media_url,
			muscle_group = excluded.muscle_group,
			pending = excluded.pending,
			updated_at = excluded.updated_at
	`, e.ID, e.ClientUID, e.WorkoutID, e.Name, e.Sets, e.Reps, e.Weight,
		e.RestSeconds, e.MediaURL, e.MuscleGroup, e.Pending, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save exercise: %w", err)
	}
	return nil
}

func (s *LocalStore) GetExercise(ctx context.Context, id string) (Exercise, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_uid, workout_id, name, sets, reps, weight,
		       rest_seconds, media_url, muscle_group, pending
		FROM exercises WHERE id = ?
	`, id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Exercise{}, ErrNotFound
	}
	if err != nil {
		return Exercise{}, fmt.Errorf("get exercise: %w", err)
	}
	return e, nil
}

func (s *LocalStore) ListExercises(ctx context.Context, workoutID string) ([]Exercise, error) {
	query := `
		SELECT id, client_uid, workout_id, name, sets, reps, weight,
		       rest_seconds, media_url, muscle_group, pending
		FROM exercises`
	args := []any{}
	if workoutID != "" {
		query += " WHERE workout_id = ?"
		args = append(args, workoutID)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (s *LocalStore) DeleteExercise(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM exercises WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}

// ReplaceExercises replaces all cached exercises for one workout. An empty
// workoutID replaces the whole table.
func (s *LocalStore) ReplaceExercises(ctx context.Context, workoutID string, exercises []Exercise) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace exercises: %w", err)
	}
	defer tx.Rollback()

	if workoutID == "" {
		_, err = tx.ExecContext(ctx, "DELETE FROM exercises")
	} else {
		_, err = tx.ExecContext(ctx, "DELETE FROM exercises WHERE workout_id = ?", workoutID)
	}
	if err != nil {
		return fmt.Errorf("replace exercises: clear: %w", err)
	}

	for _, e := range exercises {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercises (id, client_uid, workout_id, name, sets, reps, weight,
			                       rest_seconds, media_url, muscle_group, pending, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.ClientUID, e.WorkoutID, e.Name, e.Sets, e.Reps, e.Weight,
			e.RestSeconds, e.MediaURL, e.MuscleGroup, e.Pending, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("replace exercises: insert: %w", err)
		}
	}

	return tx.Commit()
}

func (s *LocalStore) ReconcileExercise(ctx context.Context, uid string, e Exercise) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reconcile exercise: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM exercises WHERE client_uid = ? AND id LIKE 'temp-%'", uid); err != nil {
		return fmt.Errorf("reconcile exercise: drop temp record: %w", err)
	}
	e.ClientUID = uid
	e.Pending = false
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO exercises (id, client_uid, workout_id, name, sets, reps, weight,
		                       rest_seconds, media_url, muscle_group, pending, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_uid = excluded.client_uid,
			workout_id = excluded.workout_id,
			name = excluded.name,
			sets = excluded.sets,
			reps = excluded.reps,
			weight = excluded.weight,
			rest_seconds = excluded.rest_seconds,
			media_url = excluded.media_url,
			muscle_group = excluded.muscle_group,
			pending = 0,
			updated_at = excluded.updated_at
	`, e.ID, e.ClientUID, e.WorkoutID, e.Name, e.Sets, e.Reps, e.Weight,
		e.RestSeconds, e.MediaURL, e.MuscleGroup, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("reconcile exercise: insert server record: %w", err)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (Exercise, error) {
	var e Exercise
	var pending int
	err := row.Scan(&e.ID, &e.ClientUID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps,
		&e.Weight, &e.RestSeconds, &e.MediaURL, &e.MuscleGroup, &pending)
	if err != nil {
		return Exercise{}, err
	}
	e.Pending = pending != 0
	return e, nil
}

// ==================== Measurements (weight / bodyfat) ====================

func measurementTable(entity Entity) string {
	if entity == EntityBodyFat {
		return "bodyfat"
	}
	return "weight"
}

func (s *LocalStore) SaveMeasurement(ctx context.Context, entity Entity, m MeasurementEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+measurementTable(entity)+` (id, client_uid, date, value, pending, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_uid = excluded.client_uid,
			date = excluded.date,
			value = excluded.value,
			pending = excluded.pending,
			updated_at = excluded.updated_at
	`, m.ID, m.ClientUID, m.Date, m.Value, m.Pending, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s entry: %w", entity, err)
	}
	return nil
}

func (s *LocalStore) GetMeasurement(ctx context.Context, entity Entity, id string) (MeasurementEntry, error) {
	var m MeasurementEntry
	var pending int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, client_uid, date, value, pending FROM `+measurementTable(entity)+` WHERE id = ?
	`, id).Scan(&m.ID, &m.ClientUID, &m.Date, &m.Value, &pending)
	if errors.Is(err, sql.ErrNoRows) {
		return MeasurementEntry{}, ErrNotFound
	}
	if err != nil {
		return MeasurementEntry{}, fmt.Errorf("get %s entry: %w", entity, err)
	}
	m.Pending = pending != 0
	return m, nil
}

func (s *LocalStore) ListMeasurements(ctx context.Context, entity Entity) ([]MeasurementEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_uid, date, value, pending FROM `+measurementTable(entity)+` ORDER BY date, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", entity, err)
	}
	defer rows.Close()

	var entries []MeasurementEntry
	for rows.Next() {
		var m MeasurementEntry
		var pending int
		if err := rows.Scan(&m.ID, &m.ClientUID, &m.Date, &m.Value, &pending); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", entity, err)
		}
		m.Pending = pending != 0
		entries = append(entries, m)
	}
	return entries, rows.Err()
}

func (s *LocalStore) DeleteMeasurement(ctx context.Context, entity Entity, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+measurementTable(entity)+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete %s entry: %w", entity, err)
	}
	return nil
}

func (s *LocalStore) ReplaceMeasurements(ctx context.Context, entity Entity, entries []MeasurementEntry) error {
	return s.replace(ctx, measurementTable(entity), len(entries), func(tx *sql.Tx, i int) error {
		m := entries[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO `+measurementTable(entity)+` (id, client_uid, date, value, pending, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.ID, m.ClientUID, m.Date, m.Value, m.Pending, time.Now().UTC().Format(time.RFC3339))
		return err
	})
}

func (s *LocalStore) ReconcileMeasurement(ctx context.Context, entity Entity, uid string, m MeasurementEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reconcile %s entry: %w", entity, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM "+measurementTable(entity)+" WHERE client_uid = ? AND id LIKE 'temp-%'", uid); err != nil {
		return fmt.Errorf("reconcile %s entry: drop temp record: %w", entity, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO `+measurementTable(entity)+` (id, client_uid, date, value, pending, updated_at)
		VALUES (?, ?, ?, ?, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_uid = excluded.client_uid,
			date = excluded.date,
			value = excluded.value,
			pending = 0,
			updated_at = excluded.updated_at
	`, m.ID, uid, m.Date, m.Value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("reconcile %s entry: insert server record: %w", entity, err)
	}

	return tx.Commit()
}

func (s *LocalStore) replace(ctx context.Context, table string, n int, insert func(tx *sql.Tx, i int) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("replace %s: clear: %w", table, err)
	}
	for i := 0; i < n; i++ {
		if err := insert(tx, i); err != nil {
			return fmt.Errorf("replace %s: insert: %w", table, err)
		}
	}

	return tx.Commit()
}

// ==================== Offline queue ====================

func (s *LocalStore) EnqueueEntry(ctx context.Context, e QueueEntry) (int64, error) {
	headers, err := json.Marshal(e.Headers)
	if err != nil {
		return 0, fmt.Errorf("enqueue: marshal headers: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO queue (url, method, body, headers, type, client_uid, timestamp, retry_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.URL, e.Method, e.Body, string(headers), string(e.Type), e.ClientUID,
		e.Timestamp.UTC().Format(time.RFC3339Nano), e.RetryCount)
	if err != nil {
		return 0, fmt.Errorf("enqueue: %w", err)
	}
	return res.LastInsertId()
}

// PendingEntries returns queued requests in FIFO order by enqueue time.
func (s *LocalStore) PendingEntries(ctx context.Context) ([]QueueEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, method, body, headers, type, client_uid, timestamp, retry_count
		FROM queue ORDER BY timestamp ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("pending queue entries: %w", err)
	}
	defer rows.Close()

	var entries []QueueEntry
	for rows.Next() {
		var e QueueEntry
		var headers, ts string
		if err := rows.Scan(&e.ID, &e.URL, &e.Method, &e.Body, &headers, &e.Type,
			&e.ClientUID, &ts, &e.RetryCount); err != nil {
			return nil, fmt.Errorf("scan queue entry: %w", err)
		}
		if err := json.Unmarshal([]byte(headers), &e.Headers); err != nil {
			e.Headers = nil
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *LocalStore) QueueCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM queue").Scan(&count); err != nil {
		return 0, fmt.Errorf("queue count: %w", err)
	}
	return count, nil
}

func (s *LocalStore) DeleteQueueEntry(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM queue WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete queue entry: %w", err)
	}
	return nil
}

func (s *LocalStore) BumpQueueRetry(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		"UPDATE queue SET retry_count = retry_count + 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("bump queue retry: %w", err)
	}
	return nil
}

func (s *LocalStore) ClearQueue(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM queue"); err != nil {
		return fmt.Errorf("clear queue: %w", err)
	}
	return nil
}

// UpdateQueueBodyByUID rewrites the body of the pending request that carries
// the given client uid. Offline edits to a not-yet-created record fold into
// its queued POST instead of producing a second request.
func (s *LocalStore) UpdateQueueBodyByUID(ctx context.Context, uid string, body []byte) (bool, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE queue SET body = ? WHERE client_uid = ?", body, uid)
	if err != nil {
		return false, fmt.Errorf("update queue body: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *LocalStore) DeleteQueueByUID(ctx context.Context, uid string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM queue WHERE client_uid = ?", uid); err != nil {
		return fmt.Errorf("delete queue entry by uid: %w", err)
	}
	return nil
}

// MoveToDead relocates a queue entry to the dead-letter table instead of
// deleting it, keeping abandoned requests inspectable.
func (s *LocalStore) MoveToDead(ctx context.Context, e QueueEntry, lastError string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("move to dead letter: %w", err)
	}
	defer tx.Rollback()

	headers, err := json.Marshal(e.Headers)
	if err != nil {
		headers = []byte("{}")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO queue_dead (url, method, body, headers, type, client_uid,
		                        timestamp, retry_count, abandoned_at, last_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.URL, e.Method, e.Body, string(headers), string(e.Type), e.ClientUID,
		e.Timestamp.UTC().Format(time.RFC3339Nano), e.RetryCount,
		time.Now().UTC().Format(time.RFC3339Nano), lastError); err != nil {
		return fmt.Errorf("move to dead letter: insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM queue WHERE id = ?", e.ID); err != nil {
		return fmt.Errorf("move to dead letter: delete: %w", err)
	}

	return tx.Commit()
}

func (s *LocalStore) DeadEntries(ctx context.Context) ([]DeadEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, method, type, retry_count, abandoned_at, last_error
		FROM queue_dead ORDER BY abandoned_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("dead queue entries: %w", err)
	}
	defer rows.Close()

	var entries []DeadEntry
	for rows.Next() {
		var d DeadEntry
		var abandoned string
		if err := rows.Scan(&d.ID, &d.URL, &d.Method, &d.Type, &d.RetryCount,
			&abandoned, &d.LastError); err != nil {
			return nil, fmt.Errorf("scan dead queue entry: %w", err)
		}
		d.AbandonedAt, _ = time.Parse(time.RFC3339Nano, abandoned)
		entries = append(entries, d)
	}
	return entries, rows.Err()
}

// ==================== Drain lease ====================

// AcquireLease claims the named lease for owner until now+ttl. It returns
// false when another live owner holds it. Expired leases are taken over.
func (s *LocalStore) AcquireLease(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("acquire lease: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM sync_lease WHERE name = ? AND expires_at < ?",
		name, now.Format(time.RFC3339Nano)); err != nil {
		return false, fmt.Errorf("acquire lease: expire: %w", err)
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO sync_lease (name, owner, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			owner = excluded.owner,
			expires_at = excluded.expires_at
		WHERE sync_lease.owner = excluded.owner
	`, name, owner, now.Add(ttl).Format(time.RFC3339Nano))
	if err != nil {
		return false, fmt.Errorf("acquire lease: %w", err)
	}
	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("acquire lease: %w", err)
	}
	return n > 0, nil
}

func (s *LocalStore) ReleaseLease(ctx context.Context, name, owner string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM sync_lease WHERE name = ? AND owner = ?", name, owner); err != nil {
		return fmt.Errorf("release lease: %w", err)
	}
	return nil
}
