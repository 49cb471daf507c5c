package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// ListStatus annotates a read that was served (partly or fully) from the
// local cache instead of the network.
type ListStatus struct {
	FromCache bool   `json:"fromCache,omitempty"`
	Warning   string `json:"error,omitempty"`
}

const cacheWarningPrefix = "showing cached data: "

// ==================== Workouts ====================

// WorkoutAPI is the offline-aware entry point for workout reads and writes.
// Reads fall back to the cache when the network fails; writes made while
// offline become optimistic local records plus a queued request, and writes
// made online run under retry-with-backoff.
type WorkoutAPI struct {
	http  *httpClient
	store *LocalStore
	queue *Queue
	conn  Connectivity
	retry RetryConfig
	log   *slog.Logger
}

func NewWorkoutAPI(http *httpClient, store *LocalStore, queue *Queue, conn Connectivity, retry RetryConfig, log *slog.Logger) *WorkoutAPI {
	return &WorkoutAPI{
		http:  http,
		store: store,
		queue: queue,
		conn:  conn,
		retry: retry,
		log:   log.With("component", "workout_api"),
	}
}

func (a *WorkoutAPI) GetAll(ctx context.Context) ([]Workout, ListStatus, error) {
	cached, err := a.store.ListWorkouts(ctx)
	if err != nil {
		a.log.Warn("local cache read failed", "error", err)
		cached = nil
	}

	wires, err := a.http.ListWorkouts(ctx)
	if err != nil {
		if len(cached) > 0 {
			return cached, ListStatus{FromCache: true, Warning: cacheWarningPrefix + err.Error()}, nil
		}
		return nil, ListStatus{}, err
	}

	fresh := decodeWorkouts(wires)
	if err := a.store.ReplaceWorkouts(ctx, fresh); err != nil {
		a.log.Warn("failed to refresh workout cache", "error", err)
	}
	return fresh, ListStatus{}, nil
}

func (a *WorkoutAPI) Create(ctx context.Context, w Workout) (Workout, error) {
	payload := encodeWorkout(w)

	if !a.conn.Online() {
		w.ID = TempID()
		w.ClientUID = uuid.NewString()
		w.Pending = true
		if err := a.store.SaveWorkout(ctx, w); err != nil {
			return Workout{}, err
		}
		if err := a.enqueueJSON(ctx, http.MethodPost, "/workouts", payload, EntityWorkout, w.ClientUID); err != nil {
			return Workout{}, err
		}
		return w, nil
	}

	var wire workoutWire
	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		var err error
		wire, err = a.http.CreateWorkout(ctx, payload)
		return err
	})
	if err != nil {
		return Workout{}, err
	}

	fresh := decodeWorkout(wire)
	if err := a.store.SaveWorkout(ctx, fresh); err != nil {
		a.log.Warn("failed to cache created workout", "error", err)
	}
	return fresh, nil
}

func (a *WorkoutAPI) Update(ctx context.Context, w Workout) (Workout, error) {
	payload := encodeWorkout(w)

	if !a.conn.Online() {
		if existing, err := a.store.GetWorkout(ctx, w.ID); err == nil {
			w.ClientUID = existing.ClientUID
		}
		w.Pending = true
		if IsTempID(w.ID) && w.ClientUID == "" {
			w.ClientUID = uuid.NewString()
		}
		if err := a.store.SaveWorkout(ctx, w); err != nil {
			return Workout{}, err
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return Workout{}, err
		}
		if IsTempID(w.ID) {
			// An edit of a record whose create is still queued folds into
			// the queued POST body.
			if folded, err := a.store.UpdateQueueBodyByUID(ctx, w.ClientUID, body); err == nil && folded {
				return w, nil
			}
			// No queued create to fold into. A PUT against a temp id can
			// never match a server route, so queue a fresh create instead.
			if err := a.enqueueJSON(ctx, http.MethodPost, "/workouts", payload, EntityWorkout, w.ClientUID); err != nil {
				return Workout{}, err
			}
			return w, nil
		}
		if err := a.queue.Enqueue(ctx, QueueEntry{
			URL:    a.http.baseURL + "/workouts/" + w.ID,
			Method: http.MethodPut,
			Body:   body,
			Type:   EntityWorkout,
		}); err != nil {
			return Workout{}, err
		}
		return w, nil
	}

	var wire workoutWire
	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		var err error
		wire, err = a.http.UpdateWorkout(ctx, w.ID, payload)
		return err
	})
	if err != nil {
		return Workout{}, err
	}

	fresh := decodeWorkout(wire)
	if fresh.ID == "" {
		fresh.ID = w.ID
	}
	if err := a.store.SaveWorkout(ctx, fresh); err != nil {
		a.log.Warn("failed to cache updated workout", "error", err)
	}
	return fresh, nil
}

func (a *WorkoutAPI) Delete(ctx context.Context, id string) error {
	if !a.conn.Online() {
		existing, getErr := a.store.GetWorkout(ctx, id)
		if err := a.store.DeleteWorkout(ctx, id); err != nil {
			return err
		}
		if IsTempID(id) {
			// The create never reached the server; cancel it instead
			// of queueing a delete for an id that does not exist.
			if getErr == nil && existing.ClientUID != "" {
				if err := a.store.DeleteQueueByUID(ctx, existing.ClientUID); err != nil {
					a.log.Warn("failed to cancel queued create", "error", err)
				}
			}
			return nil
		}
		return a.queue.Enqueue(ctx, QueueEntry{
			URL:    a.http.baseURL + "/workouts/" + id,
			Method: http.MethodDelete,
			Type:   EntityWorkout,
		})
	}

	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		return a.http.DeleteWorkout(ctx, id)
	})
	if err != nil {
		return err
	}
	if err := a.store.DeleteWorkout(ctx, id); err != nil {
		a.log.Warn("failed to evict deleted workout", "error", err)
	}
	return nil
}

func (a *WorkoutAPI) enqueueJSON(ctx context.Context, method, path string, payload any, entity Entity, uid string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return a.queue.Enqueue(ctx, QueueEntry{
		URL:       a.http.baseURL + path,
		Method:    method,
		Body:      body,
		Type:      entity,
		ClientUID: uid,
	})
}

// ==================== Exercises ====================

type ExerciseAPI struct {
	http  *httpClient
	store *LocalStore
	queue *Queue
	conn  Connectivity
	retry RetryConfig
	log   *slog.Logger
}

func NewExerciseAPI(http *httpClient, store *LocalStore, queue *Queue, conn Connectivity, retry RetryConfig, log *slog.Logger) *ExerciseAPI {
	return &ExerciseAPI{
		http:  http,
		store: store,
		queue: queue,
		conn:  conn,
		retry: retry,
		log:   log.With("component", "exercise_api"),
	}
}

func (a *ExerciseAPI) GetAll(ctx context.Context, workoutID string) ([]Exercise, ListStatus, error) {
	cached, err := a.store.ListExercises(ctx, workoutID)
	if err != nil {
		a.log.Warn("local cache read failed", "error", err)
		cached = nil
	}

	wires, err := a.http.ListExercises(ctx, workoutID)
	if err != nil {
		if len(cached) > 0 {
			return cached, ListStatus{FromCache: true, Warning: cacheWarningPrefix + err.Error()}, nil
		}
		return nil, ListStatus{}, err
	}

	fresh := decodeExercises(wires)
	if err := a.store.ReplaceExercises(ctx, workoutID, fresh); err != nil {
		a.log.Warn("failed to refresh exercise cache", "error", err)
	}
	return fresh, ListStatus{}, nil
}

func (a *ExerciseAPI) Create(ctx context.Context, e Exercise) (Exercise, error) {
	payload := encodeExercise(e)

	if !a.conn.Online() {
		e.ID = TempID()
		e.ClientUID = uuid.NewString()
		e.Pending = true
		if err := a.store.SaveExercise(ctx, e); err != nil {
			return Exercise{}, err
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return Exercise{}, err
		}
		if err := a.queue.Enqueue(ctx, QueueEntry{
			URL:       a.http.baseURL + "/exercises",
			Method:    http.MethodPost,
			Body:      body,
			Type:      EntityExercise,
			ClientUID: e.ClientUID,
		}); err != nil {
			return Exercise{}, err
		}
		return e, nil
	}

	var wire exerciseWire
	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		var err error
		wire, err = a.http.CreateExercise(ctx, payload)
		return err
	})
	if err != nil {
		return Exercise{}, err
	}

	fresh := decodeExercise(wire)
	if err := a.store.SaveExercise(ctx, fresh); err != nil {
		a.log.Warn("failed to cache created exercise", "error", err)
	}
	return fresh, nil
}

// BulkUpdate rewrites a set of exercises in one request, the only update
// shape the API offers. Each wire element carries the server-assigned id.
func (a *ExerciseAPI) BulkUpdate(ctx context.Context, exercises []Exercise) ([]Exercise, error) {
	if !a.conn.Online() {
		queued := make([]bulkExercisePayload, 0, len(exercises))
		for i := range exercises {
			if existing, err := a.store.GetExercise(ctx, exercises[i].ID); err == nil {
				exercises[i].ClientUID = existing.ClientUID
			}
			exercises[i].Pending = true
			if err := a.store.SaveExercise(ctx, exercises[i]); err != nil {
				return nil, err
			}
			if IsTempID(exercises[i].ID) {
				// The server has no id to address yet; fold the edit
				// into the queued create instead.
				if exercises[i].ClientUID != "" {
					body, err := json.Marshal(encodeExercise(exercises[i]))
					if err != nil {
						return nil, err
					}
					if _, err := a.store.UpdateQueueBodyByUID(ctx, exercises[i].ClientUID, body); err != nil {
						a.log.Warn("failed to fold edit into queued create", "error", err)
					}
				}
				continue
			}
			queued = append(queued, encodeBulkExercise(exercises[i]))
		}
		if len(queued) == 0 {
			return exercises, nil
		}
		req := struct {
			Exercises []bulkExercisePayload `json:"exercises"`
		}{Exercises: queued}
		body, err := json.Marshal(req)
		if err != nil {
			return nil, err
		}
		if err := a.queue.Enqueue(ctx, QueueEntry{
			URL:    a.http.baseURL + "/exercises",
			Method: http.MethodPut,
			Body:   body,
			Type:   EntityExercise,
		}); err != nil {
			return nil, err
		}
		return exercises, nil
	}

	payloads := make([]bulkExercisePayload, 0, len(exercises))
	for _, e := range exercises {
		payloads = append(payloads, encodeBulkExercise(e))
	}

	var wires []exerciseWire
	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		var err error
		wires, err = a.http.UpdateExercises(ctx, payloads)
		return err
	})
	if err != nil {
		return nil, err
	}

	fresh := decodeExercises(wires)
	for _, e := range fresh {
		if err := a.store.SaveExercise(ctx, e); err != nil {
			a.log.Warn("failed to cache updated exercise", "error", err)
		}
	}
	return fresh, nil
}

func (a *ExerciseAPI) Delete(ctx context.Context, id string) error {
	if !a.conn.Online() {
		existing, getErr := a.store.GetExercise(ctx, id)
		if err := a.store.DeleteExercise(ctx, id); err != nil {
			return err
		}
		if IsTempID(id) {
			if getErr == nil && existing.ClientUID != "" {
				if err := a.store.DeleteQueueByUID(ctx, existing.ClientUID); err != nil {
					a.log.Warn("failed to cancel queued create", "error", err)
				}
			}
			return nil
		}
		return a.queue.Enqueue(ctx, QueueEntry{
			URL:    a.http.baseURL + "/exercises/" + id,
			Method: http.MethodDelete,
			Type:   EntityExercise,
		})
	}

	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		return a.http.DeleteExercise(ctx, id)
	})
	if err != nil {
		return err
	}
	if err := a.store.DeleteExercise(ctx, id); err != nil {
		a.log.Warn("failed to evict deleted exercise", "error", err)
	}
	return nil
}

// ==================== Measurements ====================

// MeasurementAPI serves either the weight or the bodyfat entity; the two
// share one wire format and differ only in path and table.
type MeasurementAPI struct {
	entity Entity
	http   *httpClient
	store  *LocalStore
	queue  *Queue
	conn   Connectivity
	retry  RetryConfig
	log    *slog.Logger
}

func NewMeasurementAPI(entity Entity, http *httpClient, store *LocalStore, queue *Queue, conn Connectivity, retry RetryConfig, log *slog.Logger) *MeasurementAPI {
	return &MeasurementAPI{
		entity: entity,
		http:   http,
		store:  store,
		queue:  queue,
		conn:   conn,
		retry:  retry,
		log:    log.With("component", string(entity)+"_api"),
	}
}

func (a *MeasurementAPI) GetAll(ctx context.Context) ([]MeasurementEntry, ListStatus, error) {
	cached, err := a.store.ListMeasurements(ctx, a.entity)
	if err != nil {
		a.log.Warn("local cache read failed", "error", err)
		cached = nil
	}

	wires, err := a.http.ListMeasurements(ctx, a.entity)
	if err != nil {
		if len(cached) > 0 {
			return cached, ListStatus{FromCache: true, Warning: cacheWarningPrefix + err.Error()}, nil
		}
		return nil, ListStatus{}, err
	}

	fresh := decodeMeasurements(wires)
	if err := a.store.ReplaceMeasurements(ctx, a.entity, fresh); err != nil {
		a.log.Warn("failed to refresh measurement cache", "error", err)
	}
	return fresh, ListStatus{}, nil
}

func (a *MeasurementAPI) Create(ctx context.Context, m MeasurementEntry) (MeasurementEntry, error) {
	m.Date = normalizeDate(m.Date)
	payload := encodeMeasurement(m)

	if !a.conn.Online() {
		m.ID = TempID()
		m.ClientUID = uuid.NewString()
		m.Pending = true
		if err := a.store.SaveMeasurement(ctx, a.entity, m); err != nil {
			return MeasurementEntry{}, err
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return MeasurementEntry{}, err
		}
		if err := a.queue.Enqueue(ctx, QueueEntry{
			URL:       a.http.baseURL + measurementPath(a.entity),
			Method:    http.MethodPost,
			Body:      body,
			Type:      a.entity,
			ClientUID: m.ClientUID,
		}); err != nil {
			return MeasurementEntry{}, err
		}
		return m, nil
	}

	var wire measurementWire
	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		var err error
		wire, err = a.http.CreateMeasurement(ctx, a.entity, payload)
		return err
	})
	if err != nil {
		return MeasurementEntry{}, err
	}

	fresh := decodeMeasurement(wire)
	if err := a.store.SaveMeasurement(ctx, a.entity, fresh); err != nil {
		a.log.Warn("failed to cache created measurement", "error", err)
	}
	return fresh, nil
}

func (a *MeasurementAPI) Delete(ctx context.Context, id string) error {
	if !a.conn.Online() {
		existing, getErr := a.store.GetMeasurement(ctx, a.entity, id)
		if err := a.store.DeleteMeasurement(ctx, a.entity, id); err != nil {
			return err
		}
		if IsTempID(id) {
			if getErr == nil && existing.ClientUID != "" {
				if err := a.store.DeleteQueueByUID(ctx, existing.ClientUID); err != nil {
					a.log.Warn("failed to cancel queued create", "error", err)
				}
			}
			return nil
		}
		return a.queue.Enqueue(ctx, QueueEntry{
			URL:    a.http.baseURL + measurementPath(a.entity) + "/" + id,
			Method: http.MethodDelete,
			Type:   a.entity,
		})
	}

	err := retryWithBackoff(ctx, a.retry, a.conn.Online, func(ctx context.Context) error {
		return a.http.DeleteMeasurement(ctx, a.entity, id)
	})
	if err != nil {
		return err
	}
	if err := a.store.DeleteMeasurement(ctx, a.entity, id); err != nil {
		a.log.Warn("failed to evict deleted measurement", "error", err)
	}
	return nil
}
