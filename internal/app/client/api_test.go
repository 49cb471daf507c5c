package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/client/config"
)

type apiFixture struct {
	store *LocalStore
	queue *Queue
	http  *httpClient
	hits  *atomic.Int64
}

func newAPIFixture(t *testing.T, handler http.HandlerFunc) *apiFixture {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	hc := newHTTPClient(&config.Config{ServerAddress: srv.URL}, slog.Default())
	queue := NewQueue(store, hc, "test-owner", slog.Default())
	return &apiFixture{store: store, queue: queue, http: hc, hits: &hits}
}

func (f *apiFixture) workoutAPI(conn Connectivity) *WorkoutAPI {
	return NewWorkoutAPI(f.http, f.store, f.queue, conn, fastRetryConfig(), slog.Default())
}

func (f *apiFixture) exerciseAPI(conn Connectivity) *ExerciseAPI {
	return NewExerciseAPI(f.http, f.store, f.queue, conn, fastRetryConfig(), slog.Default())
}

func (f *apiFixture) measurementAPI(entity Entity, conn Connectivity) *MeasurementAPI {
	return NewMeasurementAPI(entity, f.http, f.store, f.queue, conn, fastRetryConfig(), slog.Default())
}

func TestWorkoutAPI_GetAllSyncsCache(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Push Day"},{"id":2,"name":"Pull Day"}]`))
	})
	api := f.workoutAPI(StaticConnectivity(true))
	ctx := context.Background()

	// A stale record should vanish after the fetch.
	require.NoError(t, f.store.SaveWorkout(ctx, Workout{ID: "99", Name: "Deleted Elsewhere"}))

	items, status, err := api.GetAll(ctx)
	require.NoError(t, err)
	assert.False(t, status.FromCache)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "Push Day", items[0].Name)

	cached, err := f.store.ListWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 2)
	_, err = f.store.GetWorkout(ctx, "99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutAPI_GetAllFallsBackToCache(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})
	api := f.workoutAPI(StaticConnectivity(true))
	ctx := context.Background()

	require.NoError(t, f.store.SaveWorkout(ctx, Workout{ID: "1", Name: "Cached Workout"}))

	items, status, err := api.GetAll(ctx)
	require.NoError(t, err)
	assert.True(t, status.FromCache)
	assert.True(t, strings.HasPrefix(status.Warning, cacheWarningPrefix))
	require.Len(t, items, 1)
	assert.Equal(t, "Cached Workout", items[0].Name)
}

func TestWorkoutAPI_GetAllEmptyCachePropagatesError(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})
	api := f.workoutAPI(StaticConnectivity(true))

	_, _, err := api.GetAll(context.Background())
	assert.Error(t, err)
}

func TestWorkoutAPI_CreateOffline(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.workoutAPI(StaticConnectivity(false))
	ctx := context.Background()

	created, err := api.Create(ctx, Workout{Name: "Offline Workout"})
	require.NoError(t, err)

	assert.True(t, IsTempID(created.ID))
	assert.True(t, created.Pending)
	assert.NotEmpty(t, created.ClientUID)

	stored, err := f.store.GetWorkout(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Pending)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, http.MethodPost, pending[0].Method)
	assert.Equal(t, created.ClientUID, pending[0].ClientUID)

	assert.Equal(t, int64(0), f.hits.Load(), "offline writes never touch the network")
}

func TestWorkoutAPI_CreateOnlineRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int64
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, `{"error":"flaky"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"Push Day"}`))
	})
	api := f.workoutAPI(StaticConnectivity(true))
	ctx := context.Background()

	created, err := api.Create(ctx, Workout{Name: "Push Day"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), calls.Load())
	assert.Equal(t, "7", created.ID)
	assert.False(t, created.Pending)

	stored, err := f.store.GetWorkout(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "Push Day", stored.Name)
}

func TestWorkoutAPI_CreateOnlineDoesNotRetryClientErrors(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad name"}`, http.StatusBadRequest)
	})
	api := f.workoutAPI(StaticConnectivity(true))

	_, err := api.Create(context.Background(), Workout{Name: ""})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, int64(1), f.hits.Load())
}

func TestWorkoutAPI_OfflineUpdateFoldsIntoQueuedCreate(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.workoutAPI(StaticConnectivity(false))
	ctx := context.Background()

	created, err := api.Create(ctx, Workout{Name: "v1"})
	require.NoError(t, err)

	created.Name = "v2"
	updated, err := api.Update(ctx, created)
	require.NoError(t, err)
	assert.True(t, updated.Pending)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "the edit folds into the queued POST")
	assert.Equal(t, http.MethodPost, pending[0].Method)
	assert.Contains(t, string(pending[0].Body), "v2")
}

func TestWorkoutAPI_OfflineUpdateOfSyncedRecordQueuesPut(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.workoutAPI(StaticConnectivity(false))
	ctx := context.Background()

	require.NoError(t, f.store.SaveWorkout(ctx, Workout{ID: "5", Name: "Synced"}))

	_, err := api.Update(ctx, Workout{ID: "5", Name: "Edited Offline"})
	require.NoError(t, err)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, http.MethodPut, pending[0].Method)
	assert.Contains(t, pending[0].URL, "/workouts/5")
}

func TestWorkoutAPI_OfflineDeleteOfTempRecordCancelsCreate(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.workoutAPI(StaticConnectivity(false))
	ctx := context.Background()

	created, err := api.Create(ctx, Workout{Name: "Short-lived"})
	require.NoError(t, err)

	require.NoError(t, api.Delete(ctx, created.ID))

	count, err := f.queue.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "the queued create is cancelled, not followed by a delete")

	_, err = f.store.GetWorkout(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkoutAPI_OfflineDeleteOfSyncedRecordQueuesDelete(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.workoutAPI(StaticConnectivity(false))
	ctx := context.Background()

	require.NoError(t, f.store.SaveWorkout(ctx, Workout{ID: "5", Name: "Synced"}))
	require.NoError(t, api.Delete(ctx, "5"))

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, http.MethodDelete, pending[0].Method)

	_, err = f.store.GetWorkout(ctx, "5")
	assert.ErrorIs(t, err, ErrNotFound, "optimistic delete removes the local row")
}

func TestWorkoutAPI_OfflineUpdateOfOrphanTempRecordQueuesCreate(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.workoutAPI(StaticConnectivity(false))
	ctx := context.Background()

	// A temp record with no queued create: the edit cannot fold and must
	// not become a PUT against a temp id the server can never route.
	tempID := TempID()
	require.NoError(t, f.store.SaveWorkout(ctx, Workout{ID: tempID, Name: "Orphan"}))

	_, err := api.Update(ctx, Workout{ID: tempID, Name: "Edited"})
	require.NoError(t, err)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, http.MethodPost, pending[0].Method)
	assert.NotContains(t, pending[0].URL, tempID)
	assert.NotEmpty(t, pending[0].ClientUID, "the queued create is reconcilable")
	assert.Contains(t, string(pending[0].Body), "Edited")
}

// serverBulkExercise mirrors the shape the backend's bulk update endpoint
// validates: every element must carry an integer id of at least 1.
type serverBulkExercise struct {
	ID          int64   `json:"id"`
	WorkoutID   int64   `json:"workoutId"`
	Name        string  `json:"name"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	RestSeconds int     `json:"restSeconds"`
}

func TestExerciseAPI_BulkUpdateCarriesServerIDs(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/exercises", r.URL.Path)

		var req struct {
			Exercises []serverBulkExercise `json:"exercises"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Exercises, 2)
		for _, e := range req.Exercises {
			assert.GreaterOrEqual(t, e.ID, int64(1), "bulk elements address existing rows by id")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":7,"workoutId":3,"name":"Squat","sets":5,"reps":5},{"id":8,"workoutId":3,"name":"Deadlift","sets":3,"reps":5}]`))
	})
	api := f.exerciseAPI(StaticConnectivity(true))
	ctx := context.Background()

	updated, err := api.BulkUpdate(ctx, []Exercise{
		{ID: "7", WorkoutID: "3", Name: "Squat", Sets: 5, Reps: 5},
		{ID: "8", WorkoutID: "3", Name: "Deadlift", Sets: 3, Reps: 5},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, "7", updated[0].ID)
	assert.Equal(t, int64(1), f.hits.Load())
}

func TestExerciseAPI_OfflineBulkUpdateQueuesIDs(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.exerciseAPI(StaticConnectivity(false))
	ctx := context.Background()

	require.NoError(t, f.store.SaveExercise(ctx, Exercise{ID: "7", WorkoutID: "3", Name: "Squat", Sets: 5, Reps: 5}))

	_, err := api.BulkUpdate(ctx, []Exercise{{ID: "7", WorkoutID: "3", Name: "Squat", Sets: 3, Reps: 8}})
	require.NoError(t, err)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, http.MethodPut, pending[0].Method)
	assert.Contains(t, string(pending[0].Body), `"id":7`)
	assert.Equal(t, int64(0), f.hits.Load())
}

func TestExerciseAPI_OfflineBulkUpdateFoldsTempRecordsIntoCreate(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.exerciseAPI(StaticConnectivity(false))
	ctx := context.Background()

	created, err := api.Create(ctx, Exercise{WorkoutID: "3", Name: "Squat", Sets: 5, Reps: 5})
	require.NoError(t, err)
	require.True(t, IsTempID(created.ID))

	created.Sets = 3
	_, err = api.BulkUpdate(ctx, []Exercise{created})
	require.NoError(t, err)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1, "the edit folds into the queued POST, no bulk PUT is queued")
	assert.Equal(t, http.MethodPost, pending[0].Method)
	assert.Contains(t, string(pending[0].Body), `"sets":3`)
}

func TestMeasurementAPI_NormalizesServerDates(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weight", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"date":"2024-01-15T00:00:00Z","value":70}]`))
	})
	api := f.measurementAPI(EntityWeight, StaticConnectivity(true))

	items, _, err := api.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2024-01-15", items[0].Date)
	assert.Equal(t, 70.0, items[0].Value)
}

func TestMeasurementAPI_CreateOffline(t *testing.T) {
	f := newAPIFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	api := f.measurementAPI(EntityBodyFat, StaticConnectivity(false))
	ctx := context.Background()

	created, err := api.Create(ctx, MeasurementEntry{Date: "2024-03-01T08:30:00Z", Value: 18.5})
	require.NoError(t, err)

	assert.True(t, IsTempID(created.ID))
	assert.Equal(t, "2024-03-01", created.Date, "dates normalize before anything is stored")
	assert.True(t, created.Pending)

	pending, err := f.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, EntityBodyFat, pending[0].Type)
	assert.Contains(t, pending[0].URL, "/bodyfat")
	assert.Equal(t, int64(0), f.hits.Load())
}
