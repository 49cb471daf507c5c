package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// QueueEntry is a mutating request recorded while the device was offline,
// kept until a replay succeeds or the attempt budget is spent.
type QueueEntry struct {
	ID         int64             `json:"id"`
	URL        string            `json:"url"`
	Method     string            `json:"method"`
	Body       []byte            `json:"body,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Type       Entity            `json:"type"`
	ClientUID  string            `json:"client_uid,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	RetryCount int               `json:"retry_count"`
}

// DeadEntry is a queue entry abandoned after too many failed replays.
type DeadEntry struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Method      string    `json:"method"`
	Type        string    `json:"type"`
	RetryCount  int       `json:"retry_count"`
	AbandonedAt time.Time `json:"abandoned_at"`
	LastError   string    `json:"last_error"`
}

type DrainResult struct {
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Abandoned int `json:"abandoned"`
}

// Replayer re-executes a recorded request and returns the response body.
type Replayer interface {
	Replay(ctx context.Context, e QueueEntry) ([]byte, error)
}

const (
	queueMaxAttempts = 5
	drainLeaseName   = "queue-drain"
	drainLeaseTTL    = 2 * time.Minute
)

// ErrDrainHeld is returned when another process currently owns the drain
// lease; the queue is left untouched.
var ErrDrainHeld = fmt.Errorf("queue drain already in progress")

// Queue replays pending offline mutations in FIFO order. Entries that fail
// queueMaxAttempts times move to the dead-letter table.
type Queue struct {
	store    *LocalStore
	replayer Replayer
	log      *slog.Logger
	owner    string
}

func NewQueue(store *LocalStore, replayer Replayer, owner string, log *slog.Logger) *Queue {
	return &Queue{
		store:    store,
		replayer: replayer,
		log:      log.With("component", "offline_queue"),
		owner:    owner,
	}
}

// Enqueue records a request for later replay.
func (q *Queue) Enqueue(ctx context.Context, e QueueEntry) error {
	e.Timestamp = time.Now()
	e.RetryCount = 0

	id, err := q.store.EnqueueEntry(ctx, e)
	if err != nil {
		return err
	}
	q.log.Debug("request queued",
		"id", id, "method", e.Method, "url", e.URL, "type", e.Type)
	return nil
}

func (q *Queue) Count(ctx context.Context) (int, error) {
	return q.store.QueueCount(ctx)
}

func (q *Queue) Pending(ctx context.Context) ([]QueueEntry, error) {
	return q.store.PendingEntries(ctx)
}

func (q *Queue) Dead(ctx context.Context) ([]DeadEntry, error) {
	return q.store.DeadEntries(ctx)
}

func (q *Queue) Clear(ctx context.Context) error {
	return q.store.ClearQueue(ctx)
}

// Drain replays all pending entries oldest-first. An empty queue returns a
// zero result without touching the network or the lease. Concurrent drains
// from other processes are excluded by the lease row.
func (q *Queue) Drain(ctx context.Context) (DrainResult, error) {
	var result DrainResult

	entries, err := q.store.PendingEntries(ctx)
	if err != nil {
		return result, err
	}
	if len(entries) == 0 {
		return result, nil
	}

	ok, err := q.store.AcquireLease(ctx, drainLeaseName, q.owner, drainLeaseTTL)
	if err != nil {
		return result, err
	}
	if !ok {
		return result, ErrDrainHeld
	}
	defer func() {
		if err := q.store.ReleaseLease(ctx, drainLeaseName, q.owner); err != nil {
			q.log.Warn("failed to release drain lease", "error", err)
		}
	}()

	q.log.Info("draining offline queue", "pending", len(entries))

	for _, e := range entries {
		body, err := q.replayer.Replay(ctx, e)
		if err == nil {
			if derr := q.store.DeleteQueueEntry(ctx, e.ID); derr != nil {
				q.log.Warn("failed to remove replayed entry", "id", e.ID, "error", derr)
			}
			if e.Method == "POST" && e.ClientUID != "" {
				if rerr := q.reconcile(ctx, e, body); rerr != nil {
					q.log.Warn("failed to reconcile server id",
						"id", e.ID, "type", e.Type, "error", rerr)
				}
			}
			result.Success++
			continue
		}

		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		result.Failed++
		if e.RetryCount+1 >= queueMaxAttempts {
			q.log.Warn("abandoning queued request",
				"id", e.ID, "method", e.Method, "url", e.URL, "error", err)
			if derr := q.store.MoveToDead(ctx, e, err.Error()); derr != nil {
				q.log.Warn("failed to dead-letter entry", "id", e.ID, "error", derr)
			}
			result.Abandoned++
			continue
		}
		if berr := q.store.BumpQueueRetry(ctx, e.ID); berr != nil {
			q.log.Warn("failed to bump retry count", "id", e.ID, "error", berr)
		}
	}

	q.log.Info("queue drain finished",
		"success", result.Success, "failed", result.Failed, "abandoned", result.Abandoned)
	return result, nil
}

// reconcile swaps an offline-created temporary record for the authoritative
// one the server just assigned an id to.
func (q *Queue) reconcile(ctx context.Context, e QueueEntry, body []byte) error {
	switch e.Type {
	case EntityWorkout:
		var wire workoutWire
		if err := json.Unmarshal(body, &wire); err != nil {
			return fmt.Errorf("decode workout response: %w", err)
		}
		return q.store.ReconcileWorkout(ctx, e.ClientUID, decodeWorkout(wire))
	case EntityExercise:
		var wire exerciseWire
		if err := json.Unmarshal(body, &wire); err != nil {
			return fmt.Errorf("decode exercise response: %w", err)
		}
		return q.store.ReconcileExercise(ctx, e.ClientUID, decodeExercise(wire))
	case EntityWeight, EntityBodyFat:
		var wire measurementWire
		if err := json.Unmarshal(body, &wire); err != nil {
			return fmt.Errorf("decode measurement response: %w", err)
		}
		return q.store.ReconcileMeasurement(ctx, e.Type, e.ClientUID, decodeMeasurement(wire))
	}
	return fmt.Errorf("unknown entity type %q", e.Type)
}
