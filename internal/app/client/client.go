package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/client/config"
	"fitlog/internal/domain/aiplan"
)

// SyncStatus is a snapshot of the offline machinery for status commands.
type SyncStatus struct {
	Online      bool
	QueueLength int
	DeadLength  int
	LastDrain   *DrainResult
	LastDrainAt time.Time
}

// App wires the client together: configuration, local store, connectivity
// monitor, offline queue and the per-entity services and states. All
// dependencies flow through the constructor, nothing lives in package
// globals.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *LocalStore
	http    *httpClient
	monitor *Monitor
	queue   *Queue

	Workouts     *WorkoutService
	Exercises    *ExerciseService
	Weight       *MeasurementService
	BodyFat      *MeasurementService
	WorkoutState *State[Workout]
	WeightState  *State[MeasurementEntry]
	BodyFatState *State[MeasurementEntry]

	mu          sync.Mutex
	lastDrain   *DrainResult
	lastDrainAt time.Time
}

func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := NewLocalStore(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	hc := newHTTPClient(cfg, log)

	var conn Connectivity
	var monitor *Monitor
	if cfg.Offline {
		conn = StaticConnectivity(false)
	} else {
		monitor = NewMonitor(hc.HealthCheck, time.Duration(cfg.SyncInterval)*time.Second, log)
		conn = monitor
	}

	queue := NewQueue(store, hc, uuid.NewString(), log)
	retry := DefaultRetryConfig()

	workoutAPI := NewWorkoutAPI(hc, store, queue, conn, retry, log)
	exerciseAPI := NewExerciseAPI(hc, store, queue, conn, retry, log)
	weightAPI := NewMeasurementAPI(EntityWeight, hc, store, queue, conn, retry, log)
	bodyFatAPI := NewMeasurementAPI(EntityBodyFat, hc, store, queue, conn, retry, log)

	app := &App{
		cfg:       cfg,
		log:       log.With("component", "app"),
		store:     store,
		http:      hc,
		monitor:   monitor,
		queue:     queue,
		Workouts:  NewWorkoutService(workoutAPI, store, log),
		Exercises: NewExerciseService(exerciseAPI, store, log),
		Weight:    NewMeasurementService(EntityWeight, weightAPI, store, log),
		BodyFat:   NewMeasurementService(EntityBodyFat, bodyFatAPI, store, log),
	}

	app.WorkoutState = NewState("workout", app.Workouts.GetAll, func(w Workout) string { return w.ID }, log)
	app.WeightState = NewState("weight", app.Weight.GetAll, func(m MeasurementEntry) string { return m.ID }, log)
	app.BodyFatState = NewState("bodyfat", app.BodyFat.GetAll, func(m MeasurementEntry) string { return m.ID }, log)

	if token, err := app.LoadToken(); err == nil && token != "" {
		hc.SetToken(token)
	}

	if monitor != nil {
		monitor.OnReconnect(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			app.drain(ctx, "reconnect")
		})
	}

	return app, nil
}

// Run drives the background loops until the context is cancelled: the
// connectivity probe and a periodic queue drain.
func (a *App) Run(ctx context.Context) error {
	if a.monitor != nil {
		go a.monitor.Run(ctx)
	}

	interval := time.Duration(a.cfg.SyncInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.log.Info("background sync started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			a.log.Info("background sync stopped")
			return ctx.Err()
		case <-ticker.C:
			a.drain(ctx, "interval")
		}
	}
}

// SyncNow drains the queue once, regardless of the background schedule.
func (a *App) SyncNow(ctx context.Context) (DrainResult, error) {
	if a.monitor != nil && !a.monitor.Check(ctx) {
		return DrainResult{}, fmt.Errorf("server unreachable")
	}
	res, err := a.queue.Drain(ctx)
	if err == nil {
		a.recordDrain(res)
	}
	return res, err
}

// recordDrain stores the last drain outcome. Drains run from the reconnect
// hook and the background loop as well as SyncNow, so the fields are locked.
func (a *App) recordDrain(res DrainResult) {
	a.mu.Lock()
	a.lastDrain = &res
	a.lastDrainAt = time.Now()
	a.mu.Unlock()
}

func (a *App) lastDrainSnapshot() (*DrainResult, time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastDrain, a.lastDrainAt
}

func (a *App) drain(ctx context.Context, trigger string) {
	if a.Online() {
		res, err := a.queue.Drain(ctx)
		switch {
		case errors.Is(err, ErrDrainHeld):
			return
		case err != nil:
			a.log.Warn("queue drain failed", "trigger", trigger, "error", err)
		default:
			a.recordDrain(res)
			if res.Success+res.Failed+res.Abandoned > 0 {
				a.log.Info("queue drained",
					"trigger", trigger,
					"success", res.Success,
					"failed", res.Failed,
					"abandoned", res.Abandoned,
				)
			}
		}
	}
}

func (a *App) Online() bool {
	if a.cfg.Offline {
		return false
	}
	if a.monitor == nil {
		return true
	}
	return a.monitor.Online()
}

func (a *App) Status(ctx context.Context) (SyncStatus, error) {
	count, err := a.queue.Count(ctx)
	if err != nil {
		return SyncStatus{}, err
	}
	dead, err := a.queue.Dead(ctx)
	if err != nil {
		return SyncStatus{}, err
	}
	last, lastAt := a.lastDrainSnapshot()
	return SyncStatus{
		Online:      a.Online(),
		QueueLength: count,
		DeadLength:  len(dead),
		LastDrain:   last,
		LastDrainAt: lastAt,
	}, nil
}

func (a *App) Queue() *Queue {
	return a.queue
}

func (a *App) GeneratePlan(ctx context.Context, req aiplan.Request) (aiplan.Plan, error) {
	if !a.Online() {
		return aiplan.Plan{}, fmt.Errorf("plan generation requires a server connection")
	}
	return a.http.GeneratePlan(ctx, req)
}

func (a *App) HealthCheck(ctx context.Context) error {
	return a.http.HealthCheck(ctx)
}

// ==================== Token ====================

func (a *App) SaveToken(token string) error {
	if err := os.WriteFile(a.cfg.TokenPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	a.http.SetToken(token)
	return nil
}

func (a *App) LoadToken() (string, error) {
	data, err := os.ReadFile(a.cfg.TokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("load token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (a *App) ClearToken() error {
	if err := os.Remove(a.cfg.TokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear token: %w", err)
	}
	a.http.SetToken("")
	return nil
}

func (a *App) Shutdown() error {
	a.log.Info("shutting down")
	return a.store.Close()
}
