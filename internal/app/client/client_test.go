package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"fitlog/internal/app/client/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	store := newTestStore(t)
	hc := newHTTPClient(&config.Config{ServerAddress: "http://127.0.0.1:0"}, slog.Default())
	return &App{
		cfg:   &config.Config{Offline: true, SyncInterval: 1},
		log:   slog.Default(),
		store: store,
		http:  hc,
		queue: NewQueue(store, hc, "test-owner", slog.Default()),
	}
}

func TestApp_StatusReflectsLastDrain(t *testing.T) {
	app := newTestApp(t)

	status, err := app.Status(context.Background())
	require.NoError(t, err)
	assert.Nil(t, status.LastDrain)
	assert.False(t, status.Online)

	app.recordDrain(DrainResult{Success: 2, Failed: 1})

	status, err = app.Status(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status.LastDrain)
	assert.Equal(t, 2, status.LastDrain.Success)
	assert.Equal(t, 1, status.LastDrain.Failed)
	assert.False(t, status.LastDrainAt.IsZero())
}

// Drain results are written by the reconnect hook and the background loop
// while Status reads them; run both sides concurrently so the race detector
// can see any unguarded access.
func TestApp_ConcurrentDrainRecordingAndStatus(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				app.recordDrain(DrainResult{Success: n})
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = app.Status(ctx)
			}
		}()
	}
	wg.Wait()

	last, lastAt := app.lastDrainSnapshot()
	require.NotNil(t, last)
	assert.False(t, lastAt.IsZero())
}

func TestApp_RunStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
