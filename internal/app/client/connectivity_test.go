package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestMonitor_CheckTracksProbeResult(t *testing.T) {
	var probeErr error
	m := NewMonitor(func(ctx context.Context) error { return probeErr }, time.Minute, slog.Default())

	assert.True(t, m.Online(), "optimistic before the first probe")

	probeErr = errors.New("connection refused")
	assert.False(t, m.Check(context.Background()))
	assert.False(t, m.Online())

	probeErr = nil
	assert.True(t, m.Check(context.Background()))
	assert.True(t, m.Online())
}

func TestMonitor_ReconnectHookFiresOnTransition(t *testing.T) {
	var probeErr error
	m := NewMonitor(func(ctx context.Context) error { return probeErr }, time.Minute, slog.Default())

	fired := 0
	m.OnReconnect(func() { fired++ })

	probeErr = errors.New("down")
	m.Check(context.Background())
	assert.Equal(t, 0, fired)

	probeErr = nil
	m.Check(context.Background())
	assert.Equal(t, 1, fired)

	// Staying online does not refire.
	m.Check(context.Background())
	assert.Equal(t, 1, fired)
}

func TestMonitor_SetOnline(t *testing.T) {
	m := NewMonitor(func(ctx context.Context) error { return nil }, time.Minute, slog.Default())

	fired := 0
	m.OnReconnect(func() { fired++ })

	m.SetOnline(false)
	assert.False(t, m.Online())

	m.SetOnline(true)
	assert.True(t, m.Online())
	assert.Equal(t, 1, fired)
}

func TestStaticConnectivity(t *testing.T) {
	assert.True(t, StaticConnectivity(true).Online())
	assert.False(t, StaticConnectivity(false).Online())
}
