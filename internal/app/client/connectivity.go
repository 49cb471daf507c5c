package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

// Connectivity reports whether the device currently has a usable path to the
// server. It replaces implicit global network state with an injected handle.
type Connectivity interface {
	Online() bool
}

// StaticConnectivity is a fixed verdict, used by tests and the --offline flag.
type StaticConnectivity bool

func (s StaticConnectivity) Online() bool { return bool(s) }

// Monitor tracks connectivity by probing the server health endpoint on an
// interval and caching the verdict. Consumers read the cached value; they
// never block on a probe.
type Monitor struct {
	probe    func(context.Context) error
	interval time.Duration
	log      *slog.Logger

	online atomic.Bool

	mu          sync.Mutex
	onReconnect []func()
}

func NewMonitor(probe func(context.Context) error, interval time.Duration, log *slog.Logger) *Monitor {
	m := &Monitor{
		probe:    probe,
		interval: interval,
		log:      log.With("component", "connectivity"),
	}
	// Assume online until the first probe says otherwise, matching the
	// optimistic default of a freshly loaded page.
	m.online.Store(true)
	return m
}

func (m *Monitor) Online() bool {
	return m.online.Load()
}

// SetOnline overrides the cached verdict. A forced offline->online flip runs
// the reconnect hooks just like a probe result would.
func (m *Monitor) SetOnline(online bool) {
	was := m.online.Swap(online)
	if !was && online {
		m.fireReconnect()
	}
}

// OnReconnect registers a hook invoked whenever connectivity transitions
// from offline to online.
func (m *Monitor) OnReconnect(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReconnect = append(m.onReconnect, fn)
}

// Check probes immediately and records the result.
func (m *Monitor) Check(ctx context.Context) bool {
	err := m.probe(ctx)
	was := m.online.Swap(err == nil)
	switch {
	case was && err != nil:
		m.log.Warn("connection lost", "error", err)
	case !was && err == nil:
		m.log.Info("connection restored")
		m.fireReconnect()
	}
	return err == nil
}

// Run probes on the configured interval until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

func (m *Monitor) fireReconnect() {
	m.mu.Lock()
	hooks := make([]func(), len(m.onReconnect))
	copy(hooks, m.onReconnect)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
