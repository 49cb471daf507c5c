package client

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"
)

// State is an observable in-memory view of one entity collection. It loads
// lazily on first use, refreshes through the service layer and accepts
// optimistic upserts and removals so the UI reflects a write before the
// server confirms it.
type State[T any] struct {
	name  string
	fetch func(ctx context.Context) ([]T, ListStatus, error)
	id    func(T) string
	log   *slog.Logger

	mu          sync.RWMutex
	initialized bool
	items       []T
	status      ListStatus
	err         error

	subMu  sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewState[T any](
	name string,
	fetch func(ctx context.Context) ([]T, ListStatus, error),
	id func(T) string,
	log *slog.Logger,
) *State[T] {
	return &State[T]{
		name:  name,
		fetch: fetch,
		id:    id,
		log:   log.With("component", name+"_state"),
		subs:  make(map[int]func()),
	}
}

// Refresh replaces the container contents with a fresh fetch. A fetch
// error is recorded but does not clear items already held, so the view
// keeps showing the last good data.
func (s *State[T]) Refresh(ctx context.Context) error {
	items, status, err := s.fetch(ctx)

	s.mu.Lock()
	s.initialized = true
	s.err = err
	if err == nil {
		s.items = items
		s.status = status
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("refresh failed", "error", err)
	} else if status.FromCache {
		s.log.Info("refreshed from cache", "warning", status.Warning)
	}
	s.notify()
	return err
}

// EnsureLoaded refreshes only on first use.
func (s *State[T]) EnsureLoaded(ctx context.Context) error {
	s.mu.RLock()
	done := s.initialized
	s.mu.RUnlock()
	if done {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *State[T]) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

func (s *State[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *State[T]) Status() ListStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *State[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Upsert replaces the item with the same id, or appends it. Used both for
// optimistic writes and for swapping a temp record for the server one.
func (s *State[T]) Upsert(item T) {
	s.mu.Lock()
	replaced := false
	for i := range s.items {
		if s.id(s.items[i]) == s.id(item) {
			s.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item)
	}
	s.mu.Unlock()
	s.notify()
}

// Replace substitutes the item held under oldID with a new item, keeping
// its position. A no-op when oldID is absent.
func (s *State[T]) Replace(oldID string, item T) {
	s.mu.Lock()
	for i := range s.items {
		if s.id(s.items[i]) == oldID {
			s.items[i] = item
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

func (s *State[T]) Remove(id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.id(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers a change callback and returns its cancel func.
// Callbacks run synchronously after each mutation, outside the state lock.
func (s *State[T]) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *State[T]) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
