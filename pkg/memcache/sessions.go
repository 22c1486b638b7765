// pkg/memcache/sessions.go
package mem

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("session not found or expired")

// Store keeps values in memory with an idle TTL. Callers only touch values
// inside Update or Peek, which run under the store lock.
type Store[T any] interface {
	Put(id string, value T)

	// Update runs fn on the value under the write lock and refreshes its TTL.
	// Returns ErrNotFound if the id is missing or expired, else fn's error.
	Update(id string, fn func(T) error) error

	// Peek runs fn under the read lock without refreshing the TTL.
	Peek(id string, fn func(T) error) error

	Delete(id string)

	// Sweep removes entries that expired before now and reports how many.
	Sweep(now time.Time) int
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

type Sessions[T any] struct {
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]*entry[T]
}

func NewSessions[T any](ttl time.Duration) *Sessions[T] {
	return &Sessions[T]{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]*entry[T]),
	}
}

func (s *Sessions[T]) Put(id string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = &entry[T]{
		value:     value,
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *Sessions[T]) Update(id string, fn func(T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return ErrNotFound
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return ErrNotFound
	}
	e.expiresAt = now.Add(s.ttl)
	return fn(e.value)
}

func (s *Sessions[T]) Peek(id string, fn func(T) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || s.now().After(e.expiresAt) {
		return ErrNotFound
	}
	return fn(e.value)
}

func (s *Sessions[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

func (s *Sessions[T]) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// RunJanitor sweeps expired entries every interval until ctx is done.
func RunJanitor[T any](ctx context.Context, store Store[T], interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Sweep(now); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
