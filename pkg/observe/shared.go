package observe

import (
	"iter"
	"sync"
)

var _ Observer[int] = (*Shared[int])(nil)

// Shared is a handle to an Observer guarded by a mutex.
// Handles obtained through Clone share the same observer and lock, so calls through
// any handle, from any goroutine, reach the inner observer one at a time.
//
// The lock is not reentrant: the inner observer must never call back into the
// same Shared while handling a call.
type Shared[T any] struct {
	state *sharedState[T]
}

type sharedState[T any] struct {
	mu       sync.Mutex
	observer Observer[T]
}

// NewShared takes ownership of observer and returns the first handle to it.
func NewShared[T any](observer Observer[T]) *Shared[T] {
	return &Shared[T]{
		state: &sharedState[T]{observer: observer},
	}
}

// Clone returns a new handle to the same observer.
func (s *Shared[T]) Clone() *Shared[T] {
	return &Shared[T]{state: s.state}
}

// Do runs fn with the inner observer while holding the lock.
func (s *Shared[T]) Do(fn func(Observer[T])) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	fn(s.state.observer)
}

func (s *Shared[T]) OnStart() error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.observer.OnStart()
}

func (s *Shared[T]) OnUpdates(updates iter.Seq[T]) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.observer.OnUpdates(updates)
}

func (s *Shared[T]) OnCommit() error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.observer.OnCommit()
}

func (s *Shared[T]) OnCompleted() error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.observer.OnCompleted()
}
