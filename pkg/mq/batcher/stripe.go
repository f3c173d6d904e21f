package batcher

import "sync"

// stripe represents a single buffer stripe.
// Its lock serializes Push calls sharing the stripe and Flush draining it.
type stripe[T any] struct {
	mu      sync.Mutex
	cons    Consumer[T]
	onError func(error)
	data    []T
	cap     int
}

// newStripe creates a new stripe with the given consumer and capacity.
func newStripe[T any](cons Consumer[T], capacity int, onError func(error)) *stripe[T] {
	return &stripe[T]{
		cons:    cons,
		onError: onError,
		data:    make([]T, 0, capacity),
		cap:     capacity,
	}
}

// Push appends an item to the stripe.
// If the stripe becomes full, it flushes data to the consumer.
func (s *stripe[T]) Push(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append(s.data, item)
	if len(s.data) >= s.cap {
		s.flushLocked()
	}
}

// Flush hands any buffered items to the consumer.
func (s *stripe[T]) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) > 0 {
		s.flushLocked()
	}
}

func (s *stripe[T]) flushLocked() {
	batch := s.data
	// A fresh slice keeps the consumer the sole owner of batch.
	s.data = make([]T, 0, s.cap)

	if err := s.cons.Consume(batch); err != nil && s.onError != nil {
		s.onError(err)
	}
}
