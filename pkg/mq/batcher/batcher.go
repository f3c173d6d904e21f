package batcher

import (
	"runtime"
	"sync"
)

const defaultStripeSize = 512

// StripedBatcher is a high-performance, concurrent batcher using striped buffers.
// It leverages sync.Pool to reduce contention and allocations.
//
// Behavior:
//   - Multiple goroutines can call Push() concurrently.
//   - Items are batched into local "stripes" (buffers) per P (processor) ideally.
//   - When a stripe is full, it is flushed to the Consumer immediately.
//   - Flush drains every stripe ever created, so calling it on shutdown loses nothing.
//     Items pushed concurrently with Flush land in this flush or a later one.
//   - Order is kept within a stripe only; items from different goroutines may
//     reach the Consumer in different batches.
//   - At most Config.MaxStripes stripes are ever created. The pool drops idle
//     stripes on GC; once the limit is reached, refills reuse registered stripes.
type StripedBatcher[T any] struct {
	pool *sync.Pool

	mu         sync.Mutex
	stripes    []*stripe[T]
	maxStripes int
	next       int // round-robin cursor over stripes once the limit is reached
}

// New creates a new StripedBatcher for type T.
func New[T any](cons Consumer[T], cfg Config) *StripedBatcher[T] {
	if cfg.StripeSize <= 0 {
		cfg.StripeSize = defaultStripeSize
	}
	if cfg.MaxStripes <= 0 {
		cfg.MaxStripes = runtime.GOMAXPROCS(0)
	}

	b := &StripedBatcher[T]{maxStripes: cfg.MaxStripes}
	b.pool = &sync.Pool{
		New: func() any {
			return b.acquire(cons, cfg)
		},
	}
	return b
}

// acquire registers a new stripe, or hands out a registered one when the limit is reached.
// A stripe handed to two goroutines at once stays correct; its lock serializes them.
func (b *StripedBatcher[T]) acquire(cons Consumer[T], cfg Config) *stripe[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.stripes) < b.maxStripes {
		s := newStripe[T](cons, cfg.StripeSize, cfg.OnError)
		b.stripes = append(b.stripes, s)
		return s
	}

	s := b.stripes[b.next%len(b.stripes)]
	b.next++
	return s
}

// Push adds an item to the batcher.
// It may trigger a flush to Consumer if the underlying stripe becomes full.
func (b *StripedBatcher[T]) Push(item T) {
	s := b.pool.Get().(*stripe[T])
	s.Push(item)
	b.pool.Put(s)
}

// Flush hands every partially filled stripe to the Consumer.
func (b *StripedBatcher[T]) Flush() {
	b.mu.Lock()
	stripes := make([]*stripe[T], len(b.stripes))
	copy(stripes, b.stripes)
	b.mu.Unlock()

	for _, s := range stripes {
		s.Flush()
	}
}
