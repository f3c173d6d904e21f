package batcher

import (
	"slices"

	"github.com/huynhanx03/go-observe/pkg/observe"
)

var _ Consumer[int] = (*Transactor[int])(nil)

// Transactor is a Consumer that delivers every flushed batch as one transaction.
// Concurrent flushes are serialized: a whole transaction runs under the Shared lock,
// so the observer never sees two transactions interleave.
type Transactor[T any] struct {
	observer *observe.Shared[T]
}

// NewTransactor creates a Transactor delivering to observer.
func NewTransactor[T any](observer *observe.Shared[T]) *Transactor[T] {
	return &Transactor[T]{observer: observer}
}

// Consume runs start, one update with batch, commit.
func (t *Transactor[T]) Consume(batch []T) error {
	var err error
	t.observer.Do(func(o observe.Observer[T]) {
		err = observe.Transact(o, slices.Values(batch))
	})
	return err
}

// Complete signals the observer that no more transactions will follow.
func (t *Transactor[T]) Complete() error {
	return t.observer.OnCompleted()
}
