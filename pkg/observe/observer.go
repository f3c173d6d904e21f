package observe

import (
	"iter"
)

// Observer receives batches of incremental updates from a producer, grouped into transactions.
//
// Calls must follow the lifecycle:
//
//	OnStart -> OnUpdates* -> OnCommit   (repeated)
//	OnCompleted                         (once, from any state, terminal)
//
// Issuing a call out of order is a contract violation and implementations panic
// instead of returning an error. Errors returned are operational failures only.
type Observer[T any] interface {
	// OnStart signals that a new transaction begins.
	OnStart() error

	// OnUpdates processes one batch of items.
	// The sequence is single pass and must be fully consumed before returning.
	OnUpdates(updates iter.Seq[T]) error

	// OnCommit signals that the current transaction is complete.
	OnCommit() error

	// OnCompleted signals permanent shutdown. No call of any kind may follow it.
	OnCompleted() error
}

var _ Observer[int] = Funcs[int]{}

// Funcs adapts plain functions to an Observer.
// A nil callback succeeds; a nil Updates still drains the batch.
type Funcs[T any] struct {
	Start     func() error
	Updates   func(updates iter.Seq[T]) error
	Commit    func() error
	Completed func() error
}

func (f Funcs[T]) OnStart() error {
	if f.Start == nil {
		return nil
	}
	return f.Start()
}

func (f Funcs[T]) OnUpdates(updates iter.Seq[T]) error {
	if f.Updates == nil {
		for range updates {
		}
		return nil
	}
	return f.Updates(updates)
}

func (f Funcs[T]) OnCommit() error {
	if f.Commit == nil {
		return nil
	}
	return f.Commit()
}

func (f Funcs[T]) OnCompleted() error {
	if f.Completed == nil {
		return nil
	}
	return f.Completed()
}

// Transact drives o through one complete transaction, one OnUpdates per batch.
// It stops at the first failure and returns it.
func Transact[T any](o Observer[T], batches ...iter.Seq[T]) error {
	if err := o.OnStart(); err != nil {
		return err
	}
	for _, batch := range batches {
		if err := o.OnUpdates(batch); err != nil {
			return err
		}
	}
	return o.OnCommit()
}
