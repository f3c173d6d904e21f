package observe

import (
	"iter"
	"slices"
)

var _ Observer[int] = (*Caching[int])(nil)

// Caching buffers the batches of a transaction and replays them to the wrapped
// observer as one freshly started transaction when OnCommit is received.
//
// Batches are materialized on arrival because a batch cannot be iterated twice.
// Caching is NOT thread-safe; wrap it in a Shared for concurrent producers.
type Caching[T any] struct {
	observer Observer[T] // receives the replayed transaction
	data     [][]T       // batches of the open transaction, in arrival order
	state    Lifecycle
}

// NewCaching creates a Caching wrapping observer.
func NewCaching[T any](observer Observer[T]) *Caching[T] {
	return &Caching[T]{observer: observer}
}

// InTransaction reports whether a transaction is open.
func (c *Caching[T]) InTransaction() bool {
	return c.state.InTransaction()
}

// Pending returns the number of batches buffered for the open transaction.
func (c *Caching[T]) Pending() int {
	return len(c.data)
}

// OnStart opens a transaction without touching the wrapped observer.
func (c *Caching[T]) OnStart() error {
	c.state.Start()
	c.data = nil
	return nil
}

// OnUpdates materializes the batch and appends it to the open transaction.
func (c *Caching[T]) OnUpdates(updates iter.Seq[T]) error {
	c.state.Updates()
	c.data = append(c.data, slices.Collect(updates))
	return nil
}

// OnCommit closes the transaction and forwards it in full.
// Forwarding stops at the first failure; batches already forwarded stay forwarded.
func (c *Caching[T]) OnCommit() error {
	c.state.Commit()

	// Take ownership before forwarding so a failure leaves no open transaction behind.
	data := c.data
	c.data = nil

	if err := c.observer.OnStart(); err != nil {
		return err
	}
	for _, batch := range data {
		if err := c.observer.OnUpdates(slices.Values(batch)); err != nil {
			return err
		}
	}
	return c.observer.OnCommit()
}

// OnCompleted is forwarded immediately, whatever is buffered.
func (c *Caching[T]) OnCompleted() error {
	return c.observer.OnCompleted()
}
