package observe

import (
	"iter"
	"sync/atomic"
	"time"
)

// recorder is a test Observer that counts calls and keeps every batch it receives.
type recorder[T any] struct {
	calledOnStart     int
	calledOnUpdates   int
	calledOnCommit    int
	calledOnCompleted int

	items   int   // total items consumed
	batches [][]T // received batches, in order
	events  []string

	// errors to return, per call
	errStart   error
	errUpdates error
	errCommit  error
	errDone    error

	failOnBatch int // 1-based index of the batch that fails with errUpdates, 0 = every batch

	// overlap detection for concurrency tests
	busy     atomic.Int32
	overlaps atomic.Int32
	hold     time.Duration
}

func (r *recorder[T]) enter() func() {
	if r.busy.Add(1) > 1 {
		r.overlaps.Add(1)
	}
	if r.hold > 0 {
		time.Sleep(r.hold)
	}
	return func() { r.busy.Add(-1) }
}

func (r *recorder[T]) OnStart() error {
	defer r.enter()()
	r.calledOnStart++
	r.events = append(r.events, "start")
	return r.errStart
}

func (r *recorder[T]) OnUpdates(updates iter.Seq[T]) error {
	defer r.enter()()
	r.calledOnUpdates++
	r.events = append(r.events, "updates")

	var batch []T
	for item := range updates {
		batch = append(batch, item)
		r.items++
	}
	r.batches = append(r.batches, batch)

	if r.errUpdates != nil && (r.failOnBatch == 0 || r.failOnBatch == r.calledOnUpdates) {
		return r.errUpdates
	}
	return nil
}

func (r *recorder[T]) OnCommit() error {
	defer r.enter()()
	r.calledOnCommit++
	r.events = append(r.events, "commit")
	return r.errCommit
}

func (r *recorder[T]) OnCompleted() error {
	defer r.enter()()
	r.calledOnCompleted++
	r.events = append(r.events, "completed")
	return r.errDone
}

// once returns a sequence that panics if iterated a second time.
func once[T any](items ...T) iter.Seq[T] {
	used := false
	return func(yield func(T) bool) {
		if used {
			panic("sequence iterated twice")
		}
		used = true
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

var errTest = &testError{}

type testError struct{}

func (e *testError) Error() string { return "test error" }
