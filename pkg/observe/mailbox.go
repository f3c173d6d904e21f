package observe

import (
	"iter"
	"sync"
)

var _ Observer[int] = (*Mailbox[int])(nil)

type callKind uint8

const (
	callStart callKind = iota
	callUpdates
	callCommit
	callCompleted
)

type call[T any] struct {
	kind    callKind
	updates iter.Seq[T]
	reply   chan error
}

// Mailbox serializes calls to an observer by handing them to a single owning goroutine.
// Callers block until the owner has handled the call, so a batch is always consumed
// before OnUpdates returns. A Mailbox is safe for concurrent use.
type Mailbox[T any] struct {
	observer Observer[T]
	calls    chan call[T]
	done     chan struct{}
	wg       sync.WaitGroup

	mu     sync.RWMutex // guards closed and enqueueing
	closed bool
}

// NewMailbox starts the owner goroutine for observer.
// backlog is the number of calls that may be queued before callers wait to enqueue.
func NewMailbox[T any](observer Observer[T], backlog int) *Mailbox[T] {
	if backlog < 0 {
		backlog = 0
	}
	m := &Mailbox[T]{
		observer: observer,
		calls:    make(chan call[T], backlog),
		done:     make(chan struct{}),
	}

	m.wg.Add(1)
	go m.run()

	return m
}

func (m *Mailbox[T]) run() {
	defer m.wg.Done()

	for {
		select {
		case c := <-m.calls:
			c.reply <- m.dispatch(c)
		case <-m.done:
			return
		}
	}
}

func (m *Mailbox[T]) dispatch(c call[T]) error {
	switch c.kind {
	case callStart:
		return m.observer.OnStart()
	case callUpdates:
		return m.observer.OnUpdates(c.updates)
	case callCommit:
		return m.observer.OnCommit()
	default:
		return m.observer.OnCompleted()
	}
}

func (m *Mailbox[T]) send(kind callKind, updates iter.Seq[T]) error {
	c := call[T]{kind: kind, updates: updates, reply: make(chan error, 1)}

	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrMailboxClosed
	}
	m.calls <- c
	m.mu.RUnlock()

	// Every enqueued call gets exactly one reply, from the owner or from Close.
	return <-c.reply
}

func (m *Mailbox[T]) OnStart() error { return m.send(callStart, nil) }

func (m *Mailbox[T]) OnUpdates(updates iter.Seq[T]) error { return m.send(callUpdates, updates) }

func (m *Mailbox[T]) OnCommit() error { return m.send(callCommit, nil) }

func (m *Mailbox[T]) OnCompleted() error { return m.send(callCompleted, nil) }

// Close stops the owner goroutine once the call in flight, if any, has been handled.
// Calls queued but not yet picked up are answered with ErrMailboxClosed.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.done)
	m.mu.Unlock()

	m.wg.Wait()
	for {
		select {
		case c := <-m.calls:
			c.reply <- ErrMailboxClosed
		default:
			return
		}
	}
}
