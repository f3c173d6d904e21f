package widecolumn

import (
	"context"
	"iter"

	"github.com/gocql/gocql"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/observe"
)

// Statement is one CQL statement with its bound values.
type Statement struct {
	Query string
	Args  []any
}

// Encoder maps an item to the statements that apply it.
type Encoder[T any] func(item T) ([]Statement, error)

// BatchSession is the part of *gocql.Session the Sink needs.
type BatchSession interface {
	NewBatch(typ gocql.BatchType) *gocql.Batch
	ExecuteBatch(batch *gocql.Batch) error
	Close()
}

var _ BatchSession = (*gocql.Session)(nil)

// Option configures a Sink.
type Option func(*options)

type options struct {
	ctx       context.Context
	batchType gocql.BatchType
	owned     bool
}

// WithContext sets the context every batch executes under.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithBatchType overrides the default logged batch.
func WithBatchType(typ gocql.BatchType) Option {
	return func(o *options) { o.batchType = typ }
}

// WithOwnedSession makes OnCompleted close the session.
func WithOwnedSession() Option {
	return func(o *options) { o.owned = true }
}

var _ observe.Observer[int] = (*Sink[int])(nil)

// Sink applies each transaction as one CQL batch executed on commit.
// A logged batch is atomic: either every statement applies or none does.
// An encoding failure aborts the transaction and its batch is never executed.
type Sink[T any] struct {
	session BatchSession
	encode  Encoder[T]
	opts    options

	state observe.Lifecycle
	batch *gocql.Batch
}

// NewSink creates a Sink executing batches on session.
func NewSink[T any](session BatchSession, encode Encoder[T], opts ...Option) *Sink[T] {
	o := options{
		ctx:       context.Background(),
		batchType: gocql.LoggedBatch,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sink[T]{
		session: session,
		encode:  encode,
		opts:    o,
	}
}

func (s *Sink[T]) OnStart() error {
	s.state.Start()
	s.batch = s.session.NewBatch(s.opts.batchType).WithContext(s.opts.ctx)
	return nil
}

func (s *Sink[T]) OnUpdates(updates iter.Seq[T]) error {
	if err := s.state.Updates(); err != nil {
		return err
	}

	for item := range updates {
		stmts, err := s.encode(item)
		if err != nil {
			s.state.Abort()
			s.batch = nil
			return apperr.Wrap(ErrEncodeFailed, err)
		}
		for _, st := range stmts {
			s.batch.Query(st.Query, st.Args...)
		}
	}
	return nil
}

func (s *Sink[T]) OnCommit() error {
	if err := s.state.Commit(); err != nil {
		return err
	}

	batch := s.batch
	s.batch = nil
	if batch.Size() == 0 {
		return nil
	}
	if err := s.session.ExecuteBatch(batch); err != nil {
		return apperr.Wrapf(ErrBatchFailed, err, "%d statements", batch.Size())
	}
	return nil
}

// OnCompleted drops any unexecuted batch and closes the session when owned.
func (s *Sink[T]) OnCompleted() error {
	s.batch = nil
	if s.opts.owned {
		s.session.Close()
	}
	return nil
}
