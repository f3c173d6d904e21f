package ent

import (
	"context"
	"iter"

	"entgo.io/ent/dialect"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/observe"
)

// Statement is one SQL statement with its arguments.
type Statement struct {
	Query string
	Args  []any
}

// Encoder maps an item to the statements that apply it.
type Encoder[T any] func(item T) ([]Statement, error)

var _ observe.Observer[int] = (*Sink[int])(nil)

// Sink maps every observer transaction onto one database transaction.
// A failed statement rolls the transaction back; later calls of that transaction
// return observe.ErrTxAborted until the next OnStart.
type Sink[T any] struct {
	driver dialect.Driver
	encode Encoder[T]
	ctx    context.Context
	owned  bool

	state observe.Lifecycle
	tx    dialect.Tx
}

// NewSink creates a Sink running transactions on driver.
// When owned is set OnCompleted closes the driver.
func NewSink[T any](ctx context.Context, driver dialect.Driver, encode Encoder[T], owned bool) *Sink[T] {
	return &Sink[T]{
		driver: driver,
		encode: encode,
		ctx:    ctx,
		owned:  owned,
	}
}

func (s *Sink[T]) OnStart() error {
	s.state.Start()

	tx, err := s.driver.Tx(s.ctx)
	if err != nil {
		return s.abort(apperr.Wrap(ErrBeginFailed, err))
	}
	s.tx = tx
	return nil
}

func (s *Sink[T]) OnUpdates(updates iter.Seq[T]) error {
	if err := s.state.Updates(); err != nil {
		return err
	}

	for item := range updates {
		stmts, err := s.encode(item)
		if err != nil {
			return s.abort(apperr.Wrap(ErrEncodeFailed, err))
		}
		for _, st := range stmts {
			if err := s.tx.Exec(s.ctx, st.Query, st.Args, nil); err != nil {
				return s.abort(apperr.Wrapf(ErrExecFailed, err, "%s", st.Query))
			}
		}
	}
	return nil
}

func (s *Sink[T]) OnCommit() error {
	if err := s.state.Commit(); err != nil {
		return err
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return apperr.Wrap(ErrCommitFailed, err)
	}
	return nil
}

// OnCompleted rolls back an open transaction and closes the driver when owned.
func (s *Sink[T]) OnCompleted() error {
	var err error
	if s.tx != nil {
		err = s.tx.Rollback()
		s.tx = nil
	}
	if s.owned {
		if cerr := s.driver.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// abort rolls back the open transaction and returns cause.
func (s *Sink[T]) abort(cause error) error {
	s.state.Abort()
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	return cause
}
