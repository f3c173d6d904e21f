package redis

import (
	"context"
	"iter"
	"time"

	redisV9 "github.com/redis/go-redis/v9"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/observe"
)

// Apply queues the commands for one item on pipe.
type Apply[T any] func(ctx context.Context, pipe redisV9.Pipeliner, item T) error

// TxClient is the part of a Redis client the sink needs.
type TxClient interface {
	TxPipeline() redisV9.Pipeliner
	Close() error
}

var _ TxClient = (*redisV9.Client)(nil)

// Option configures a Sink.
type Option func(*sinkOptions)

type sinkOptions struct {
	ctx     context.Context
	timeout time.Duration
	owned   bool
}

// WithContext sets the parent context of every command.
func WithContext(ctx context.Context) Option {
	return func(o *sinkOptions) { o.ctx = ctx }
}

// WithExecTimeout bounds the EXEC of each transaction.
func WithExecTimeout(d time.Duration) Option {
	return func(o *sinkOptions) { o.timeout = d }
}

// WithOwnedClient makes OnCompleted close the client.
func WithOwnedClient() Option {
	return func(o *sinkOptions) { o.owned = true }
}

var _ observe.Observer[int] = (*Sink[int])(nil)

// Sink applies each transaction atomically: commands queue in a MULTI/EXEC pipeline
// during the transaction and run together on commit. A failing Apply aborts the
// transaction: the pipeline is discarded and OnCommit returns observe.ErrTxAborted.
type Sink[T any] struct {
	client TxClient
	apply  Apply[T]
	opts   sinkOptions

	state observe.Lifecycle
	pipe  redisV9.Pipeliner
}

// NewSink creates a Sink over client.
func NewSink[T any](client TxClient, apply Apply[T], opts ...Option) *Sink[T] {
	o := sinkOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sink[T]{client: client, apply: apply, opts: o}
}

func (s *Sink[T]) OnStart() error {
	s.state.Start()
	s.discard()
	s.pipe = s.client.TxPipeline()
	return nil
}

func (s *Sink[T]) OnUpdates(updates iter.Seq[T]) error {
	if err := s.state.Updates(); err != nil {
		return err
	}

	for item := range updates {
		if err := s.apply(s.opts.ctx, s.pipe, item); err != nil {
			return s.abort(apperr.Wrap(ErrApplyFailed, err))
		}
	}
	return nil
}

// abort discards the pipeline of the open transaction and returns cause.
func (s *Sink[T]) abort(cause error) error {
	s.state.Abort()
	s.discard()
	return cause
}

func (s *Sink[T]) discard() {
	if s.pipe != nil {
		s.pipe.Discard()
		s.pipe = nil
	}
}

func (s *Sink[T]) OnCommit() error {
	if err := s.state.Commit(); err != nil {
		return err
	}

	pipe := s.pipe
	s.pipe = nil
	if pipe.Len() == 0 {
		return nil
	}

	ctx := s.opts.ctx
	if s.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.timeout)
		defer cancel()
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Wrap(ErrExecFailed, err)
	}
	return nil
}

func (s *Sink[T]) OnCompleted() error {
	s.discard()
	if !s.opts.owned {
		return nil
	}
	if err := s.client.Close(); err != nil {
		return apperr.Wrap(ErrCloseFailed, err)
	}
	return nil
}
