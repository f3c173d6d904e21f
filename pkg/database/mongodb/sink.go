package mongodb

import (
	"context"
	"iter"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/observe"
)

// Inserter is the part of *mongo.Collection the sink needs.
type Inserter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

var _ Inserter = (*mongo.Collection)(nil)

// Encoder maps an item to the document stored for it.
type Encoder[T any] func(item T) (any, error)

var _ observe.Observer[int] = (*Sink[int])(nil)

// Sink stores each transaction with one ordered InsertMany issued on commit.
// With an ordered insert the first failing document stops the rest of the transaction.
// An encoding failure aborts the transaction before anything is sent.
type Sink[T any] struct {
	ctx    context.Context
	coll   Inserter
	encode Encoder[T]

	state observe.Lifecycle
	docs  []interface{}
}

// NewSink creates a Sink inserting into coll.
func NewSink[T any](ctx context.Context, coll Inserter, encode Encoder[T]) *Sink[T] {
	return &Sink[T]{ctx: ctx, coll: coll, encode: encode}
}

func (s *Sink[T]) OnStart() error {
	s.state.Start()
	s.docs = nil
	return nil
}

func (s *Sink[T]) OnUpdates(updates iter.Seq[T]) error {
	if err := s.state.Updates(); err != nil {
		return err
	}

	for item := range updates {
		doc, err := s.encode(item)
		if err != nil {
			s.state.Abort()
			s.docs = nil
			return apperr.Wrap(ErrEncodeFailed, err)
		}
		s.docs = append(s.docs, doc)
	}
	return nil
}

func (s *Sink[T]) OnCommit() error {
	if err := s.state.Commit(); err != nil {
		return err
	}

	docs := s.docs
	s.docs = nil
	if len(docs) == 0 {
		return nil
	}

	res, err := s.coll.InsertMany(s.ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		return apperr.Wrapf(ErrInsertFailed, err, "%d of %d documents inserted", inserted, len(docs))
	}
	return nil
}

// OnCompleted drops any unsent transaction. The collection's client is owned by the caller.
func (s *Sink[T]) OnCompleted() error {
	s.docs = nil
	return nil
}
