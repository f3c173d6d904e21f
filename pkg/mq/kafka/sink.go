package kafka

import (
	"iter"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/encoding"
	"github.com/huynhanx03/go-observe/pkg/observe"
)

// HeaderTxnID carries the base62 transaction id on every message of a transaction.
const HeaderTxnID = "txn-id"

// Encoder turns one item into a message key and value. A nil key lets the partitioner choose.
type Encoder[T any] func(item T) (key, value []byte, err error)

// Option configures a Sink.
type Option func(*options)

type options struct {
	ids observe.IDGenerator
}

// WithIDGenerator tags every message with HeaderTxnID from ids.
func WithIDGenerator(ids observe.IDGenerator) Option {
	return func(o *options) { o.ids = ids }
}

var _ observe.Observer[int] = (*Sink[int])(nil)

// Sink publishes each transaction to a topic.
// Items are encoded as they arrive and sent with a single SendMessages on commit,
// so a transaction that never commits is never published. An encoding failure
// aborts the transaction: its messages are dropped and OnCommit returns observe.ErrTxAborted.
type Sink[T any] struct {
	producer sarama.SyncProducer
	topic    string
	encode   Encoder[T]
	ids      observe.IDGenerator

	state   observe.Lifecycle
	pending []*sarama.ProducerMessage
	txnID   int64
}

// NewSink creates a Sink writing to topic. The sink owns producer and closes it on OnCompleted.
func NewSink[T any](producer sarama.SyncProducer, topic string, encode Encoder[T], opts ...Option) *Sink[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sink[T]{
		producer: producer,
		topic:    topic,
		encode:   encode,
		ids:      o.ids,
	}
}

func (s *Sink[T]) OnStart() error {
	s.state.Start()
	s.pending = s.pending[:0]
	if s.ids != nil {
		s.txnID = s.ids.Generate()
	}
	return nil
}

func (s *Sink[T]) OnUpdates(updates iter.Seq[T]) error {
	if err := s.state.Updates(); err != nil {
		return err
	}

	for item := range updates {
		key, value, err := s.encode(item)
		if err != nil {
			return s.abort(apperr.Wrap(ErrEncodeFailed, err))
		}
		s.pending = append(s.pending, s.message(key, value))
	}
	return nil
}

// abort drops the pending messages of the open transaction and returns cause.
func (s *Sink[T]) abort(cause error) error {
	s.state.Abort()
	s.pending = nil
	return cause
}

func (s *Sink[T]) message(key, value []byte) *sarama.ProducerMessage {
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(value),
	}
	if key != nil {
		msg.Key = sarama.ByteEncoder(key)
	}
	if s.ids != nil {
		msg.Headers = []sarama.RecordHeader{{
			Key:   []byte(HeaderTxnID),
			Value: []byte(encoding.Base62Encode(uint64(s.txnID))),
		}}
	}
	return msg
}

func (s *Sink[T]) OnCommit() error {
	if err := s.state.Commit(); err != nil {
		return err
	}

	msgs := s.pending
	s.pending = nil
	if len(msgs) == 0 {
		return nil
	}

	if err := s.producer.SendMessages(msgs); err != nil {
		var perrs sarama.ProducerErrors
		if errors.As(err, &perrs) {
			return apperr.Wrapf(ErrSendFailed, perrs[0].Err, "%d of %d messages", len(perrs), len(msgs))
		}
		return apperr.Wrap(ErrSendFailed, err)
	}
	return nil
}

func (s *Sink[T]) OnCompleted() error {
	if err := s.producer.Close(); err != nil {
		return apperr.Wrap(ErrCloseFailed, err)
	}
	return nil
}
