package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-observe/pkg/common/apperr"
	"github.com/huynhanx03/go-observe/pkg/observe"
	"github.com/huynhanx03/go-observe/pkg/pool/buffer"
)

// Bulk operations.
const (
	OpIndex  = "index"
	OpDelete = "delete"
)

// Action is the bulk operation for one item. Doc is ignored for deletes.
type Action struct {
	Op  string
	ID  string
	Doc any
}

// Encoder maps an item to its bulk action.
type Encoder[T any] func(item T) (Action, error)

type actionMeta struct {
	Index string `json:"_index,omitempty"`
	ID    string `json:"_id,omitempty"`
}

type bulkResponse struct {
	Errors bool                                `json:"errors"`
	Items  []map[string]bulkResponseItemResult `json:"items"`
}

type bulkResponseItemResult struct {
	ID     string `json:"_id"`
	Status int    `json:"status"`
	Error  *struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error,omitempty"`
}

var _ observe.Observer[int] = (*Sink[int])(nil)

// Sink writes each transaction to an index with one bulk request issued on commit.
// Bulk requests are not atomic: items that failed are reported, the rest stay written.
type Sink[T any] struct {
	transport esapi.Transport
	index     string
	refresh   string
	encode    Encoder[T]
	ctx       context.Context

	state observe.Lifecycle
	body  *bytes.Buffer // pooled, held between OnStart and OnCommit
	count int
}

// NewSink creates a Sink writing to index through transport.
// refresh is passed to the bulk API as is ("", "true", "false" or "wait_for").
func NewSink[T any](ctx context.Context, transport esapi.Transport, index, refresh string, encode Encoder[T]) *Sink[T] {
	return &Sink[T]{
		transport: transport,
		index:     index,
		refresh:   refresh,
		encode:    encode,
		ctx:       ctx,
	}
}

func (s *Sink[T]) OnStart() error {
	s.state.Start()
	s.release()
	s.body = buffer.Get()
	s.count = 0
	return nil
}

func (s *Sink[T]) OnUpdates(updates iter.Seq[T]) error {
	if err := s.state.Updates(); err != nil {
		return err
	}

	enc := json.NewEncoder(s.body)
	for item := range updates {
		action, err := s.encode(item)
		if err != nil {
			return s.abort(apperr.Wrap(ErrEncodeFailed, err))
		}
		if err := s.write(enc, action); err != nil {
			return s.abort(apperr.Wrap(ErrEncodeFailed, err))
		}
		s.count++
	}
	return nil
}

// abort drops the body of the open transaction, partial lines included, and returns cause.
func (s *Sink[T]) abort(cause error) error {
	s.state.Abort()
	s.release()
	return cause
}

// write appends the NDJSON lines of one action.
func (s *Sink[T]) write(enc *json.Encoder, a Action) error {
	switch a.Op {
	case OpIndex, OpDelete:
	default:
		return fmt.Errorf("unsupported bulk op %q", a.Op)
	}

	if err := enc.Encode(map[string]actionMeta{a.Op: {ID: a.ID}}); err != nil {
		return err
	}
	if a.Op == OpDelete {
		return nil
	}
	return enc.Encode(a.Doc)
}

func (s *Sink[T]) OnCommit() error {
	if err := s.state.Commit(); err != nil {
		return err
	}

	defer s.release()
	if s.count == 0 {
		return nil
	}
	body := bytes.NewReader(s.body.Bytes())
	count := s.count

	req := esapi.BulkRequest{
		Index:   s.index,
		Body:    body,
		Refresh: s.refresh,
	}
	res, err := req.Do(s.ctx, s.transport)
	if err != nil {
		return apperr.Wrap(ErrBulkFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Wrap(ErrBulkFailed, res.Status())
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return apperr.Wrap(ErrBulkFailed, err)
	}
	if !br.Errors {
		return nil
	}

	failed := 0
	var first *bulkResponseItemResult
	for _, item := range br.Items {
		for _, result := range item {
			if result.Error == nil {
				continue
			}
			failed++
			if first == nil {
				r := result
				first = &r
			}
		}
	}
	if first == nil {
		return errors.Wrap(ErrBulkItemFailed, "errors reported without item details")
	}
	return errors.Wrapf(ErrBulkItemFailed, "%d of %d items, first %s: %s: %s",
		failed, count, first.ID, first.Error.Type, first.Error.Reason)
}

// OnCompleted drops any unsent transaction. The transport is owned by the caller.
func (s *Sink[T]) OnCompleted() error {
	s.release()
	return nil
}

func (s *Sink[T]) release() {
	buffer.Put(s.body)
	s.body = nil
	s.count = 0
}
