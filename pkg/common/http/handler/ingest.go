package handler

import (
	"context"
	"iter"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/go-observe/pkg/observe"
)

// IngestRequest carries the batches of one transaction.
type IngestRequest[T any] struct {
	Batches [][]T `json:"batches" binding:"required,min=1"`
}

// IngestResult reports what the observer accepted.
type IngestResult struct {
	Items   int `json:"items"`
	Batches int `json:"batches"`
}

// Ingest returns a handler that delivers each request body as one transaction.
// Requests are serialized on the Shared lock, so concurrent requests never interleave.
func Ingest[T any](o *observe.Shared[T]) gin.HandlerFunc {
	return Wrap(func(_ context.Context, req *IngestRequest[T]) (IngestResult, error) {
		res := IngestResult{Batches: len(req.Batches)}
		batches := make([]iter.Seq[T], 0, len(req.Batches))
		for _, batch := range req.Batches {
			res.Items += len(batch)
			batches = append(batches, slices.Values(batch))
		}

		var err error
		o.Do(func(inner observe.Observer[T]) {
			err = observe.Transact(inner, batches...)
		})
		if err != nil {
			return IngestResult{}, err
		}
		return res, nil
	})
}
