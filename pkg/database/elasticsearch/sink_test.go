package elasticsearch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-observe/pkg/observe"
	"github.com/huynhanx03/go-observe/pkg/settings"
)

type product struct {
	SKU     string `json:"sku"`
	Price   int    `json:"price"`
	Deleted bool   `json:"-"`
}

func encodeProduct(p product) (Action, error) {
	if p.Deleted {
		return Action{Op: OpDelete, ID: p.SKU}, nil
	}
	return Action{Op: OpIndex, ID: p.SKU, Doc: p}, nil
}

// fakeTransport records bulk requests and answers with a canned body.
type fakeTransport struct {
	requests []*http.Request
	bodies   []string
	status   int
	response string
	err      error
}

func (f *fakeTransport) Perform(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		f.bodies = append(f.bodies, string(data))
	}
	if f.err != nil {
		return nil, f.err
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(f.response)),
	}, nil
}

func ndjsonLines(t *testing.T, body string) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestSink_BulkOnCommit(t *testing.T) {
	tr := &fakeTransport{response: `{"errors":false,"items":[]}`}
	sink := NewSink[product](context.Background(), tr, "products", "true", encodeProduct)

	require.NoError(t, sink.OnStart())
	require.NoError(t, sink.OnUpdates(slices.Values([]product{{SKU: "a", Price: 1}, {SKU: "b", Price: 2}})))
	require.NoError(t, sink.OnUpdates(slices.Values([]product{{SKU: "a", Deleted: true}})))
	assert.Empty(t, tr.requests, "nothing is sent before commit")

	require.NoError(t, sink.OnCommit())
	require.Len(t, tr.requests, 1)

	req := tr.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/products/_bulk", req.URL.Path)
	assert.Equal(t, "true", req.URL.Query().Get("refresh"))

	lines := ndjsonLines(t, tr.bodies[0])
	require.Len(t, lines, 5)
	assert.Equal(t, map[string]any{"index": map[string]any{"_id": "a"}}, lines[0])
	assert.Equal(t, map[string]any{"sku": "a", "price": float64(1)}, lines[1])
	assert.Equal(t, map[string]any{"index": map[string]any{"_id": "b"}}, lines[2])
	assert.Equal(t, map[string]any{"delete": map[string]any{"_id": "a"}}, lines[4])
}

func TestSink_EmptyTransactionSendsNothing(t *testing.T) {
	tr := &fakeTransport{}
	sink := NewSink[product](context.Background(), tr, "products", "", encodeProduct)

	require.NoError(t, observe.Transact[product](sink))
	assert.Empty(t, tr.requests)
}

func TestSink_Failures(t *testing.T) {
	tests := []struct {
		name string
		tr   *fakeTransport
		want error
	}{
		{
			name: "transport_error",
			tr:   &fakeTransport{err: errors.New("connection refused")},
			want: ErrBulkFailed,
		},
		{
			name: "http_error",
			tr:   &fakeTransport{status: http.StatusServiceUnavailable, response: `{}`},
			want: ErrBulkFailed,
		},
		{
			name: "bad_response",
			tr:   &fakeTransport{response: `not json`},
			want: ErrBulkFailed,
		},
		{
			name: "item_error",
			tr: &fakeTransport{response: `{"errors":true,"items":[
				{"index":{"_id":"a","status":201}},
				{"index":{"_id":"b","status":400,"error":{"type":"mapper_parsing_exception","reason":"bad price"}}}
			]}`},
			want: ErrBulkItemFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewSink[product](context.Background(), tt.tr, "products", "", encodeProduct)

			err := observe.Transact[product](sink, slices.Values([]product{{SKU: "a"}, {SKU: "b"}}))
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestSink_ItemErrorDetails(t *testing.T) {
	tr := &fakeTransport{response: `{"errors":true,"items":[{"index":{"_id":"b","status":400,"error":{"type":"mapper_parsing_exception","reason":"bad price"}}}]}`}
	sink := NewSink[product](context.Background(), tr, "products", "", encodeProduct)

	err := observe.Transact[product](sink, slices.Values([]product{{SKU: "b"}}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 items")
	assert.Contains(t, err.Error(), "bad price")
}

func TestSink_EncodeFailure(t *testing.T) {
	sink := NewSink[product](context.Background(), &fakeTransport{}, "products", "",
		func(product) (Action, error) { return Action{Op: "upsert"}, nil })

	require.NoError(t, sink.OnStart())
	err := sink.OnUpdates(slices.Values([]product{{SKU: "a"}}))
	assert.True(t, errors.Is(err, ErrEncodeFailed), "got %v", err)
}

func TestSink_EncodeFailureAbortsTransaction(t *testing.T) {
	tr := &fakeTransport{response: `{"errors":false}`}
	encode := func(p product) (Action, error) {
		if p.SKU == "bad" {
			// The action line encodes, the document does not.
			return Action{Op: OpIndex, ID: p.SKU, Doc: make(chan int)}, nil
		}
		return encodeProduct(p)
	}
	sink := NewSink[product](context.Background(), tr, "products", "", encode)

	require.NoError(t, sink.OnStart())
	err := sink.OnUpdates(slices.Values([]product{{SKU: "a"}, {SKU: "bad"}}))
	assert.True(t, errors.Is(err, ErrEncodeFailed), "got %v", err)
	var jerr *json.UnsupportedTypeError
	assert.True(t, errors.As(err, &jerr), "driver error lost: %v", err)

	assert.Equal(t, observe.ErrTxAborted, sink.OnCommit())
	assert.Empty(t, tr.requests, "an aborted transaction must not be sent")

	require.NoError(t, observe.Transact[product](sink, slices.Values([]product{{SKU: "c", Price: 3}})))
	require.Len(t, tr.bodies, 1)
	lines := ndjsonLines(t, tr.bodies[0])
	require.Len(t, lines, 2, "no dangling action line may survive")
	assert.Equal(t, "c", lines[1]["sku"])
}

func TestSink_BehindCachingRecoversFromFailure(t *testing.T) {
	tr := &fakeTransport{response: `{"errors":false}`}
	o := observe.NewCaching[product](NewSink[product](context.Background(), tr, "products", "",
		func(p product) (Action, error) {
			if p.SKU == "" {
				return Action{}, errors.New("missing sku")
			}
			return encodeProduct(p)
		}))

	err := observe.Transact[product](o, slices.Values([]product{{}}))
	assert.True(t, errors.Is(err, ErrEncodeFailed), "got %v", err)

	require.NoError(t, observe.Transact[product](o, slices.Values([]product{{SKU: "d"}})))
	assert.Len(t, tr.requests, 1)
}

func TestSink_TransportErrorKept(t *testing.T) {
	refused := errors.New("connection refused")
	sink := NewSink[product](context.Background(), &fakeTransport{err: refused}, "products", "", encodeProduct)

	err := observe.Transact[product](sink, slices.Values([]product{{SKU: "a"}}))
	assert.True(t, errors.Is(err, ErrBulkFailed), "got %v", err)
	assert.True(t, errors.Is(err, refused), "driver error lost: %v", err)
}

func TestSink_NextTransactionStartsClean(t *testing.T) {
	tr := &fakeTransport{response: `{"errors":false}`}
	sink := NewSink[product](context.Background(), tr, "products", "", encodeProduct)

	require.NoError(t, observe.Transact[product](sink, slices.Values([]product{{SKU: "a"}})))
	require.NoError(t, observe.Transact[product](sink, slices.Values([]product{{SKU: "b"}})))

	require.Len(t, tr.bodies, 2)
	assert.False(t, bytes.Contains([]byte(tr.bodies[1]), []byte(`"a"`)))
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(settings.Elasticsearch{Index: "products"})
	assert.True(t, errors.Is(err, settings.ErrInvalidConfig), "got %v", err)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(settings.Elasticsearch{Addresses: []string{"http://localhost:9200"}, Index: "products"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
