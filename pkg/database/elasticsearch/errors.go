package elasticsearch

import "github.com/pkg/errors"

var (
	ErrConnectionFailed = errors.New("elasticsearch: failed to create client")
	ErrEncodeFailed     = errors.New("elasticsearch: failed to encode item")
	ErrBulkFailed       = errors.New("elasticsearch: bulk request failed")
	ErrBulkItemFailed   = errors.New("elasticsearch: bulk item failed")
)
