package widecolumn

import "github.com/pkg/errors"

var (
	ErrConnectFailed = errors.New("widecolumn: failed to connect to cluster")
	ErrEncodeFailed  = errors.New("widecolumn: failed to encode item")
	ErrBatchFailed   = errors.New("widecolumn: batch execution failed")
)
