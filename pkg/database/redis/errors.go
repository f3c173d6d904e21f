package redis

import "github.com/pkg/errors"

var (
	ErrConnectionFailed = errors.New("redis: failed to connect")
	ErrApplyFailed      = errors.New("redis: failed to queue item")
	ErrExecFailed       = errors.New("redis: transaction failed")
	ErrCloseFailed      = errors.New("redis: failed to close client")
)
