package kafka

import "github.com/pkg/errors"

var (
	ErrConnectionFailed = errors.New("kafka: failed to connect")
	ErrEncodeFailed     = errors.New("kafka: failed to encode item")
	ErrSendFailed       = errors.New("kafka: failed to send transaction")
	ErrCloseFailed      = errors.New("kafka: failed to close producer")
)
