package mongodb

import "github.com/pkg/errors"

var (
	ErrConnectFailed    = errors.New("mongodb: failed to connect")
	ErrPingFailed       = errors.New("mongodb: failed to ping")
	ErrEncodeFailed     = errors.New("mongodb: failed to encode item")
	ErrInsertFailed     = errors.New("mongodb: failed to insert transaction")
)
