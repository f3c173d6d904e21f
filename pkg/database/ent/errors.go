package ent

import "github.com/pkg/errors"

var (
	ErrUnsupportedDriver = errors.New("ent: unsupported driver")
	ErrOpenFailed        = errors.New("ent: failed to open database")
	ErrPingFailed        = errors.New("ent: failed to ping database")
	ErrBeginFailed       = errors.New("ent: failed to begin transaction")
	ErrEncodeFailed      = errors.New("ent: failed to encode item")
	ErrExecFailed        = errors.New("ent: statement failed")
	ErrCommitFailed      = errors.New("ent: commit failed")
)
