package observe

import "github.com/pkg/errors"

// Contract violations. Observers panic with these values; they are never returned.
var (
	ErrDuplicateStart      = errors.New("observe: received multiple OnStart events")
	ErrUpdatesWithoutStart = errors.New("observe: OnUpdates was not preceded by an OnStart event")
	ErrCommitWithoutStart  = errors.New("observe: OnCommit was not preceded by an OnStart event")
)

// ErrTxAborted is returned for the rest of a transaction after the observer failed inside it.
var ErrTxAborted = errors.New("observe: transaction aborted")

// ErrMailboxClosed is returned by a Mailbox after Close.
var ErrMailboxClosed = errors.New("observe: mailbox closed")
