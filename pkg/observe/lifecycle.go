package observe

// Lifecycle tracks whether a transaction is open and panics on out-of-order calls.
// Observers embed it to enforce the contract. The zero value has no open transaction.
//
// An observer that fails inside a transaction calls Abort. The rest of that
// transaction is then refused with ErrTxAborted, and the next Start replaces it.
type Lifecycle struct {
	open    bool
	aborted bool
}

// Start opens a transaction. An aborted transaction may still be open; Start drops it.
func (l *Lifecycle) Start() {
	if l.open && !l.aborted {
		panic(ErrDuplicateStart)
	}
	l.open = true
	l.aborted = false
}

// Updates checks that a transaction is open.
// It returns ErrTxAborted when the open transaction was aborted.
func (l *Lifecycle) Updates() error {
	if !l.open {
		panic(ErrUpdatesWithoutStart)
	}
	if l.aborted {
		return ErrTxAborted
	}
	return nil
}

// Commit closes the open transaction.
// It returns ErrTxAborted when the transaction was aborted; nothing may be published then.
func (l *Lifecycle) Commit() error {
	if !l.open {
		panic(ErrCommitWithoutStart)
	}
	aborted := l.aborted
	l.open = false
	l.aborted = false
	if aborted {
		return ErrTxAborted
	}
	return nil
}

// Abort marks the open transaction as failed. It is a no-op with no open transaction.
func (l *Lifecycle) Abort() {
	if l.open {
		l.aborted = true
	}
}

// Aborted reports whether the open transaction was aborted.
func (l *Lifecycle) Aborted() bool {
	return l.aborted
}

// InTransaction reports whether a transaction is open.
func (l *Lifecycle) InTransaction() bool {
	return l.open
}
