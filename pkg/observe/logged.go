package observe

import (
	"iter"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var _ Observer[int] = (*Logged[int])(nil)

// IDGenerator produces transaction ids.
type IDGenerator interface {
	Generate() int64
}

// counter is the default IDGenerator: ids are sequential within the process.
type counter struct {
	n atomic.Int64
}

func (c *counter) Generate() int64 { return c.n.Add(1) }

// LoggedOption configures a Logged.
type LoggedOption func(*loggedConfig)

type loggedConfig struct {
	ids  IDGenerator
	name string
}

// WithIDGenerator sets the generator used to tag transactions.
func WithIDGenerator(ids IDGenerator) LoggedOption {
	return func(c *loggedConfig) { c.ids = ids }
}

// WithName sets the "observer" field attached to every entry.
func WithName(name string) LoggedOption {
	return func(c *loggedConfig) { c.name = name }
}

// Logged forwards every call to the wrapped observer and logs it.
// Lifecycle calls are logged at debug level, failures at error level.
// Like Caching, it keeps per-transaction state and is not safe for concurrent use.
type Logged[T any] struct {
	observer Observer[T]
	log      *zap.Logger
	ids      IDGenerator

	txnID int64
	batch int
}

// NewLogged wraps observer. A nil log disables logging but keeps forwarding.
func NewLogged[T any](observer Observer[T], log *zap.Logger, opts ...LoggedOption) *Logged[T] {
	cfg := loggedConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ids == nil {
		cfg.ids = &counter{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.name != "" {
		log = log.With(zap.String("observer", cfg.name))
	}

	return &Logged[T]{
		observer: observer,
		log:      log,
		ids:      cfg.ids,
	}
}

// TxnID returns the id of the current or most recent transaction, 0 before the first one.
func (l *Logged[T]) TxnID() int64 {
	return l.txnID
}

func (l *Logged[T]) OnStart() error {
	l.txnID = l.ids.Generate()
	l.batch = 0

	start := time.Now()
	err := l.observer.OnStart()
	l.report("start", err, zap.Duration("duration", time.Since(start)))
	return err
}

func (l *Logged[T]) OnUpdates(updates iter.Seq[T]) error {
	items := 0
	counted := func(yield func(T) bool) {
		for item := range updates {
			items++
			if !yield(item) {
				return
			}
		}
	}

	start := time.Now()
	err := l.observer.OnUpdates(counted)
	l.report("updates", err,
		zap.Int("batch", l.batch),
		zap.Int("items", items),
		zap.Duration("duration", time.Since(start)),
	)
	l.batch++
	return err
}

func (l *Logged[T]) OnCommit() error {
	start := time.Now()
	err := l.observer.OnCommit()
	l.report("commit", err,
		zap.Int("batches", l.batch),
		zap.Duration("duration", time.Since(start)),
	)
	return err
}

func (l *Logged[T]) OnCompleted() error {
	err := l.observer.OnCompleted()
	l.report("completed", err)
	return err
}

func (l *Logged[T]) report(event string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("event", event), zap.Int64("txn_id", l.txnID))
	if err != nil {
		l.log.Error("observer call failed", append(fields, zap.Error(err))...)
		return
	}
	l.log.Debug("observer call", fields...)
}
