package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a source of the current time.
type Timer interface {
	Now() time.Time
	Stop()
}

var _ Timer = SystemTimer{}

// SystemTimer reads the wall clock on every call.
type SystemTimer struct{}

func (SystemTimer) Now() time.Time { return time.Now() }

func (SystemTimer) Stop() {}

var _ Timer = (*CachedTimer)(nil)

// CachedTimer trades precision for speed: Now returns a value refreshed every step
// by a background goroutine. Stop must be called to release it.
type CachedTimer struct {
	now    atomic.Pointer[time.Time]
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewCachedTimer starts a CachedTimer refreshed every step.
func NewCachedTimer(step time.Duration) *CachedTimer {
	t := &CachedTimer{
		ticker: time.NewTicker(step),
		done:   make(chan struct{}),
	}
	now := time.Now()
	t.now.Store(&now)

	t.wg.Add(1)
	go t.run()

	return t
}

func (t *CachedTimer) run() {
	defer t.wg.Done()

	for {
		select {
		case tick := <-t.ticker.C:
			t.now.Store(&tick)
		case <-t.done:
			t.ticker.Stop()
			return
		}
	}
}

func (t *CachedTimer) Now() time.Time {
	return *t.now.Load()
}

// Stop halts the refresh goroutine. It is safe to call more than once.
func (t *CachedTimer) Stop() {
	t.once.Do(func() {
		close(t.done)
		t.wg.Wait()
	})
}
