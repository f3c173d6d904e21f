package calibrated

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
)

const (
	MinBitSize = 6  // 64 bytes (CPU cache line)
	Steps      = 20 // 64B to 32MB

	MinSize = 1 << MinBitSize
	MaxSize = 1 << (MinBitSize + Steps - 1)

	CalibrateThreshold = 42000
	Percentile95       = 0.95
)

// Pool is a size-bucketed pool that learns which sizes are worth keeping.
// Items larger than the calibrated 95th percentile are dropped on Put.
type Pool[T any] struct {
	calls       [Steps]atomic.Uint64
	calibrating atomic.Bool
	defaultSize atomic.Uint64
	maxSize     atomic.Uint64
	buckets     [Steps]sync.Pool

	newFunc   func(size int) T
	sizeFunc  func(T) int
	resetFunc func(T)
}

// New creates a new calibrated pool.
func New[T any](newFunc func(size int) T, sizeFunc func(T) int, resetFunc func(T)) *Pool[T] {
	p := &Pool[T]{
		newFunc:   newFunc,
		sizeFunc:  sizeFunc,
		resetFunc: resetFunc,
	}
	for i := range p.buckets {
		size := BucketSize(i)
		p.buckets[i].New = func() any {
			return newFunc(size)
		}
	}
	return p
}

// Get returns an item of at least the given size.
func (p *Pool[T]) Get(size int) T {
	if size <= 0 {
		size = MinSize
	}

	idx := SizeToIndex(size)
	if idx >= Steps {
		return p.newFunc(size)
	}
	return p.buckets[idx].Get().(T)
}

// Put returns an item to the pool.
func (p *Pool[T]) Put(item T) {
	size := p.sizeFunc(item)
	if size == 0 {
		return
	}

	idx := SizeToIndex(size)
	if idx >= Steps {
		return
	}

	if p.calls[idx].Add(1) > CalibrateThreshold {
		p.calibrate()
	}

	if limit := p.maxSize.Load(); limit > 0 && uint64(size) > limit {
		return
	}

	if p.resetFunc != nil {
		p.resetFunc(item)
	}
	p.buckets[idx].Put(item)
}

type bucket struct {
	calls uint64
	size  uint64
}

// calibrate picks the most used size as default and the 95th percentile as max.
func (p *Pool[T]) calibrate() {
	if !p.calibrating.CompareAndSwap(false, true) {
		return
	}
	defer p.calibrating.Store(false)

	stats := make([]bucket, 0, Steps)
	var total uint64
	for i := range p.calls {
		calls := p.calls[i].Swap(0)
		total += calls
		stats = append(stats, bucket{calls: calls, size: uint64(BucketSize(i))})
	}
	slices.SortFunc(stats, func(a, b bucket) int { return cmp.Compare(b.calls, a.calls) })

	defaultSize := stats[0].size
	maxSize := defaultSize
	threshold := uint64(float64(total) * Percentile95)

	var sum uint64
	for _, s := range stats {
		if sum > threshold {
			break
		}
		sum += s.calls
		maxSize = max(maxSize, s.size)
	}

	p.defaultSize.Store(defaultSize)
	p.maxSize.Store(maxSize)
}

// DefaultSize returns the calibrated default size, 0 before the first calibration.
func (p *Pool[T]) DefaultSize() uint64 {
	return p.defaultSize.Load()
}

// MaxSize returns the calibrated max size, 0 before the first calibration.
func (p *Pool[T]) MaxSize() uint64 {
	return p.maxSize.Load()
}

// SizeToIndex returns the bucket index for a given size.
func SizeToIndex(n int) int {
	n--
	n >>= MinBitSize
	idx := 0
	for n > 0 {
		n >>= 1
		idx++
	}
	return idx
}

// BucketSize returns the size of bucket at index i.
func BucketSize(i int) int {
	if i < 0 || i >= Steps {
		return 0
	}
	return MinSize << i
}
