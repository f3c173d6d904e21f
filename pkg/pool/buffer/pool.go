package buffer

import (
	"bytes"

	"github.com/huynhanx03/go-observe/pkg/pool/internal/calibrated"
)

var defaultPool = calibrated.New(
	func(size int) *bytes.Buffer {
		return bytes.NewBuffer(make([]byte, 0, size))
	},
	func(b *bytes.Buffer) int {
		return b.Cap()
	},
	func(b *bytes.Buffer) {
		b.Reset()
	},
)

// Get returns an empty buffer sized for the calibrated default.
func Get() *bytes.Buffer {
	return defaultPool.Get(int(defaultPool.DefaultSize()))
}

// GetSize returns an empty buffer with capacity of at least size.
func GetSize(size int) *bytes.Buffer {
	return defaultPool.Get(size)
}

// Put returns b to the pool. b must not be used afterwards.
func Put(b *bytes.Buffer) {
	if b == nil {
		return
	}
	defaultPool.Put(b)
}
