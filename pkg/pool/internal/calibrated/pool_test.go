package calibrated

import "testing"

func TestSizeToIndex(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 0},
		{MinSize, 0},
		{MinSize + 1, 1},
		{MinSize * 2, 1},
		{MinSize*4 - 1, 2},
		{MaxSize, Steps - 1},
		{MaxSize + 1, Steps},
	}

	for _, tt := range tests {
		if got := SizeToIndex(tt.size); got != tt.want {
			t.Errorf("SizeToIndex(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestBucketSize(t *testing.T) {
	if BucketSize(0) != MinSize || BucketSize(Steps-1) != MaxSize {
		t.Errorf("unexpected bucket bounds %d..%d", BucketSize(0), BucketSize(Steps-1))
	}
	if BucketSize(-1) != 0 || BucketSize(Steps) != 0 {
		t.Error("out of range buckets must be 0")
	}
}

func TestPool_GetAtLeastSize(t *testing.T) {
	p := New(
		func(size int) []byte { return make([]byte, 0, size) },
		func(b []byte) int { return cap(b) },
		nil,
	)

	for _, size := range []int{0, 1, 100, 4096, MaxSize + 1} {
		if b := p.Get(size); cap(b) < size {
			t.Errorf("Get(%d) returned cap %d", size, cap(b))
		}
	}
}

func TestPool_Calibrates(t *testing.T) {
	p := New(
		func(size int) []byte { return make([]byte, 0, size) },
		func(b []byte) int { return cap(b) },
		nil,
	)

	for i := 0; i <= CalibrateThreshold; i++ {
		p.Put(make([]byte, 0, 1024))
	}

	if p.DefaultSize() != 1024 {
		t.Errorf("DefaultSize = %d, want 1024", p.DefaultSize())
	}
	if p.MaxSize() < 1024 {
		t.Errorf("MaxSize = %d, want >= 1024", p.MaxSize())
	}
}
