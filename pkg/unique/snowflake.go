package unique

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/huynhanx03/go-observe/pkg/settings"
	"github.com/huynhanx03/go-observe/pkg/timer"
)

const (
	defaultTotalBits = 63

	// Below this many bits a millisecond timestamp overflows too quickly, so seconds are used.
	minMillisBits = 50
)

var (
	ErrWorkerIDOutOfRange = errors.New("snowflake: worker id exceeds the node bits")
	ErrBitsExhausted      = errors.New("snowflake: total bits must be greater than node + step bits")
)

// SnowflakeNode generates roughly time-ordered, unique int64 ids, used to tag transactions.
// It is safe for concurrent use.
type SnowflakeNode struct {
	mu       sync.Mutex
	lastTick int64
	step     int64

	node  int64
	epoch int64

	stepMask  int64
	timeShift uint8
	nodeShift uint8
	limitMask int64
	seconds   bool

	clock timer.Timer
}

// NewSnowflakeNode creates a node for cfg. A nil clock uses the system clock.
func NewSnowflakeNode(cfg settings.SnowflakeNode, clock timer.Timer) (*SnowflakeNode, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = timer.SystemTimer{}
	}

	bits := cfg.Config
	nodeMax := int64(-1 ^ (-1 << bits.Node))
	if cfg.WorkerID > nodeMax {
		return nil, errors.Wrapf(ErrWorkerIDOutOfRange, "worker %d, max %d", cfg.WorkerID, nodeMax)
	}

	totalBits := bits.TotalBits
	if totalBits == 0 {
		totalBits = defaultTotalBits
	}
	if totalBits <= bits.Node+bits.Step {
		return nil, ErrBitsExhausted
	}

	limitMask := int64(1)<<totalBits - 1
	if totalBits >= 63 {
		limitMask = int64(^uint64(0) >> 1)
	}

	return &SnowflakeNode{
		node:      cfg.WorkerID,
		epoch:     bits.Epoch,
		stepMask:  int64(-1 ^ (-1 << bits.Step)),
		timeShift: bits.Node + bits.Step,
		nodeShift: bits.Step,
		limitMask: limitMask,
		seconds:   totalBits < minMillisBits,
		clock:     clock,
	}, nil
}

func (n *SnowflakeNode) tick() int64 {
	now := n.clock.Now()
	if n.seconds {
		return now.Unix()
	}
	return now.UnixMilli()
}

// Generate returns the next id.
func (n *SnowflakeNode) Generate() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.tick()
	if now < n.lastTick {
		now = n.lastTick // clock moved backwards
	}

	if now == n.lastTick {
		n.step = (n.step + 1) & n.stepMask
		if n.step == 0 {
			// Sequence exhausted for this tick: wait for the next one.
			for now <= n.lastTick {
				now = n.tick()
			}
		}
	} else {
		n.step = 0
	}
	n.lastTick = now

	id := ((now - n.epoch) << n.timeShift) | (n.node << n.nodeShift) | n.step
	return id & n.limitMask
}
