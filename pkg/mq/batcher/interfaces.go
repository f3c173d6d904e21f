package batcher

// Consumer is the interface that must be implemented by users of the Batcher.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items. The batch is owned by the consumer.
	// Returns an error if processing fails.
	Consume(batch []T) error
}

// Config holds configuration for the StripedBatcher.
type Config struct {
	// StripeSize is the capacity of a single stripe buffer.
	// When a stripe reaches this size, it will be flushed to the Consumer.
	StripeSize int

	// MaxStripes bounds the number of stripes; defaults to GOMAXPROCS.
	MaxStripes int

	// OnError, if set, receives every error returned by the Consumer.
	OnError func(err error)
}
