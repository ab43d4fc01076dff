package fanout

// DefaultQueueCapacity is the record capacity assigned to queues created
// without an explicit capacity.
const DefaultQueueCapacity = 1000

// Config holds configuration for the Engine.
type Config struct {
	// DefaultQueueCapacity is the maximum number of records a lazily
	// created queue may hold before produce reports ErrQueueFull.
	DefaultQueueCapacity int

	// ConsumerLimit is the highest consumer id the allocator may issue.
	// Zero means the full uint32 range. Lower values are mainly useful
	// in tests exercising allocator exhaustion.
	ConsumerLimit uint32
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultQueueCapacity: DefaultQueueCapacity,
	}
}
