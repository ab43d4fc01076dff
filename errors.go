package fanout

import "errors"

var (
	// Consumer lookup errors.
	ErrConsumerNotFound = errors.New("fanout: consumer not found")

	// Consume outcome errors.
	ErrTimeout = errors.New("fanout: timeout expired")
	ErrNoData  = errors.New("fanout: no data available")

	// Produce/consume validation errors.
	ErrTypeMismatch = errors.New("fanout: type mismatch")
	ErrQueueFull    = errors.New("fanout: queue is full")
	ErrRateLimited  = errors.New("fanout: rate limited")
)
