// Package hook defines the lifecycle hook system for the fanout engine.
// Hooks are notified of engine events — records produced and consumed,
// produce rejections, consumer registration and release, queue clears —
// and can react to them: recording metrics, audit logging, etc.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about. The [Registry] fans out each event to
// all registered extensions that implement the corresponding interface.
package hook

import "time"

// Extension is the base interface all hook extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Produce hooks
// ──────────────────────────────────────────────────

// RecordProduced is called after a record is appended to a queue.
type RecordProduced interface {
	OnRecordProduced(queueID int64, typeName string) error
}

// ProduceRejected is called when a produce call is rejected (type
// mismatch, full queue, rate limit).
type ProduceRejected interface {
	OnProduceRejected(queueID int64, err error) error
}

// ──────────────────────────────────────────────────
// Consume hooks
// ──────────────────────────────────────────────────

// RecordConsumed is called after a consumer successfully reads a record.
// waited is the time spent inside the consume call, including any
// blocking wait.
type RecordConsumed interface {
	OnRecordConsumed(queueID int64, consumerID uint32, waited time.Duration) error
}

// ──────────────────────────────────────────────────
// Consumer lifecycle hooks
// ──────────────────────────────────────────────────

// ConsumerRegistered is called after a consumer id is allocated and bound.
type ConsumerRegistered interface {
	OnConsumerRegistered(queueID int64, consumerID uint32) error
}

// ConsumerUnregistered is called after a consumer entry is erased and its
// id recycled.
type ConsumerUnregistered interface {
	OnConsumerUnregistered(consumerID uint32) error
}

// ──────────────────────────────────────────────────
// Queue lifecycle hooks
// ──────────────────────────────────────────────────

// QueueCleared is called after a single queue is emptied.
type QueueCleared interface {
	OnQueueCleared(queueID int64) error
}

// AllQueuesCleared is called after every queue entry is removed.
type AllQueuesCleared interface {
	OnAllQueuesCleared() error
}
