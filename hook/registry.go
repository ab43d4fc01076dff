package hook

import (
	"log/slog"
	"time"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type recordProducedEntry struct {
	name string
	hook RecordProduced
}

type produceRejectedEntry struct {
	name string
	hook ProduceRejected
}

type recordConsumedEntry struct {
	name string
	hook RecordConsumed
}

type consumerRegisteredEntry struct {
	name string
	hook ConsumerRegistered
}

type consumerUnregisteredEntry struct {
	name string
	hook ConsumerUnregistered
}

type queueClearedEntry struct {
	name string
	hook QueueCleared
}

type allQueuesClearedEntry struct {
	name string
	hook AllQueuesCleared
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	recordProduced       []recordProducedEntry
	produceRejected      []produceRejectedEntry
	recordConsumed       []recordConsumedEntry
	consumerRegistered   []consumerRegisteredEntry
	consumerUnregistered []consumerUnregisteredEntry
	queueCleared         []queueClearedEntry
	allQueuesCleared     []allQueuesClearedEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(RecordProduced); ok {
		r.recordProduced = append(r.recordProduced, recordProducedEntry{name, h})
	}
	if h, ok := e.(ProduceRejected); ok {
		r.produceRejected = append(r.produceRejected, produceRejectedEntry{name, h})
	}
	if h, ok := e.(RecordConsumed); ok {
		r.recordConsumed = append(r.recordConsumed, recordConsumedEntry{name, h})
	}
	if h, ok := e.(ConsumerRegistered); ok {
		r.consumerRegistered = append(r.consumerRegistered, consumerRegisteredEntry{name, h})
	}
	if h, ok := e.(ConsumerUnregistered); ok {
		r.consumerUnregistered = append(r.consumerUnregistered, consumerUnregisteredEntry{name, h})
	}
	if h, ok := e.(QueueCleared); ok {
		r.queueCleared = append(r.queueCleared, queueClearedEntry{name, h})
	}
	if h, ok := e.(AllQueuesCleared); ok {
		r.allQueuesCleared = append(r.allQueuesCleared, allQueuesClearedEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension { return r.extensions }

// EmitRecordProduced notifies all extensions implementing RecordProduced.
func (r *Registry) EmitRecordProduced(queueID int64, typeName string) {
	for _, e := range r.recordProduced {
		if err := e.hook.OnRecordProduced(queueID, typeName); err != nil {
			r.logHookError("OnRecordProduced", e.name, err)
		}
	}
}

// EmitProduceRejected notifies all extensions implementing ProduceRejected.
func (r *Registry) EmitProduceRejected(queueID int64, cause error) {
	for _, e := range r.produceRejected {
		if err := e.hook.OnProduceRejected(queueID, cause); err != nil {
			r.logHookError("OnProduceRejected", e.name, err)
		}
	}
}

// EmitRecordConsumed notifies all extensions implementing RecordConsumed.
func (r *Registry) EmitRecordConsumed(queueID int64, consumerID uint32, waited time.Duration) {
	for _, e := range r.recordConsumed {
		if err := e.hook.OnRecordConsumed(queueID, consumerID, waited); err != nil {
			r.logHookError("OnRecordConsumed", e.name, err)
		}
	}
}

// EmitConsumerRegistered notifies all extensions implementing ConsumerRegistered.
func (r *Registry) EmitConsumerRegistered(queueID int64, consumerID uint32) {
	for _, e := range r.consumerRegistered {
		if err := e.hook.OnConsumerRegistered(queueID, consumerID); err != nil {
			r.logHookError("OnConsumerRegistered", e.name, err)
		}
	}
}

// EmitConsumerUnregistered notifies all extensions implementing ConsumerUnregistered.
func (r *Registry) EmitConsumerUnregistered(consumerID uint32) {
	for _, e := range r.consumerUnregistered {
		if err := e.hook.OnConsumerUnregistered(consumerID); err != nil {
			r.logHookError("OnConsumerUnregistered", e.name, err)
		}
	}
}

// EmitQueueCleared notifies all extensions implementing QueueCleared.
func (r *Registry) EmitQueueCleared(queueID int64) {
	for _, e := range r.queueCleared {
		if err := e.hook.OnQueueCleared(queueID); err != nil {
			r.logHookError("OnQueueCleared", e.name, err)
		}
	}
}

// EmitAllQueuesCleared notifies all extensions implementing AllQueuesCleared.
func (r *Registry) EmitAllQueuesCleared() {
	for _, e := range r.allQueuesCleared {
		if err := e.hook.OnAllQueuesCleared(); err != nil {
			r.logHookError("OnAllQueuesCleared", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block the engine.
func (r *Registry) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
