package engine

import (
	"log/slog"
	"reflect"
)

// Produce appends value to the queue identified by queueID, creating the
// queue with the engine's default capacity on first use. The queue's
// type binding is established by the first record; until the queue is
// cleared, a value of any other type is rejected with ErrTypeMismatch.
// A queue at capacity rejects the record with ErrQueueFull — produce
// never blocks, and a failed call leaves the queue untouched.
func Produce[T any](e *Engine, queueID int64, value T) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	q := e.queues.GetOrCreate(queueID)
	if err := q.Append(value, typ); err != nil {
		e.hooks.EmitProduceRejected(queueID, err)
		e.logger.Debug("produce rejected",
			slog.Int64("queue_id", queueID),
			slog.String("type", typ.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	e.hooks.EmitRecordProduced(queueID, typ.String())
	return nil
}
