package engine

import (
	"reflect"
	"time"

	"github.com/xraph/fanout"
)

// Consume returns the record at the consumer's cursor and advances the
// cursor by one. It never blocks: a cursor at the end of the queue
// reports ErrNoData immediately.
//
// A consumer against a queue no producer has written to yet binds the
// queue to T; a queue already bound to a different type reports
// ErrTypeMismatch without advancing the cursor. Every outcome is also
// latched as the consumer's last error.
func Consume[T any](e *Engine, consumerID uint32) (T, error) {
	return consume[T](e, consumerID, false, 0)
}

// ConsumeWait is like Consume but, when no record is available at the
// cursor, blocks until one is produced or timeout elapses
// (ErrTimeout). A timeout <= 0 waits indefinitely.
//
// There is no cancellation channel: timeout expiry is the only way to
// abort the wait. Callers needing early cancellation should pick a
// timeout short enough to re-check their own state between calls.
func ConsumeWait[T any](e *Engine, consumerID uint32, timeout time.Duration) (T, error) {
	return consume[T](e, consumerID, true, timeout)
}

func consume[T any](e *Engine, consumerID uint32, block bool, timeout time.Duration) (T, error) {
	var zero T

	c, ok := e.consumers.Get(consumerID)
	if !ok {
		return zero, fanout.ErrConsumerNotFound
	}

	typ := reflect.TypeOf((*T)(nil)).Elem()
	// A consumer may discover its queue before any producer has.
	q := e.queues.GetOrCreate(c.QueueID())

	start := time.Now()
	v, err := q.Next(c, typ, block, timeout)
	if err != nil {
		c.SetLastError(err)
		return zero, err
	}

	c.SetLastError(nil)
	e.hooks.EmitRecordConsumed(c.QueueID(), consumerID, time.Since(start))
	return v.(T), nil
}
