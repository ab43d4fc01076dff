package consumer

import "sync"

// Entry tracks one registered consumer: the queue it reads from, its
// private cursor, and the error latched by its most recent consume call.
// The queue binding is fixed at registration and never reassigned.
type Entry struct {
	queueID int64

	mu      sync.Mutex
	cursor  uint64
	lastErr error
}

func newEntry(queueID int64) *Entry {
	return &Entry{queueID: queueID}
}

// QueueID returns the queue this consumer is bound to.
func (e *Entry) QueueID() int64 { return e.queueID }

// Pos implements queue.Cursor.
func (e *Entry) Pos() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Advance implements queue.Cursor.
func (e *Entry) Advance() {
	e.mu.Lock()
	e.cursor++
	e.mu.Unlock()
}

// Rewind resets the cursor to the start of the queue.
func (e *Entry) Rewind() {
	e.mu.Lock()
	e.cursor = 0
	e.mu.Unlock()
}

// SetLastError latches the outcome of the most recent consume call.
// nil records success.
func (e *Entry) SetLastError(err error) {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
}

// LastError returns the latched outcome of the most recent consume call.
func (e *Entry) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}
