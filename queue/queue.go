package queue

import (
	"reflect"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/xraph/fanout"
)

// Record is a single produced value together with the type identity it
// was stored with. Records are immutable once appended and are removed
// only by a full clear, never by reads.
type Record struct {
	Value any
	Type  reflect.Type
}

// Cursor is a consumer's private read position into a queue. Next calls
// Pos and Advance only while holding the queue lock, so read-and-advance
// is atomic with respect to concurrent appends and clears.
type Cursor interface {
	// Pos returns the current read offset.
	Pos() uint64
	// Advance moves the cursor forward by one record.
	Advance()
}

// Q is a single append-only, capacity-bounded record log. The log, its
// capacity and its type binding are guarded by mu. notify is closed and
// replaced on every append to wake all blocked readers.
type Q struct {
	mu       sync.Mutex
	records  []Record
	capacity int
	typ      reflect.Type // nil until bound
	notify   chan struct{}
	limiter  *rate.Limiter
}

func newQ(capacity int, limiter *rate.Limiter) *Q {
	return &Q{
		capacity: capacity,
		notify:   make(chan struct{}),
		limiter:  limiter,
	}
}

// Append validates the type binding and capacity, appends a record and
// wakes all blocked readers. The binding is compared only while the log
// holds records and is re-stamped on every successful append, so a
// cleared queue accepts a new type. Append never blocks: a full queue is
// reported immediately as ErrQueueFull.
func (q *Q) Append(value any, typ reflect.Type) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.records) > 0 && q.typ != typ {
		return fanout.ErrTypeMismatch
	}
	if len(q.records) >= q.capacity {
		return fanout.ErrQueueFull
	}
	if q.limiter != nil && !q.limiter.Allow() {
		return fanout.ErrRateLimited
	}

	q.typ = typ
	q.records = append(q.records, Record{Value: value, Type: typ})

	close(q.notify)
	q.notify = make(chan struct{})
	return nil
}

// Next returns the record value at the cursor position and advances the
// cursor. With block set it waits until a record is available at the
// cursor or timeout elapses; a timeout <= 0 waits indefinitely. A
// consumer against an unbound queue binds it to typ before any producer
// has written to it.
//
// Failed calls never advance the cursor and never mutate the log.
func (q *Q) Next(cur Cursor, typ reflect.Type, block bool, timeout time.Duration) (any, error) {
	q.mu.Lock()

	if err := q.bind(typ); err != nil {
		q.mu.Unlock()
		return nil, err
	}

	if block {
		var expired <-chan time.Time
		if timeout > 0 {
			timer := time.NewTimer(timeout)
			defer timer.Stop()
			expired = timer.C
		}

		for cur.Pos() >= uint64(len(q.records)) {
			wake := q.notify
			q.mu.Unlock()

			select {
			case <-wake:
			case <-expired:
				return nil, fanout.ErrTimeout
			}

			q.mu.Lock()
			// The queue may have been cleared and rebound while waiting.
			if err := q.bind(typ); err != nil {
				q.mu.Unlock()
				return nil, err
			}
		}
	}

	pos := cur.Pos()
	if pos >= uint64(len(q.records)) {
		q.mu.Unlock()
		return nil, fanout.ErrNoData
	}

	rec := q.records[pos]
	cur.Advance()
	q.mu.Unlock()
	return rec.Value, nil
}

// bind fixes an unbound queue to typ, or rejects a conflicting binding.
// Callers must hold q.mu.
func (q *Q) bind(typ reflect.Type) error {
	if q.typ == nil {
		q.typ = typ
		return nil
	}
	if q.typ != typ {
		return fanout.ErrTypeMismatch
	}
	return nil
}

// Len returns the current number of records.
func (q *Q) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records)
}

// Capacity returns the maximum number of records the log may hold.
func (q *Q) Capacity() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.capacity
}

// Type returns the current type binding, or nil while unbound.
func (q *Q) Type() reflect.Type {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.typ
}

// Clear removes all records and the type binding. Capacity and any rate
// limiter are preserved. Cursors now pointing past the empty log simply
// report no data until new records arrive.
func (q *Q) Clear() {
	q.mu.Lock()
	q.records = nil
	q.typ = nil
	q.mu.Unlock()
}

// Reset empties the log, drops the type binding and sets a new capacity.
// Setting a capacity is a destructive reset of content by contract.
func (q *Q) Reset(capacity int) {
	q.mu.Lock()
	q.records = nil
	q.typ = nil
	q.capacity = capacity
	q.mu.Unlock()
}
