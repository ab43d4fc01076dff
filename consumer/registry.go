// Package consumer implements the consumer registry of the broadcast
// engine: one entry per consumer id holding the bound queue, a private
// read cursor, and the last error observed by that consumer. Ids come
// from an idpool allocator and are recycled on unregister.
package consumer

import (
	"github.com/xraph/fanout"
	"github.com/xraph/fanout/cmap"
	"github.com/xraph/fanout/idpool"
)

// Registry owns one Entry per consumer id.
type Registry struct {
	entries *cmap.Map[uint32, *Entry]
	ids     *idpool.Pool
}

// NewRegistry creates a Registry whose allocator issues ids in
// [1, limit]. A zero limit means the full uint32 range.
func NewRegistry(limit uint32) *Registry {
	return &Registry{
		entries: cmap.NewUint32[*Entry](),
		ids:     idpool.New(limit),
	}
}

// Register allocates an id and creates an entry bound to queueID with the
// cursor at 0 and no latched error. Returns idpool.Sentinel when the id
// space is exhausted; no entry is created in that case.
func (r *Registry) Register(queueID int64) uint32 {
	id := r.ids.Acquire()
	if id == idpool.Sentinel {
		return idpool.Sentinel
	}
	r.entries.Set(id, newEntry(queueID))
	return id
}

// Unregister erases the entry and recycles its id, reporting whether the
// id was registered. Unknown ids are a no-op. The id reaches the free
// list only after the entry is fully erased.
func (r *Registry) Unregister(id uint32) bool {
	if !r.entries.Delete(id) {
		return false
	}
	r.ids.Release(id)
	return true
}

// Reset rewinds the consumer's cursor to 0. Unknown ids are a no-op.
func (r *Registry) Reset(id uint32) {
	if e, ok := r.entries.Get(id); ok {
		e.Rewind()
	}
}

// Get returns the entry for id.
func (r *Registry) Get(id uint32) (*Entry, bool) {
	return r.entries.Get(id)
}

// LastError returns the latched error for id, nil meaning success, or
// fanout.ErrConsumerNotFound for an unknown id.
func (r *Registry) LastError(id uint32) error {
	e, ok := r.entries.Get(id)
	if !ok {
		return fanout.ErrConsumerNotFound
	}
	return e.LastError()
}

// Len returns the number of registered consumers.
func (r *Registry) Len() int {
	return r.entries.Len()
}
