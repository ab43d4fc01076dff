// Package idpool issues consumer ids from a monotonic counter layered
// under a FIFO free list, so released ids are recycled before fresh ones
// are minted.
package idpool

import (
	"math"
	"sync"
)

// Sentinel is returned by Acquire when the id space is exhausted.
// It is never a valid id.
const Sentinel uint32 = 0

// Pool allocates uint32 ids starting at 1. Safe for concurrent use.
type Pool struct {
	mu        sync.Mutex
	next      uint32
	limit     uint32
	exhausted bool
	free      []uint32
}

// New creates a Pool issuing ids in [1, limit]. A zero limit means the
// full uint32 range.
func New(limit uint32) *Pool {
	if limit == 0 {
		limit = math.MaxUint32
	}
	return &Pool{next: 1, limit: limit}
}

// Acquire returns the oldest released id if any, otherwise the next fresh
// id. Returns Sentinel once the counter has reached the limit and no
// released ids remain.
func (p *Pool) Acquire() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) > 0 {
		id := p.free[0]
		p.free = p.free[1:]
		return id
	}
	if p.exhausted {
		return Sentinel
	}

	id := p.next
	if id == p.limit {
		p.exhausted = true
	} else {
		p.next++
	}
	return id
}

// Release returns id to the free list for future reuse. Callers must
// release an id only after the entry it identified is fully erased.
// Sentinel is ignored.
func (p *Pool) Release(id uint32) {
	if id == Sentinel {
		return
	}
	p.mu.Lock()
	p.free = append(p.free, id)
	p.mu.Unlock()
}
