// Package queue implements the per-queue record logs of the broadcast
// engine: append-only sequences with a capacity bound, a runtime type
// binding fixed by the first record, and a wake channel for blocking
// readers. The Registry creates entries lazily and keeps each queue's
// lock independent, so a blocked consumer on one queue never delays a
// producer on another.
package queue

import (
	"golang.org/x/time/rate"

	"github.com/xraph/fanout"
	"github.com/xraph/fanout/cmap"
)

// Config defines optional per-queue behaviour applied when the queue
// entry is created: a capacity override and a produce rate limit.
type Config struct {
	// QueueID is the queue this configuration applies to.
	QueueID int64

	// Capacity overrides the registry's default record capacity.
	// Zero keeps the default.
	Capacity int

	// RateLimit is the maximum sustained produce calls per second
	// accepted for this queue. Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the burst size for the token-bucket rate limiter.
	// Defaults to 1 if RateLimit is set but RateBurst is zero.
	RateBurst int
}

// Registry owns one Q per queue id. Entries are created lazily on first
// produce or first consume and persist, with their binding and capacity,
// until explicitly cleared.
type Registry struct {
	queues          *cmap.Map[int64, *Q]
	defaultCapacity int
	configs         map[int64]Config
}

// NewRegistry creates a Registry. Queues without a Config are created
// with defaultCapacity; zero or negative falls back to
// fanout.DefaultQueueCapacity.
func NewRegistry(defaultCapacity int, configs ...Config) *Registry {
	if defaultCapacity <= 0 {
		defaultCapacity = fanout.DefaultQueueCapacity
	}
	r := &Registry{
		queues:          cmap.NewInt64[*Q](),
		defaultCapacity: defaultCapacity,
		configs:         make(map[int64]Config, len(configs)),
	}
	for _, cfg := range configs {
		r.configs[cfg.QueueID] = cfg
	}
	return r
}

// Get returns the queue entry for queueID if it exists.
func (r *Registry) Get(queueID int64) (*Q, bool) {
	return r.queues.Get(queueID)
}

// GetOrCreate returns the queue entry for queueID, creating it if absent.
func (r *Registry) GetOrCreate(queueID int64) *Q {
	return r.queues.GetOrCompute(queueID, func() *Q { return r.build(queueID) })
}

func (r *Registry) build(queueID int64) *Q {
	capacity := r.defaultCapacity
	var limiter *rate.Limiter

	if cfg, ok := r.configs[queueID]; ok {
		if cfg.Capacity > 0 {
			capacity = cfg.Capacity
		}
		if cfg.RateLimit > 0 {
			burst := cfg.RateBurst
			if burst <= 0 {
				burst = 1
			}
			limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
		}
	}
	return newQ(capacity, limiter)
}

// SetCapacity creates the queue if absent and resets it to the given
// capacity, clearing any existing content and binding.
func (r *Registry) SetCapacity(queueID int64, capacity int) {
	r.GetOrCreate(queueID).Reset(capacity)
}

// Clear empties the given queue. Unknown ids are a no-op.
func (r *Registry) Clear(queueID int64) {
	if q, ok := r.queues.Get(queueID); ok {
		q.Clear()
	}
}

// ClearAll removes every queue entry. A consumer blocked on a removed
// entry exits via its timeout; its next consume call recreates the queue.
func (r *Registry) ClearAll() {
	r.queues.Clear()
}

// Len returns the record count for queueID, or 0 if it does not exist.
func (r *Registry) Len(queueID int64) int {
	q, ok := r.queues.Get(queueID)
	if !ok {
		return 0
	}
	return q.Len()
}
