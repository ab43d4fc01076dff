// Package cmap provides a generic, hash-sharded map safe for concurrent
// use. Keys are distributed over independent read-write locked shards so
// that operations on unrelated keys never contend and readers on the same
// shard proceed without mutual exclusion against each other.
package cmap

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// shardCount is the number of independent shards. Power of two so the
// modulo reduces to a mask.
const shardCount = 32

type shard[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// Map is a sharded concurrent map. A lookup never observes a partially
// constructed value: values are published only under the shard write lock.
type Map[K comparable, V any] struct {
	shards [shardCount]shard[K, V]
	hash   func(K) uint64
}

// New creates a Map using hash to select the shard for each key.
func New[K comparable, V any](hash func(K) uint64) *Map[K, V] {
	m := &Map[K, V]{hash: hash}
	for i := range m.shards {
		m.shards[i].m = make(map[K]V)
	}
	return m
}

// NewInt64 creates a Map keyed by int64.
func NewInt64[V any]() *Map[int64, V] {
	return New[int64, V](func(k int64) uint64 { return sum64(uint64(k)) })
}

// NewUint32 creates a Map keyed by uint32.
func NewUint32[V any]() *Map[uint32, V] {
	return New[uint32, V](func(k uint32) uint64 { return sum64(uint64(k)) })
}

// sum64 hashes a fixed-width integer key. Integer queue and consumer ids
// are typically small and sequential; hashing spreads them across shards.
func sum64(k uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], k)
	return xxhash.Sum64(b[:])
}

func (m *Map[K, V]) shard(key K) *shard[K, V] {
	return &m.shards[m.hash(key)&(shardCount-1)]
}

// Set stores value under key, replacing any previous value.
func (m *Map[K, V]) Set(key K, value V) {
	s := m.shard(key)
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.shard(key)
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	return v, ok
}

// GetOrDefault returns the value stored under key, or def if absent.
func (m *Map[K, V]) GetOrDefault(key K, def V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// GetOrCompute returns the value stored under key, computing and storing
// it if absent. compute runs under the shard write lock, so concurrent
// callers for the same key observe a single fully constructed value.
func (m *Map[K, V]) GetOrCompute(key K, compute func() V) V {
	s := m.shard(key)

	s.mu.RLock()
	if v, ok := s.m[key]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.m[key]; ok {
		return v
	}
	v := compute()
	s.m[key] = v
	return v
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	s := m.shard(key)
	s.mu.Lock()
	_, ok := s.m[key]
	delete(s.m, key)
	s.mu.Unlock()
	return ok
}

// Len returns the total number of entries across all shards.
func (m *Map[K, V]) Len() int {
	n := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		n += len(s.m)
		s.mu.RUnlock()
	}
	return n
}

// Range calls fn for each entry until fn returns false. fn must not
// mutate the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.RLock()
		for k, v := range s.m {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		s.m = make(map[K]V)
		s.mu.Unlock()
	}
}
