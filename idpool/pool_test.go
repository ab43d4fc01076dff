package idpool

import (
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Monotonic allocation
// ---------------------------------------------------------------------------

func TestPool_Monotonic(t *testing.T) {
	p := New(0)
	for want := uint32(1); want <= 5; want++ {
		if got := p.Acquire(); got != want {
			t.Fatalf("Acquire = %d, want %d", got, want)
		}
	}
}

func TestPool_ZeroNeverIssued(t *testing.T) {
	p := New(0)
	if id := p.Acquire(); id == Sentinel {
		t.Fatal("fresh pool issued the sentinel id")
	}
}

// ---------------------------------------------------------------------------
// Recycling
// ---------------------------------------------------------------------------

func TestPool_RecycleFIFO(t *testing.T) {
	p := New(0)
	a := p.Acquire() // 1
	b := p.Acquire() // 2
	p.Acquire()      // 3

	p.Release(b)
	p.Release(a)

	// Released ids come back before fresh ones, oldest release first.
	if got := p.Acquire(); got != b {
		t.Fatalf("Acquire = %d, want recycled %d", got, b)
	}
	if got := p.Acquire(); got != a {
		t.Fatalf("Acquire = %d, want recycled %d", got, a)
	}
	if got := p.Acquire(); got != 4 {
		t.Fatalf("Acquire = %d, want fresh 4", got)
	}
}

func TestPool_ReleaseSentinelIgnored(t *testing.T) {
	p := New(0)
	p.Release(Sentinel)
	if got := p.Acquire(); got != 1 {
		t.Fatalf("Acquire = %d, want 1 (sentinel must not enter the free list)", got)
	}
}

// ---------------------------------------------------------------------------
// Exhaustion
// ---------------------------------------------------------------------------

func TestPool_Exhaustion(t *testing.T) {
	p := New(3)
	for want := uint32(1); want <= 3; want++ {
		if got := p.Acquire(); got != want {
			t.Fatalf("Acquire = %d, want %d", got, want)
		}
	}
	if got := p.Acquire(); got != Sentinel {
		t.Fatalf("exhausted pool returned %d, want sentinel", got)
	}

	// A release revives the pool.
	p.Release(2)
	if got := p.Acquire(); got != 2 {
		t.Fatalf("Acquire after Release = %d, want 2", got)
	}
	if got := p.Acquire(); got != Sentinel {
		t.Fatalf("pool should be exhausted again, got %d", got)
	}
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestPool_ConcurrentAcquireUnique(t *testing.T) {
	p := New(0)

	const n = 64
	ids := make([]uint32, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = p.Acquire()
		}()
	}
	wg.Wait()

	seen := make(map[uint32]bool, n)
	for _, id := range ids {
		if id == Sentinel {
			t.Fatal("unexpected sentinel from a non-exhausted pool")
		}
		if seen[id] {
			t.Fatalf("id %d issued twice", id)
		}
		seen[id] = true
	}
}
