package cmap

import (
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Basic operations
// ---------------------------------------------------------------------------

func TestMap_SetGet(t *testing.T) {
	m := NewInt64[string]()

	m.Set(1, "one")
	m.Set(2, "two")

	v, ok := m.Get(1)
	if !ok || v != "one" {
		t.Fatalf("Get(1) = %q, %v; want %q, true", v, ok, "one")
	}
	if _, ok := m.Get(3); ok {
		t.Fatal("Get(3) should miss")
	}
}

func TestMap_SetReplaces(t *testing.T) {
	m := NewInt64[int]()
	m.Set(7, 1)
	m.Set(7, 2)

	if v, _ := m.Get(7); v != 2 {
		t.Fatalf("expected replacement value 2, got %d", v)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", m.Len())
	}
}

func TestMap_Delete(t *testing.T) {
	m := NewUint32[int]()
	m.Set(5, 50)

	if !m.Delete(5) {
		t.Fatal("Delete(5) should report presence")
	}
	if m.Delete(5) {
		t.Fatal("second Delete(5) should report absence")
	}
	if m.Contains(5) {
		t.Fatal("key should be gone after Delete")
	}
}

func TestMap_GetOrDefault(t *testing.T) {
	m := NewInt64[int]()
	m.Set(1, 10)

	if v := m.GetOrDefault(1, -1); v != 10 {
		t.Fatalf("GetOrDefault(1) = %d, want 10", v)
	}
	if v := m.GetOrDefault(2, -1); v != -1 {
		t.Fatalf("GetOrDefault(2) = %d, want -1", v)
	}
}

func TestMap_Clear(t *testing.T) {
	m := NewInt64[int]()
	for i := int64(0); i < 100; i++ {
		m.Set(i, int(i))
	}
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("expected empty map after Clear, got %d entries", m.Len())
	}
}

func TestMap_Range(t *testing.T) {
	m := NewInt64[int]()
	for i := int64(0); i < 10; i++ {
		m.Set(i, 1)
	}

	sum := 0
	m.Range(func(_ int64, v int) bool {
		sum += v
		return true
	})
	if sum != 10 {
		t.Fatalf("expected to visit 10 entries, visited %d", sum)
	}

	// Early stop.
	visited := 0
	m.Range(func(_ int64, _ int) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("expected Range to stop after 1 entry, visited %d", visited)
	}
}

// ---------------------------------------------------------------------------
// GetOrCompute
// ---------------------------------------------------------------------------

func TestMap_GetOrCompute_Once(t *testing.T) {
	m := NewInt64[*int]()

	calls := 0
	compute := func() *int {
		calls++
		v := 42
		return &v
	}

	first := m.GetOrCompute(1, compute)
	second := m.GetOrCompute(1, compute)

	if first != second {
		t.Fatal("GetOrCompute should return the same value for the same key")
	}
	if calls != 1 {
		t.Fatalf("compute should run once, ran %d times", calls)
	}
}

func TestMap_GetOrCompute_Concurrent(t *testing.T) {
	m := NewInt64[*sync.Mutex]()

	const goroutines = 32
	results := make([]*sync.Mutex, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = m.GetOrCompute(99, func() *sync.Mutex { return &sync.Mutex{} })
		}()
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent GetOrCompute returned distinct values for one key")
		}
	}
}

// ---------------------------------------------------------------------------
// Concurrent mixed access
// ---------------------------------------------------------------------------

func TestMap_ConcurrentAccess(t *testing.T) {
	m := NewUint32[int]()

	var wg sync.WaitGroup
	for w := range uint32(8) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range uint32(1000) {
				key := w*1000 + i
				m.Set(key, int(key))
				if v, ok := m.Get(key); !ok || v != int(key) {
					t.Errorf("Get(%d) = %d, %v", key, v, ok)
					return
				}
			}
		}()
	}
	wg.Wait()

	if m.Len() != 8000 {
		t.Fatalf("expected 8000 entries, got %d", m.Len())
	}
}
