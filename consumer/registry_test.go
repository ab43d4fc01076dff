package consumer

import (
	"errors"
	"testing"

	"github.com/xraph/fanout"
)

// ---------------------------------------------------------------------------
// Registration lifecycle
// ---------------------------------------------------------------------------

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(0)

	id := r.Register(7)
	if id == 0 {
		t.Fatal("Register returned the sentinel id")
	}

	e, ok := r.Get(id)
	if !ok {
		t.Fatal("entry missing after Register")
	}
	if e.QueueID() != 7 {
		t.Fatalf("QueueID = %d, want 7", e.QueueID())
	}
	if e.Pos() != 0 {
		t.Fatalf("cursor = %d, want 0", e.Pos())
	}
	if e.LastError() != nil {
		t.Fatalf("fresh entry has latched error %v", e.LastError())
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry(0)
	id := r.Register(1)

	if !r.Unregister(id) {
		t.Fatal("Unregister should report the entry existed")
	}
	if _, ok := r.Get(id); ok {
		t.Fatal("entry survived Unregister")
	}
	// Idempotent.
	if r.Unregister(id) {
		t.Fatal("second Unregister should be a no-op")
	}
}

func TestRegistry_IdRecycling(t *testing.T) {
	r := NewRegistry(0)

	id := r.Register(1)
	e, _ := r.Get(id)
	e.Advance()
	e.Advance()

	r.Unregister(id)

	// On an otherwise idle registry the same id comes back, with a fresh
	// cursor even though the previous holder had advanced it.
	again := r.Register(1)
	if again != id {
		t.Fatalf("recycled id = %d, want %d", again, id)
	}
	e2, _ := r.Get(again)
	if e2.Pos() != 0 {
		t.Fatalf("recycled entry cursor = %d, want 0", e2.Pos())
	}
}

func TestRegistry_Exhaustion(t *testing.T) {
	r := NewRegistry(2)

	if id := r.Register(1); id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	if id := r.Register(1); id != 2 {
		t.Fatalf("second id = %d, want 2", id)
	}
	if id := r.Register(1); id != 0 {
		t.Fatalf("exhausted Register = %d, want sentinel 0", id)
	}
	if r.Len() != 2 {
		t.Fatalf("exhausted Register created an entry: len = %d", r.Len())
	}
}

// ---------------------------------------------------------------------------
// Cursor and error state
// ---------------------------------------------------------------------------

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry(0)
	id := r.Register(1)
	e, _ := r.Get(id)

	for range 50 {
		e.Advance()
	}
	r.Reset(id)
	if e.Pos() != 0 {
		t.Fatalf("cursor after Reset = %d, want 0", e.Pos())
	}

	r.Reset(9999) // unknown id: no-op, no panic
}

func TestRegistry_LastError(t *testing.T) {
	r := NewRegistry(0)

	if err := r.LastError(42); !errors.Is(err, fanout.ErrConsumerNotFound) {
		t.Fatalf("LastError(unknown) = %v, want ErrConsumerNotFound", err)
	}

	id := r.Register(1)
	if err := r.LastError(id); err != nil {
		t.Fatalf("LastError(fresh) = %v, want nil", err)
	}

	e, _ := r.Get(id)
	e.SetLastError(fanout.ErrNoData)
	if err := r.LastError(id); !errors.Is(err, fanout.ErrNoData) {
		t.Fatalf("LastError = %v, want ErrNoData", err)
	}

	e.SetLastError(nil)
	if err := r.LastError(id); err != nil {
		t.Fatalf("LastError after success = %v, want nil", err)
	}
}
