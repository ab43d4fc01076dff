// Package id defines TypeID-based identity for engine instances.
//
// Engine IDs are K-sortable (UUIDv7-based), globally unique and URL-safe
// in the format "eng_suffix". They exist so that log lines from multiple
// engines in one process can be told apart.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// PrefixEngine is the TypeID prefix for engine instances.
const PrefixEngine = "eng"

// ID identifies a single engine instance.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// NewEngineID generates a new globally unique engine ID.
func NewEngineID() ID {
	tid, err := typeid.Generate(PrefixEngine)
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", PrefixEngine, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses an engine ID string (e.g. "eng_01h2xcejqtf2nbrexx3vqjhp41")
// and validates its prefix.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}
	if tid.Prefix() != PrefixEngine {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", PrefixEngine, tid.Prefix())
	}

	return ID{inner: tid, valid: true}, nil
}

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}
