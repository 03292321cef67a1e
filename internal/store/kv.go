// Package store provides the device-local key-value persistence used for the
// daily scan counter. Three backends share the KV interface: SQLite (default),
// a JSON file, and an in-memory map for tests and ephemeral sessions.
package store

import (
	"errors"
	"fmt"
)

// KV is a string-keyed, string-valued persistent store.
// Get reports ok=false for missing keys without returning an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Error describes a failed storage operation.
type Error struct {
	Op  string // "open", "get", "set"
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Open returns the KV backend named by backend, rooted at path.
// path is ignored for the memory backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case "", BackendSQLite:
		return NewSQLiteKV(path)
	case BackendJSON:
		return NewFileKV(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, &Error{Op: "open", Err: fmt.Errorf("unknown backend %q", backend)}
	}
}
