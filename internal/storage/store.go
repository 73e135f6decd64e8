package storage

import "fmt"

// Store is the persistence port for the entity layer. Collections are read
// and written as whole JSON blobs keyed by collection name; the store does
// not know or care what the blobs contain.
type Store interface {
	// Read returns the stored blob for the named collection, or nil when
	// nothing has been written under that name yet.
	Read(name string) ([]byte, error)

	// Write replaces the stored blob for the named collection.
	Write(name string, data []byte) error
}

// PersistenceError reports a failed operation against the backing store.
// Callers can unwrap to reach the underlying driver error.
type PersistenceError struct {
	Op   string // "read", "write", "encode", "decode"
	Name string // collection name
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s collection %q: %v", e.Op, e.Name, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
