// Package keyvalue provides the persistence interface behind the token
// store and the reference data cache. Backends are swappable: a directory
// of flat files, an sqlite table or an in-memory map for tests.
package keyvalue

import "context"

// Store reads and writes opaque byte values by key. Implementations are
// not required to be safe for concurrent writers; callers owning a store
// serialize access themselves.
type Store interface {
	// Get returns the stored value and whether the key exists at all.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
