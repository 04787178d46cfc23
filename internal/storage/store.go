// Package storage is the persistence gateway: a key/value blob store
// behind a small interface, plus the save/replay codec and versioning
// policy layered on top. The engine never talks to a database directly.
package storage

import (
	"context"
	"errors"
)

// Store names used by the gateway.
const (
	StoreSaves   = "saves"
	StoreReplays = "replays"
)

var ErrNotFound = errors.New("storage: key not found")

// BlobStore is the physical medium contract: put/get/delete/list over
// named stores. Implementations must treat blobs as opaque bytes.
type BlobStore interface {
	Put(ctx context.Context, store, key string, blob []byte) error

	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, store, key string) ([]byte, error)

	Delete(ctx context.Context, store, key string) error

	ListKeys(ctx context.Context, store string) ([]string, error)

	Close() error
}
