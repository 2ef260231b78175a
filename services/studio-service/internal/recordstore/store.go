// Package recordstore persists whole collections as opaque blobs under string keys.
//
// Every key carries a version that increases on each write. Commit applies a batch of
// writes only if every expected version still matches, so two writers racing on the
// same collection cannot silently overwrite each other.
package recordstore

import (
	"context"
	"errors"
)

var ErrVersionConflict = errors.New("recordstore: version conflict")

// Snapshot is the stored value of one key. A missing key is a zero Snapshot.
type Snapshot struct {
	Data    []byte
	Version int64
}

// Write replaces (or, with Delete set, removes) a key if it is still at Version.
// Version 0 means the key is expected not to exist yet.
type Write struct {
	Key     string
	Data    []byte
	Version int64
	Delete  bool
}

type Store interface {
	Get(ctx context.Context, key string) (Snapshot, error)
	// Commit applies all writes atomically or none of them.
	Commit(ctx context.Context, writes ...Write) error
}
