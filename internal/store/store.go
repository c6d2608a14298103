// Package store provides the persistence adapters behind the ledger: a flat
// JSON snapshot file (the default) and a sqlite database. Both sides of the
// contract move whole snapshots; there is no partial update.
package store

import (
	"context"
	"errors"

	"github.com/cwren/pennyledger/internal/ledger"
)

// ErrNotFound is returned by Load on first run, before anything was saved.
var ErrNotFound = errors.New("no saved state")

// Store loads and saves full state snapshots. Save is an overwrite-the-whole-
// document write; it is called synchronously after every ledger mutation.
type Store interface {
	ledger.Persister
	Load(ctx context.Context) (*ledger.Snapshot, error)
}
