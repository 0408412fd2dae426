// Package storage persists ledger snapshots between sessions.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cashbuddy-dev/cashbuddy/internal/config"
	"github.com/cashbuddy-dev/cashbuddy/internal/ledger"
)

// Backend loads and saves whole ledger snapshots.
type Backend interface {
	// Load returns the stored snapshot, or an empty one if nothing was saved yet.
	Load(ctx context.Context) (ledger.Snapshot, error)
	Save(ctx context.Context, snap ledger.Snapshot) error
	Close() error
}

// Open returns the backend named by kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case config.BackendCSV:
		return NewFileBackend(dir), nil
	case config.BackendSQLite:
		return OpenSQLite(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// LoadStore restores a store from b. A snapshot that cannot be read or
// restored is logged and replaced by an empty store, so a damaged data
// file never prevents the session from starting.
func LoadStore(ctx context.Context, b Backend, logger *slog.Logger, opts ...ledger.Option) *ledger.Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts = append(opts, ledger.WithLogger(logger))

	snap, err := b.Load(ctx)
	if err != nil {
		logger.Warn("could not load saved expenses, starting empty", "error", err)
		return ledger.NewStore(opts...)
	}

	store, err := ledger.Restore(snap, opts...)
	if err != nil {
		logger.Warn("saved expenses are invalid, starting empty", "error", err)
		return ledger.NewStore(opts...)
	}
	return store
}
