// Package storage provides the client-side key/value stores used to persist
// the access token and session flags.
//
// Three backends share the Storage contract:
//
//   - SQLite: a local database file with embedded goose migrations; the default.
//   - Redis: a shared store, useful when several client processes act as one user.
//   - Memory: process-lifetime storage; used as the session store and in tests.
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is not an
// error.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clubhub/internal/common"
)

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all values atomically where the backend supports it.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Driver       string
	DatabasePath string
	RedisAddr    string
	RedisDB      int
}

// Open creates the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, opts.DatabasePath)
	case DriverRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisDB)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownStorageDriver, opts.Driver)
	}
}
