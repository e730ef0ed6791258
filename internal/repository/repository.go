package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no value is stored under a key
var ErrNotFound = errors.New("key not found")

// KVStore defines the interface for the persistence backend behind learning progress.
// Values survive process restarts; a Set fully replaces the previous value.
type KVStore interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value stored under key
	Set(ctx context.Context, key, value string) error

	// Close releases the backend's resources
	Close() error
}

// Supported storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Options selects and configures a backend
type Options struct {
	Driver   string
	DSN      string
	RedisURI string
}

// Open returns the backend selected by opts.Driver
func Open(opts Options) (KVStore, error) {
	var (
		store KVStore
		err   error
	)

	switch opts.Driver {
	case DriverSQLite:
		var s *SQLStore
		if s, err = OpenSQLite(opts.DSN); err == nil {
			store = s
		}
	case DriverPostgres:
		var s *SQLStore
		if s, err = OpenPostgres(opts.DSN); err == nil {
			store = s
		}
	case DriverRedis:
		var s *RedisStore
		if s, err = NewRedisStore(opts.RedisURI); err == nil {
			store = s
		}
	case DriverMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	return store, nil
}
