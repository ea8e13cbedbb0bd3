// Package ignite provides a high-performance key/value data store designed
// for fast read and write operations, inspired by Bitcask. It combines a
// sharded in-memory key directory (internal/index) with an append-only,
// segmented log structure on disk (internal/segment) driven by
// internal/engine to achieve high write throughput with O(1) lookups. It is
// designed for applications requiring fast read and write operations, such
// as caching, session management, and real-time data processing.
package ignite

import (
	"context"

	"github.com/marselester/ignite/internal/engine"
	"github.com/marselester/ignite/pkg/logger"
	"github.com/marselester/ignite/pkg/options"
)

// DB is the primary entry point for interacting with an ignite store,
// providing methods for setting, getting, and deleting key-value pairs. It
// encapsulates the engine responsible for data handling and the
// configuration options this instance was opened with.
type DB struct {
	engine  *engine.Engine
	options options.Options
}

// Open opens (creating if necessary) a database rooted at the directory
// named by options (or options.DefaultDataDir if WithDataDir is never
// called), replaying every segment it finds to rebuild the in-memory index
// before returning.
//
// ctx is accepted for API symmetry with the store's other blocking
// operations but is not consulted: Open runs to completion or returns an
// error, as ignite makes no cancellation or timeout guarantees.
func Open(ctx context.Context, service string, opts ...options.OptionFunc) (*DB, error) {
	log := logger.New(service)

	o := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	eng, err := engine.New(&engine.Config{Logger: log, Options: &o})
	if err != nil {
		return nil, err
	}

	return &DB{engine: eng, options: o}, nil
}

// Put stores a key-value pair in the database. If the key already exists,
// its value is overwritten. The write is durable (fsynced) before Put
// returns. value must not equal one of ignite's reserved sentinel byte
// strings; passing one reports a ValueReserved error.
func (db *DB) Put(ctx context.Context, key string, value []byte) error {
	return db.engine.Put(key, value)
}

// Get retrieves the value associated with key. The absence of a key is not
// an error: found reports whether the key exists, and err is non-nil only
// when the DB is closed or when a lookup that found an index entry then
// failed to resolve or read the underlying segment.
func (db *DB) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	return db.engine.Get(key)
}

// Delete removes a key-value pair from the database by appending a
// tombstone record, then discarding the key's in-memory directory entry. It
// reports whether the key was present.
func (db *DB) Delete(ctx context.Context, key string) (bool, error) {
	return db.engine.Delete(key)
}

// Compact would merge sealed segments and reclaim the space held by
// superseded records and tombstones. It is not yet implemented and always
// reports a NotImplemented error.
func (db *DB) Compact(ctx context.Context) error {
	return db.engine.Compact()
}

// Count returns the number of keys currently stored.
func (db *DB) Count() int {
	return db.engine.Count()
}

// Close gracefully shuts down the database, closing every open segment file
// and releasing the in-memory index. After Close, the DB must not be used
// again.
func (db *DB) Close(ctx context.Context) error {
	return db.engine.Close()
}
