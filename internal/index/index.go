// Package index provides the sharded in-memory key directory for ignite: a
// concurrent mapping from key to DirectoryEntry. It keeps every key in
// memory for immediate lookup while storing only the metadata needed to
// find its value on disk, partitioned across a fixed number of
// independently-locked shards so that reads and writes against different
// keys rarely contend.
package index

import (
	stdErrors "errors"
	"hash/fnv"

	"github.com/marselester/ignite/pkg/errors"
	"github.com/marselester/ignite/pkg/logger"
)

var (
	// ErrIndexClosed is returned by Close when the index has already been
	// closed. Put, Get, Remove and Count do not check for a closed index.
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// New creates an Index with the requested shard count. A NumShards <= 0 is a
// configuration error rather than silently defaulting, since the caller's
// intended contention profile wouldn't be honored.
func New(config *Config) (*Index, error) {
	if config == nil || config.NumShards <= 0 {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "index configuration requires a positive NumShards",
		).WithField("numShards").WithRule("positive").WithProvided(config)
	}

	log := config.Logger
	if log == nil {
		log = logger.NewNop()
	}

	idx := &Index{log: log, shards: make([]*shard, config.NumShards)}
	for i := range idx.shards {
		idx.shards[i] = &shard{entries: make(map[string]DirectoryEntry)}
	}
	return idx, nil
}

// shardFor selects the shard a key belongs to using FNV1a-32(key) mod
// len(shards). The hash function and modulus are part of the contract only
// insofar as they determine lock partitioning — they never affect
// correctness, since a key always hashes to the same shard.
func (idx *Index) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key)) // hash.Hash32.Write never returns an error.
	return idx.shards[h.Sum32()%uint32(len(idx.shards))]
}

// Put inserts or overwrites the directory entry for key. The Index copies
// the key into storage it owns — via Go's string value semantics, key is
// never retained by reference — so callers may reuse their buffers freely
// after Put returns. The previous entry, if any, is discarded without
// further notification; the on-disk record it referenced becomes garbage
// for a future compaction pass to reclaim.
func (idx *Index) Put(key string, entry DirectoryEntry) {
	s := idx.shardFor(key)
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
}

// Get returns the directory entry for key and whether it was present. The
// shard's lock is held only for the duration of the lookup.
func (idx *Index) Get(key string) (DirectoryEntry, bool) {
	s := idx.shardFor(key)
	s.mu.Lock()
	entry, ok := s.entries[key]
	s.mu.Unlock()
	return entry, ok
}

// Remove deletes key's directory entry, if any, and reports whether it was
// present.
func (idx *Index) Remove(key string) bool {
	s := idx.shardFor(key)
	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	return ok
}

// Count returns the total number of keys across all shards. It acquires
// each shard's lock in turn, so it is exact only in the absence of
// concurrent mutation; under concurrency it is an approximation, not a
// linearizable snapshot across shards.
func (idx *Index) Count() int {
	total := 0
	for _, s := range idx.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Close releases every shard's entries. After Close, the Index must not be
// used again.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("Closing index", "shards", len(idx.shards))
	for _, s := range idx.shards {
		s.mu.Lock()
		clear(s.entries)
		s.mu.Unlock()
	}
	idx.log.Infow("Index closed")
	return nil
}
