package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DirectoryEntry contains the minimum metadata required to locate a value on
// disk: which segment holds it, where in that segment it starts, and how
// long it is. This is the sole value the in-memory index stores per key —
// the actual bytes live only on disk, which is what lets a working set much
// larger than RAM still get O(1) lookups.
type DirectoryEntry struct {
	// SegmentID identifies which segment file contains this entry.
	SegmentID uint32

	// Offset is the entry's value-offset: the exact byte position within the
	// segment file where the value bytes begin, enabling direct random
	// access without scanning.
	Offset int64

	// Size is the byte length of the value, letting a read fetch exactly the
	// right number of bytes in one I/O call.
	Size uint32
}

// shard owns one partition of the key space: its own map and its own
// mutex, so operations against distinct shards never contend. Go's map
// already resolves hash collisions internally by comparing full keys, so
// unlike an open-addressing hash table a shard has no need to store a
// duplicate of the key alongside its entry for collision detection.
type shard struct {
	mu      sync.Mutex
	entries map[string]DirectoryEntry
}

// Index is the sharded, concurrent mapping from key to DirectoryEntry that
// serves as the key directory. A key belongs to exactly one shard, chosen by
// hashing the key with FNV1a-32 and reducing mod the shard count; the
// mapping never changes for the lifetime of the Index, so reads and writes
// against distinct shards never contend with each other.
type Index struct {
	log    *zap.SugaredLogger
	shards []*shard
	closed atomic.Bool
}

// Config encapsulates the parameters required to initialize an Index.
type Config struct {
	// NumShards is the number of independently-locked partitions the key
	// space is split into. Any positive integer is accepted; it affects
	// lock contention only, never correctness.
	NumShards int
	Logger    *zap.SugaredLogger
}
