package options

import "time"

const (
	// DefaultDataDir specifies the default base directory where ignite will
	// store its segment files if no other directory is specified during
	// initialization.
	DefaultDataDir = "/var/lib/ignitedb"

	// DefaultCompactInterval defines the default time between automatic
	// compaction passes. Compaction itself is a stub (see internal/compaction):
	// this field is carried so the configuration surface already has a home
	// for it once compaction is implemented.
	DefaultCompactInterval = time.Hour * 5

	// MinNumShards is the smallest index partitioning this package will
	// accept from a caller; the index needs at least one shard.
	MinNumShards = 1

	// MaxNumShards bounds shard count to something a single process can
	// reasonably hold open locks for.
	MaxNumShards = 4096

	// MinLogFileSize is the smallest segment size this package will accept;
	// below this, rollover overhead would dominate write throughput.
	MinLogFileSize uint64 = 1 * 1024 * 1024

	// MaxLogFileSizeCeiling bounds how large a single segment may grow;
	// segment ids are shared across a whole database, but there's no reason
	// to let a single file grow without bound.
	MaxLogFileSizeCeiling uint64 = 4 * 1024 * 1024 * 1024
)

// Preset segment-sizing/sharding configurations, named per the engine's
// external interface contract: small, standard, and xlarge.
const (
	smallNumShards = 8
	smallMaxSize   = 30 * 1024 * 1024

	standardNumShards = 32
	standardMaxSize   = 256 * 1024 * 1024

	xlargeNumShards = 128
	xlargeMaxSize   = 512 * 1024 * 1024
)

// defaultOptions holds the configuration applied when no OptionFuncs are
// given to NewDefaultOptions — equivalent to the "standard" preset.
var defaultOptions = Options{
	DataDir:         DefaultDataDir,
	CompactInterval: DefaultCompactInterval,
	NumShards:       standardNumShards,
	MaxLogFileSize:  standardMaxSize,
}

// NewDefaultOptions returns a copy of the package defaults (the "standard"
// preset). Callers typically follow this with functional options, or
// replace it entirely with Small(), Standard(), or XLarge().
func NewDefaultOptions() Options {
	return defaultOptions
}

// Small returns the "small" preset from the engine's external interface
// contract: 8 shards, 30MiB segments. Suited to small working sets where
// lock contention is unlikely to matter.
func Small() Options {
	o := defaultOptions
	o.NumShards = smallNumShards
	o.MaxLogFileSize = smallMaxSize
	return o
}

// Standard returns the "standard" preset: 32 shards, 256MiB segments.
func Standard() Options {
	o := defaultOptions
	o.NumShards = standardNumShards
	o.MaxLogFileSize = standardMaxSize
	return o
}

// XLarge returns the "xlarge" preset: 128 shards, 512MiB segments. Suited to
// large working sets under heavy concurrent access.
func XLarge() Options {
	o := defaultOptions
	o.NumShards = xlargeNumShards
	o.MaxLogFileSize = xlargeMaxSize
	return o
}
