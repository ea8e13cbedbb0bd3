// Package options provides data structures and functions for configuring
// ignite. It defines the parameters that control ignite's storage behavior:
// the data directory, index shard count, and segment rollover size.
package options

import (
	"strings"
	"time"
)

// Options defines the configuration parameters for an ignite database.
// Configuration is resolved once at Open and is not persisted; reopening a
// database with a different NumShards than a previous session is permitted
// and affects only index partitioning, never the on-disk format.
type Options struct {
	// DataDir is the directory where segment files are stored. Every file in
	// this directory is expected to be a segment named by its 16-digit
	// zero-padded decimal segment id.
	//
	// Default: "/var/lib/ignitedb"
	DataDir string `json:"dataDir"`

	// NumShards is the number of independently-locked shards the in-memory
	// index is partitioned into. It affects lock contention only, never
	// correctness: every key maps to exactly one shard via FNV1a-32(key) mod
	// NumShards regardless of how many shards there are.
	//
	// Default: 32 (the "standard" preset)
	NumShards int `json:"numShards"`

	// MaxLogFileSize is the soft byte-size bound a segment is allowed to
	// reach before the next write triggers rollover to a new segment. A
	// single write may push a segment past this size; the bound is checked
	// before writing, not after.
	//
	// Default: 256MiB (the "standard" preset)
	MaxLogFileSize uint64 `json:"maxLogFileSize"`

	// CompactInterval defines how often the (currently unimplemented)
	// compaction pass would run to reclaim space from obsolete segments.
	//
	// Default: 5h
	CompactInterval time.Duration `json:"compactInterval"`
}

// OptionFunc is a function type that modifies an ignite configuration.
type OptionFunc func(*Options)

// WithDefaultOptions resets the configuration to the package default preset
// ("standard"). Useful as the first option in a chain that then overrides
// specific fields.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		def := NewDefaultOptions()
		o.DataDir = def.DataDir
		o.NumShards = def.NumShards
		o.MaxLogFileSize = def.MaxLogFileSize
		o.CompactInterval = def.CompactInterval
	}
}

// WithDataDir sets the primary data directory for ignite.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCompactInterval sets the interval at which ignite would perform
// compaction passes, once implemented.
func WithCompactInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval > 0 {
			o.CompactInterval = interval
		}
	}
}

// WithNumShards sets the number of shards the in-memory index is
// partitioned into. Values outside [MinNumShards, MaxNumShards] are ignored,
// leaving the previous value in place.
func WithNumShards(n int) OptionFunc {
	return func(o *Options) {
		if n >= MinNumShards && n <= MaxNumShards {
			o.NumShards = n
		}
	}
}

// WithMaxLogFileSize sets the segment rollover threshold in bytes. Values
// outside [MinLogFileSize, MaxLogFileSizeCeiling] are ignored, leaving the
// previous value in place.
func WithMaxLogFileSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size >= MinLogFileSize && size <= MaxLogFileSizeCeiling {
			o.MaxLogFileSize = size
		}
	}
}
