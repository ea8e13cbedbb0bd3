package segment

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// headerSize is the on-disk size of a record's two little-endian length
// prefixes (key_size, value_size), each a uint32.
const headerSize = 8

// Segment represents one append-only log file: a single Bitcask segment
// identified by its 16-digit zero-padded decimal id. A database holds many
// Segments open at once — every sealed segment stays open for reads, and
// exactly one (the one with the largest id) is the active segment new
// writes append to.
//
// Segment owns its file handle and write cursor directly; it has no
// knowledge of the index, of other segments, or of when rollover should
// happen — that coordination belongs to the storage engine. This keeps the
// binary record format and the recovery/rollover policy independently
// testable.
type Segment struct {
	id      uint32
	path    string
	file    *os.File
	maxSize uint64
	log     *zap.SugaredLogger

	// mu guards cursor. Segment methods are safe to call concurrently with
	// each other, but the engine is still expected to serialize writers to
	// the active segment: only one segment ever receives appends, and only
	// one writer at a time appends to it.
	mu     sync.Mutex
	cursor int64
}

// ID returns the segment's id.
func (s *Segment) ID() uint32 {
	return s.id
}

// Path returns the segment's on-disk path.
func (s *Segment) Path() string {
	return s.path
}
