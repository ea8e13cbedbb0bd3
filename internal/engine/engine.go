// Package engine provides ignite's storage engine: the component that binds
// the sharded index (internal/index) to the segment log files
// (internal/segment) into the open/recovery/put/get/delete protocol,
// including segment rollover.
//
// The engine owns the set of open segments keyed by id, the id of the
// active (writable) segment, the sharded index, and engine-wide
// configuration. It is the only component that knows how those three things
// relate to each other; internal/segment and internal/index know nothing
// about one another.
package engine

import (
	"bytes"
	stdErrors "errors"
	"sync"
	"sync/atomic"

	"github.com/marselester/ignite/internal/compaction"
	"github.com/marselester/ignite/internal/index"
	"github.com/marselester/ignite/internal/segment"
	"github.com/marselester/ignite/pkg/errors"
	"github.com/marselester/ignite/pkg/filesys"
	"github.com/marselester/ignite/pkg/logger"
	"github.com/marselester/ignite/pkg/options"
	"github.com/marselester/ignite/pkg/seginfo"
	"go.uber.org/zap"
)

var (
	// ErrEngineClosed is returned when attempting to perform operations on a
	// closed engine.
	ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")
)

// Tombstone is the reserved sentinel value that marks a key as deleted when
// it appears as a record's value during replay. Reserved is a second
// sentinel held back for future use; neither may be passed by callers as an
// ordinary value.
var (
	Tombstone = []byte("\x00ignite:tombstone\x00")
	Reserved  = []byte("\x00ignite:reserved\x00")
)

// Engine represents the main database engine that coordinates segment
// storage, the key directory, and (once implemented) compaction. It is
// safe for concurrent use: writes are serialized through mu, a single
// engine-wide lock guarding the active segment id and the open segment set;
// reads only need that lock long enough to resolve a segment id to a file
// handle, since the underlying region of any segment, once written, never
// changes.
type Engine struct {
	options    *options.Options
	log        *zap.SugaredLogger
	closed     atomic.Bool
	index      *index.Index
	compaction *compaction.Compaction

	mu       sync.RWMutex
	dir      string
	segments map[uint32]*segment.Segment
	activeID uint32
}

// Config holds the parameters needed to initialize a new Engine instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New opens (creating if necessary) the database directory named by
// config.Options.DataDir and replays every segment it finds in ascending id
// order to rebuild the in-memory index.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "engine configuration is required",
		).WithField("config").WithRule("required")
	}

	log := config.Logger
	if log == nil {
		log = logger.NewNop()
	}

	dir := config.Options.DataDir
	log.Infow("Opening database", "dir", dir, "numShards", config.Options.NumShards, "maxLogFileSize", config.Options.MaxLogFileSize)

	if err := filesys.CreateDir(dir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, dir)
	}

	ids, err := seginfo.ListSegmentIDs(dir)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		ids = []uint32{0}
	}

	idx, err := index.New(&index.Config{NumShards: config.Options.NumShards, Logger: log})
	if err != nil {
		return nil, err
	}
	comp := compaction.New()

	segments := make(map[uint32]*segment.Segment, len(ids))
	for _, id := range ids {
		seg, err := segment.Open(dir, id, config.Options.MaxLogFileSize, log)
		if err != nil {
			return nil, err
		}

		it := seg.Iterate()
		for {
			rec, ok := it.Next()
			if !ok {
				break
			}

			key := string(rec.Key)
			if bytes.Equal(rec.Value, Tombstone) {
				idx.Remove(key)
				continue
			}
			idx.Put(key, index.DirectoryEntry{
				SegmentID: id,
				Offset:    rec.ValueOffset,
				Size:      uint32(len(rec.Value)),
			})
		}
		seg.SetWriteCursor(it.Offset())
		segments[id] = seg

		log.Infow("Replayed segment", "segmentID", id, "writeCursor", seg.WriteCursor())
	}

	// ids is sorted ascending by ListSegmentIDs, so the last id is the
	// largest and becomes the active segment.
	activeID := ids[len(ids)-1]

	log.Infow("Database opened", "activeSegmentID", activeID, "segments", len(segments), "keys", idx.Count())

	return &Engine{
		options:    config.Options,
		log:        log,
		index:      idx,
		compaction: comp,
		dir:        dir,
		segments:   segments,
		activeID:   activeID,
	}, nil
}

// Put stores key/value durably, rolling over to a new segment first if the
// active segment is full. The record is fsynced to disk before the index is
// updated: a crash between those two steps loses only the index update, and
// the next Open recomputes it from the log, which is the core recovery
// correctness property.
func (e *Engine) Put(key string, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	if key == "" {
		return errors.NewRequiredFieldError("key")
	}
	if bytes.Equal(value, Tombstone) || bytes.Equal(value, Reserved) {
		return errors.NewValueReservedError(key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	active, err := e.ensureWritableSegmentLocked()
	if err != nil {
		return err
	}

	_, valueOffset, err := active.WriteItem([]byte(key), value)
	if err != nil {
		return err
	}

	e.index.Put(key, index.DirectoryEntry{
		SegmentID: e.activeID,
		Offset:    valueOffset,
		Size:      uint32(len(value)),
	})
	return nil
}

// Get returns the value for key and whether it was found. Absence of a key
// is not an error: a missing key simply reports found=false. err is non-nil
// only when the engine is closed or a lookup resolved to a stale or corrupt
// on-disk location.
func (e *Engine) Get(key string) (value []byte, found bool, err error) {
	if e.closed.Load() {
		return nil, false, ErrEngineClosed
	}

	entry, ok := e.index.Get(key)
	if !ok {
		return nil, false, nil
	}

	e.mu.RLock()
	seg, ok := e.segments[entry.SegmentID]
	e.mu.RUnlock()
	if !ok {
		// Invariant violation: the index must never reference a segment the
		// engine doesn't have open.
		return nil, false, errors.NewSegmentIDError(entry.SegmentID, key).
			WithIndexSize(e.index.Count())
	}

	value, err = seg.ReadValue(entry.Offset, entry.Size)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Delete removes key, appending a tombstone record to the active segment
// before removing the key's entry from the index — the same durability
// ordering as Put. It reports whether the key was present.
func (e *Engine) Delete(key string) (bool, error) {
	if e.closed.Load() {
		return false, ErrEngineClosed
	}
	if _, ok := e.index.Get(key); !ok {
		return false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	active, err := e.ensureWritableSegmentLocked()
	if err != nil {
		return false, err
	}

	if _, _, err := active.WriteItem([]byte(key), Tombstone); err != nil {
		return false, err
	}

	e.index.Remove(key)
	return true, nil
}

// Compact is declared as part of the engine's surface but intentionally
// unimplemented: it always reports ErrNotImplemented. Obsolete records
// accumulate in sealed segments until it exists.
func (e *Engine) Compact() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.compaction.Run()
}

// Count returns the number of keys currently in the index.
func (e *Engine) Count() int {
	return e.index.Count()
}

// Close closes every open segment and the index. After Close, the Engine
// must not be used again.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for _, seg := range e.segments {
		if err := seg.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := e.index.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	e.log.Infow("Database closed", "dir", e.dir)
	return firstErr
}

// ensureWritableSegmentLocked returns the active segment, rolling over to a
// new one first if it's full. Callers must hold e.mu for writing.
func (e *Engine) ensureWritableSegmentLocked() (*segment.Segment, error) {
	active, ok := e.segments[e.activeID]
	if !ok {
		return nil, errors.NewStorageError(nil, errors.ErrorCodeInternal, "active segment missing from engine").
			WithSegmentID(int(e.activeID))
	}

	if !active.IsFull() {
		return active, nil
	}

	newID := e.activeID + 1
	e.log.Infow("Rolling over to new segment", "previousSegmentID", e.activeID, "newSegmentID", newID)

	newSeg, err := segment.Open(e.dir, newID, e.options.MaxLogFileSize, e.log)
	if err != nil {
		return nil, err
	}

	e.segments[newID] = newSeg
	e.activeID = newID
	return newSeg, nil
}
