// Package segment implements ignite's on-disk log file: the append-only,
// binary-framed record format, the positional reads against it, and the
// torn-tail-tolerant forward iterator that recovery depends on.
//
// Records have no checksum, type tag, or padding — two little-endian uint32
// length prefixes followed immediately by the raw key and value bytes:
//
//	key_size(4) | value_size(4) | key(key_size) | value(value_size)
//
// A record's item-offset is the file offset of key_size; its value-offset
// is item-offset + 8 + key_size.
package segment

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/marselester/ignite/pkg/errors"
	"github.com/marselester/ignite/pkg/logger"
	"github.com/marselester/ignite/pkg/seginfo"
	"go.uber.org/zap"
)

// Open opens the segment identified by id in dir, creating it if it
// doesn't already exist. The write cursor starts at zero; callers that
// reopen an existing segment must call SetWriteCursor once they know where
// the file's valid data ends (normally via Iterate during recovery).
func Open(dir string, id uint32, maxSize uint64, log *zap.SugaredLogger) (*Segment, error) {
	if log == nil {
		log = logger.NewNop()
	}

	path := filepath.Join(dir, seginfo.GenerateName(id))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, filepath.Base(path))
	}

	log.Debugw("Opened segment file", "segmentID", id, "path", path)
	return &Segment{id: id, path: path, file: file, maxSize: maxSize, log: log}, nil
}

// Close closes the underlying file handle.
func (s *Segment) Close() error {
	if err := s.file.Close(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close segment file").
			WithSegmentID(int(s.id)).
			WithPath(s.path)
	}
	return nil
}

// IsFull reports whether the write cursor has already met or exceeded
// maxSize. This is a soft bound checked BEFORE a write, not after: a single
// WriteItem call may legitimately push the cursor past maxSize.
func (s *Segment) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(s.cursor) >= s.maxSize
}

// WriteCursor returns the segment's current write cursor.
func (s *Segment) WriteCursor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// SetWriteCursor sets the write cursor, used by the engine after replaying
// a segment at open to position it at the end of its last valid record.
func (s *Segment) SetWriteCursor(pos int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = pos
}

// WriteItem appends one record at the current write cursor and fsyncs the
// file before returning, so every successful WriteItem is durable across a
// crash immediately after return. On any I/O error the cursor is left
// exactly where it was before the call — the pre-write cursor is captured
// up front and only committed once both the write and the fsync succeed.
//
// It returns the record's item-offset and value-offset.
func (s *Segment) WriteItem(key, value []byte) (itemOffset, valueOffset int64, err error) {
	record := encode(key, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.cursor
	if _, err := s.file.WriteAt(record, pos); err != nil {
		return 0, 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to append record").
			WithSegmentID(int(s.id)).
			WithPath(s.path).
			WithOffset(int(pos))
	}
	if err := s.file.Sync(); err != nil {
		return 0, 0, errors.ClassifySyncError(err, filepath.Base(s.path), s.path, int(pos))
	}

	itemOffset = pos
	valueOffset = pos + headerSize + int64(len(key))
	s.cursor = pos + int64(len(record))
	return itemOffset, valueOffset, nil
}

// ReadValue reads exactly size bytes at offset into a freshly allocated
// buffer. A read that returns fewer bytes than requested is a ShortRead: it
// indicates the segment is shorter than an index entry promised, which can
// only mean external corruption of a sealed segment (a torn write at the
// tail of the still-active segment never reaches the index in the first
// place).
func (s *Segment) ReadValue(offset int64, size uint32) ([]byte, error) {
	buf := make([]byte, size)
	n, err := s.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read value").
			WithSegmentID(int(s.id)).
			WithPath(s.path).
			WithOffset(int(offset))
	}
	if uint32(n) < size {
		return nil, errors.NewShortReadError(err, filepath.Base(s.path), int(offset), int(size), n)
	}
	return buf, nil
}

// ReadItem reads the full record at itemOffset: its two length prefixes,
// then its key and value bytes.
func (s *Segment) ReadItem(itemOffset int64) (key, value []byte, valueOffset int64, err error) {
	header := make([]byte, headerSize)
	n, err := s.file.ReadAt(header, itemOffset)
	if err != nil && err != io.EOF {
		return nil, nil, 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read record header").
			WithSegmentID(int(s.id)).
			WithPath(s.path).
			WithOffset(int(itemOffset))
	}
	if n < headerSize {
		return nil, nil, 0, errors.NewShortReadError(err, filepath.Base(s.path), int(itemOffset), headerSize, n)
	}

	keySize := binary.LittleEndian.Uint32(header[0:4])
	valueSize := binary.LittleEndian.Uint32(header[4:8])

	body := make([]byte, int(keySize)+int(valueSize))
	bodyOffset := itemOffset + headerSize
	n, err = s.file.ReadAt(body, bodyOffset)
	if err != nil && err != io.EOF {
		return nil, nil, 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read record body").
			WithSegmentID(int(s.id)).
			WithPath(s.path).
			WithOffset(int(bodyOffset))
	}
	if n < len(body) {
		return nil, nil, 0, errors.NewShortReadError(err, filepath.Base(s.path), int(bodyOffset), len(body), n)
	}

	valueOffset = bodyOffset + int64(keySize)
	return body[:keySize], body[keySize:], valueOffset, nil
}

// Iterate returns a lazy, finite, single-pass iterator over the segment's
// records starting at offset 0.
func (s *Segment) Iterate() *Iterator {
	return &Iterator{seg: s}
}

// Iterator walks a segment's records in file order. It terminates the first
// time a read at its current offset fails to produce a complete record —
// whether that's a clean EOF, a short read of a length prefix, or a short
// read of the key/value payload. This is deliberate: a torn trailing record
// left by a crash mid-append is indistinguishable from "not yet written" and
// must be silently ignored rather than surfaced as an error, so that
// recovery treats it as simply not having happened.
type Iterator struct {
	seg    *Segment
	offset int64
	done   bool
}

// Record describes one record yielded by Iterator.Next, including its
// position so callers can build index entries directly from it.
type Record struct {
	Key         []byte
	Value       []byte
	ItemOffset  int64
	ValueOffset int64
}

// Next returns the next record, or ok=false once the segment has no more
// complete records at the iterator's current offset. Once Next returns
// ok=false it will keep doing so; call Offset to get the position recovery
// should adopt as the segment's write cursor.
func (it *Iterator) Next() (rec Record, ok bool) {
	if it.done {
		return Record{}, false
	}

	header := make([]byte, headerSize)
	n, err := it.seg.file.ReadAt(header, it.offset)
	if err != nil || n < headerSize {
		it.done = true
		return Record{}, false
	}

	keySize := binary.LittleEndian.Uint32(header[0:4])
	valueSize := binary.LittleEndian.Uint32(header[4:8])
	bodyOffset := it.offset + headerSize

	body := make([]byte, int(keySize)+int(valueSize))
	n, err = it.seg.file.ReadAt(body, bodyOffset)
	if err != nil || n < len(body) {
		it.done = true
		return Record{}, false
	}

	rec = Record{
		Key:         body[:keySize],
		Value:       body[keySize:],
		ItemOffset:  it.offset,
		ValueOffset: bodyOffset + int64(keySize),
	}
	it.offset = bodyOffset + int64(len(body))
	return rec, true
}

// Offset returns the iterator's current position: the offset of the first
// byte that did not parse as a complete record, once iteration has stopped.
func (it *Iterator) Offset() int64 {
	return it.offset
}

// encode serializes a key/value pair into the on-disk record format.
func encode(key, value []byte) []byte {
	buf := make([]byte, headerSize+len(key)+len(value))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(key)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(value)))
	copy(buf[headerSize:], key)
	copy(buf[headerSize+len(key):], value)
	return buf
}
