package errors

// IndexError carries the context a key-directory failure needs: which key
// and operation were in flight, which segment the entry pointed at, and how
// large the index was at the time.
type IndexError struct {
	*baseError

	// Key being processed when the failure occurred. Usually enough to
	// reproduce the failure by retrying the same operation.
	key string

	// Segment the key's directory entry referenced, if any. Links an index
	// failure back to the storage layer.
	segmentID uint32

	// Operation in flight: "Get", "Put", "Delete", "Recovery".
	operation string

	// Number of keys in the index when the failure occurred.
	indexSize int
}

// NewIndexError wraps err as an index failure.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{baseError: NewBaseError(err, code, msg)}
}

// The base builder methods are overridden to keep returning *IndexError so
// base and index-specific context can be chained in any order.

// WithMessage replaces the error message.
func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

// WithCode replaces the error code.
func (ie *IndexError) WithCode(code ErrorCode) *IndexError {
	ie.baseError.WithCode(code)
	return ie
}

// WithDetail attaches structured context.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithKey records which key was being processed.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithSegmentID records which segment the key's entry referenced.
func (ie *IndexError) WithSegmentID(segmentID uint32) *IndexError {
	ie.segmentID = segmentID
	return ie
}

// WithOperation records which index operation was in flight.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// WithIndexSize records how many keys the index held.
func (ie *IndexError) WithIndexSize(size int) *IndexError {
	ie.indexSize = size
	return ie
}

// Key returns the key that was being processed.
func (ie *IndexError) Key() string {
	return ie.key
}

// SegmentID returns the segment the key's entry referenced.
func (ie *IndexError) SegmentID() uint32 {
	return ie.segmentID
}

// Operation returns the index operation that was in flight.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// IndexSize returns the number of keys the index held.
func (ie *IndexError) IndexSize() int {
	return ie.indexSize
}

// NewSegmentIDError reports an index entry that references a segment id the
// engine does not have open. This breaks the invariant that every live
// directory entry points into a live segment, so it is classified as
// corruption rather than a lookup miss.
func NewSegmentIDError(segmentID uint32, key string) *IndexError {
	return NewIndexError(nil, ErrorCodeIndexInvalidSegmentID, "index entry references an unknown segment").
		WithSegmentID(segmentID).
		WithKey(key).
		WithOperation("Get")
}

// NewIndexCorruptionError reports an inconsistency detected inside the key
// directory itself.
func NewIndexCorruptionError(operation string, indexSize int, cause error) *IndexError {
	return NewIndexError(cause, ErrorCodeIndexCorrupted, "index data structure corrupted").
		WithOperation(operation).
		WithIndexSize(indexSize)
}
