package errors

// StorageError carries the location context a segment-file failure needs:
// which segment, which file, and where in it the operation was positioned
// when it failed.
type StorageError struct {
	*baseError
	segmentId int    // Segment involved in the failure.
	offset    int    // Byte offset within the segment, if positional.
	fileName  string // Base name of the file involved.
	path      string // Full path of the file involved.
}

// NewStorageError wraps err as a storage failure.
func NewStorageError(err error, code ErrorCode, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(err, code, msg)}
}

// WithSegmentID records which segment was involved.
func (se *StorageError) WithSegmentID(id int) *StorageError {
	se.segmentId = id
	return se
}

// WithOffset records the byte position the failed operation targeted.
func (se *StorageError) WithOffset(offset int) *StorageError {
	se.offset = offset
	return se
}

// WithFileName records the base name of the file involved.
func (se *StorageError) WithFileName(fileName string) *StorageError {
	se.fileName = fileName
	return se
}

// WithPath records the full path of the file involved.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

// WithDetail attaches structured context, preserving the StorageError type
// for further chaining.
func (se *StorageError) WithDetail(key string, value any) *StorageError {
	se.baseError.WithDetail(key, value)
	return se
}

// SegmentId returns the segment involved in the failure.
func (se *StorageError) SegmentId() int {
	return se.segmentId
}

// Offset returns the byte offset the failed operation targeted. Together
// with SegmentId it pins down the exact location of the problem.
func (se *StorageError) Offset() int {
	return se.offset
}

// FileName returns the base name of the file involved.
func (se *StorageError) FileName() string {
	return se.fileName
}

// Path returns the full path of the file involved.
func (se *StorageError) Path() string {
	return se.path
}
