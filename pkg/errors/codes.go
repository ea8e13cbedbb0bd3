package errors

// ErrorCode categorizes a failure so callers can branch on what happened
// without inspecting error messages.
type ErrorCode string

// Base codes cover failures that aren't particular to any one layer of the
// store.
const (
	// ErrorCodeIO is any underlying filesystem failure: a write, read, sync,
	// or open that the operating system rejected.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput marks caller mistakes: arguments that don't meet
	// an operation's requirements, as opposed to anything failing inside the
	// store itself.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal marks conditions that should be impossible during
	// normal operation: broken invariants, not environmental failures.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage codes classify failures on the segment-file side of the store.
// Most of them refine ErrorCodeIO into a condition with a distinct
// resolution path.
const (
	// ErrorCodePermissionDenied means the process lacks filesystem
	// permissions on the database directory or a segment file. Distinct from
	// generic I/O because the fix is administrative, not retry.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull means the storage device is out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly means the filesystem holding the database
	// directory is mounted read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"

	// ErrorCodeCorruptDirectory means the database directory contains a file
	// whose name cannot be parsed as a segment id (a 32-bit decimal
	// integer). Opening such a directory is a hard failure: the engine has
	// no way to order an unrecognized file into the replay sequence.
	ErrorCodeCorruptDirectory ErrorCode = "CORRUPT_DIRECTORY"

	// ErrorCodeShortRead means a positional read against an already-indexed
	// entry returned fewer bytes than the index promised. Unlike a torn
	// write at the tail of the active segment (which recovery tolerates
	// silently), this points at external corruption of data a live index
	// entry references.
	ErrorCodeShortRead ErrorCode = "SHORT_READ"

	// ErrorCodeValueReserved means a caller attempted to store a value equal
	// to one of the reserved sentinel byte strings (the tombstone marker or
	// the reserved marker), which would corrupt recovery semantics if it
	// reached disk.
	ErrorCodeValueReserved ErrorCode = "VALUE_RESERVED"

	// ErrorCodeNotImplemented marks operations that are part of the engine's
	// declared surface but intentionally unimplemented, such as compaction.
	ErrorCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
)

// Index codes classify failures in the in-memory key directory.
const (
	// ErrorCodeIndexInvalidSegmentID means an index entry points at a
	// segment id the engine does not have open, violating the invariant that
	// every indexed entry references a live segment.
	ErrorCodeIndexInvalidSegmentID ErrorCode = "INDEX_INVALID_SEGMENT_ID"

	// ErrorCodeIndexCorrupted means the in-memory index itself is in an
	// inconsistent state, surfaced by an invariant check rather than by a
	// single failed operation.
	ErrorCodeIndexCorrupted ErrorCode = "INDEX_CORRUPTED"
)
