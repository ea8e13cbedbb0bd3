// Package errors defines ignite's error taxonomy. Apart from a few sentinel
// errors (such as ErrNotImplemented here and the closed-engine and
// closed-index sentinels), every failure the store surfaces is one of three
// domain types — ValidationError for rejected
// input, StorageError for segment-file failures, IndexError for key
// directory failures — all built on a shared baseError that carries an
// ErrorCode and structured details.
//
// The design goal is that a caller never has to parse an error message.
// Each error states its category through a code, its location through
// typed fields (segment id, byte offset, file path, key), and anything
// else worth logging through a details map. Errors are built with a
// fluent chain at the point of failure:
//
//	errors.NewStorageError(err, errors.ErrorCodeIO, "failed to append record").
//	    WithSegmentID(int(id)).
//	    WithPath(path).
//	    WithOffset(int(pos))
//
// and inspected with the As*/Is* helpers or plain errors.As further up the
// stack. Classify* helpers translate raw os/syscall errors on the hot
// filesystem paths into codes with a distinct resolution path (permission
// problems, full disks, read-only mounts) rather than lumping everything
// under ErrorCodeIO.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError reports whether err is, or wraps, a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsIndexError reports whether err is, or wraps, an IndexError.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// AsValidationError extracts a ValidationError from err's chain, giving
// access to the rejected field, the violated rule, and the provided value.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsStorageError extracts a StorageError from err's chain, giving access
// to the segment id, byte offset, and file path involved in the failure.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsIndexError extracts an IndexError from err's chain, giving access to
// the key, operation, and referenced segment involved in the failure.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode returns err's ErrorCode, or ErrorCodeInternal for errors
// that don't carry one. Useful for metrics labels and switch-based
// handling without caring which domain type produced the error.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	var coded interface{ Code() ErrorCode }
	if stdErrors.As(err, &coded) {
		return coded.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails returns err's structured details, or an empty map for
// errors that don't carry any, so callers can always range over the result.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if se, ok := AsStorageError(err); ok {
		if details := se.Details(); details != nil {
			return details
		}
	}
	if ie, ok := AsIndexError(err); ok {
		if details := ie.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}

// ClassifyDirectoryCreationError turns a failure to create the database
// directory into a StorageError whose code distinguishes the conditions
// with different fixes: permissions, disk space, read-only mounts.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied,
			"insufficient permissions to create database directory",
		).WithPath(path).
			WithDetail("operation", "directory_creation")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"insufficient disk space to create database directory",
				).WithPath(path).
					WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot create database directory on a read-only filesystem",
				).WithPath(path).
					WithDetail("operation", "directory_creation")
			}
		}
	}

	return NewStorageError(
		err, ErrorCodeIO, "failed to create database directory",
	).WithPath(path).WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError turns a failure to open or create a segment file
// into a StorageError with a code the caller can act on.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied,
			"insufficient permissions to open segment file",
		).WithPath(filePath).
			WithFileName(fileName).
			WithDetail("operation", "file_open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"insufficient disk space to create segment file",
				).WithPath(filePath).
					WithFileName(fileName).
					WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot create segment file on a read-only filesystem",
				).WithPath(filePath).
					WithFileName(fileName).
					WithDetail("operation", "file_open")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open segment file").
		WithPath(filePath).
		WithFileName(fileName).
		WithDetail("operation", "file_open").
		WithDetail("flags", []string{"O_CREATE", "O_RDWR"})
}

// ClassifySyncError turns a failed fsync into a StorageError. A sync
// failure is the one place a write that already hit the page cache can
// still be lost, so EIO here is flagged at high severity: it usually means
// hardware trouble rather than a transient condition.
func ClassifySyncError(err error, fileName, filePath string, offset int) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"cannot sync segment file: insufficient disk space",
				).WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot sync segment file: filesystem is read-only",
				).WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync")
			case syscall.EIO:
				return NewStorageError(
					err, ErrorCodeIO,
					"I/O error during segment file sync",
				).WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync").
					WithDetail("severity", "high")
			}
		}
	}

	return NewStorageError(
		err, ErrorCodeIO, "failed to sync segment file to disk",
	).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
		WithDetail("operation", "file_sync")
}

// ErrNotImplemented is returned by operations that are declared as part of
// the engine's surface but intentionally unimplemented, such as compaction.
var ErrNotImplemented = NewBaseError(nil, ErrorCodeNotImplemented, "operation not implemented")

// NewCorruptDirectoryError reports a database directory containing a file
// whose name doesn't parse as a segment id.
func NewCorruptDirectoryError(err error, path, fileName string) *StorageError {
	return NewStorageError(
		err, ErrorCodeCorruptDirectory, "database directory contains a non-segment file",
	).WithPath(path).WithFileName(fileName).WithDetail("operation", "open")
}

// NewShortReadError reports a positional read that returned fewer bytes than
// an index entry promised, indicating corruption of a sealed segment.
func NewShortReadError(err error, fileName string, offset, wanted, got int) *StorageError {
	return NewStorageError(err, ErrorCodeShortRead, "short read against segment file").
		WithFileName(fileName).
		WithOffset(offset).
		WithDetail("wantedBytes", wanted).
		WithDetail("gotBytes", got)
}

// NewValueReservedError reports a Put call whose value equals one of the
// reserved sentinel byte strings (tombstone or reserved marker).
func NewValueReservedError(key string) *ValidationError {
	return NewValidationError(
		nil, ErrorCodeValueReserved, "value equals a reserved sentinel and cannot be stored",
	).WithField("value").WithRule("not_reserved").WithDetail("key", key)
}
