package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
	"testing"
)

func TestStorageErrorChainingKeepsType(t *testing.T) {
	var err error = NewStorageError(nil, ErrorCodeIO, "failed to append record").
		WithSegmentID(3).
		WithPath("/data/db/0000000000000003").
		WithDetail("operation", "write").
		WithOffset(128)

	se, ok := AsStorageError(err)
	if !ok {
		t.Fatalf("AsStorageError() ok = false, want true")
	}
	if se.SegmentId() != 3 || se.Offset() != 128 {
		t.Errorf("StorageError = (segment=%d, offset=%d), want (3, 128)", se.SegmentId(), se.Offset())
	}
	if se.Details()["operation"] != "write" {
		t.Errorf("Details()[operation] = %v, want %q", se.Details()["operation"], "write")
	}
	if GetErrorCode(err) != ErrorCodeIO {
		t.Errorf("GetErrorCode() = %q, want %q", GetErrorCode(err), ErrorCodeIO)
	}
}

func TestClassifyDirectoryCreationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"permission denied", os.ErrPermission, ErrorCodePermissionDenied},
		{"disk full", &os.PathError{Op: "mkdir", Path: "/db", Err: syscall.ENOSPC}, ErrorCodeDiskFull},
		{"read-only filesystem", &os.PathError{Op: "mkdir", Path: "/db", Err: syscall.EROFS}, ErrorCodeFilesystemReadonly},
		{"anything else", stdErrors.New("weird failure"), ErrorCodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyDirectoryCreationError(tt.err, "/db")
			if got := GetErrorCode(err); got != tt.want {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.want)
			}
			if !IsStorageError(err) {
				t.Errorf("IsStorageError() = false, want true")
			}
		})
	}
}

func TestShortReadErrorCarriesByteCounts(t *testing.T) {
	err := NewShortReadError(nil, "0000000000000000", 64, 100, 12)

	if err.Code() != ErrorCodeShortRead {
		t.Errorf("Code() = %q, want %q", err.Code(), ErrorCodeShortRead)
	}
	details := GetErrorDetails(err)
	if details["wantedBytes"] != 100 || details["gotBytes"] != 12 {
		t.Errorf("details = %v, want wantedBytes=100 gotBytes=12", details)
	}
}

func TestValueReservedErrorIsValidation(t *testing.T) {
	err := NewValueReservedError("some-key")

	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("AsValidationError() ok = false, want true")
	}
	if ve.Field() != "value" || ve.Rule() != "not_reserved" {
		t.Errorf("ValidationError = (field=%q, rule=%q), want (value, not_reserved)", ve.Field(), ve.Rule())
	}
}

func TestSegmentIDErrorCarriesIndexContext(t *testing.T) {
	err := NewSegmentIDError(12, "orphan-key").WithIndexSize(512)

	ie, ok := AsIndexError(err)
	if !ok {
		t.Fatalf("AsIndexError() ok = false, want true")
	}
	if ie.SegmentID() != 12 || ie.Key() != "orphan-key" || ie.IndexSize() != 512 {
		t.Errorf("IndexError = (segment=%d, key=%q, size=%d), want (12, orphan-key, 512)",
			ie.SegmentID(), ie.Key(), ie.IndexSize())
	}
}

func TestIndexCorruptionError(t *testing.T) {
	err := NewIndexCorruptionError("Recovery", 1024, stdErrors.New("shard mismatch"))

	if !IsIndexError(err) {
		t.Fatalf("IsIndexError() = false, want true")
	}
	if GetErrorCode(err) != ErrorCodeIndexCorrupted {
		t.Errorf("GetErrorCode() = %q, want %q", GetErrorCode(err), ErrorCodeIndexCorrupted)
	}
	if stdErrors.Unwrap(err).Error() != "shard mismatch" {
		t.Errorf("Unwrap() = %v, want the causing error", stdErrors.Unwrap(err))
	}
}

func TestGetErrorCodeFallsBackToInternal(t *testing.T) {
	if got := GetErrorCode(stdErrors.New("plain")); got != ErrorCodeInternal {
		t.Errorf("GetErrorCode() = %q, want %q", got, ErrorCodeInternal)
	}
}
