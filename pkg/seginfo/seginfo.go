// Package seginfo provides utilities for naming and enumerating the segment
// files of an ignite database.
//
// Filename format: a 16-digit, zero-padded decimal segment id, with no
// prefix, timestamp, or extension — e.g. "0000000000000012". A database
// directory holds nothing else: no manifest, no lock file, no subdirectories.
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/marselester/ignite/pkg/errors"
)

// nameWidth is the fixed width of a segment filename: a 32-bit unsigned
// decimal has at most 10 digits, but the format reserves 16 to leave room
// and to make segment files sort lexicographically exactly like numerically
// for any id in range.
const nameWidth = 16

// GenerateName formats a segment id as its canonical 16-digit zero-padded
// filename.
func GenerateName(id uint32) string {
	return fmt.Sprintf("%0*d", nameWidth, id)
}

// ParseSegmentID parses a filename stem as a 32-bit unsigned decimal segment
// id. It accepts any valid decimal representation, not only the canonical
// 16-digit form, since a directory inherited from elsewhere may contain
// unpadded names; what matters is that the stem is purely numeric.
func ParseSegmentID(name string) (uint32, error) {
	id, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid segment id: %w", name, err)
	}
	return uint32(id), nil
}

// ListSegmentIDs enumerates every file in dir, parses each filename as a
// segment id, and returns the ids sorted ascending. A file whose name
// doesn't parse as a decimal integer is a hard error
// (errors.ErrorCodeCorruptDirectory): an unrecognized file is external
// corruption, not something to silently skip. Subdirectories are skipped
// without being parsed. A directory that
// doesn't exist yet is not an error: ListSegmentIDs returns an empty slice,
// matching the "an empty directory is a valid empty database" contract.
func ListSegmentIDs(dir string) ([]uint32, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read database directory").
			WithPath(dir)
	}

	ids := make([]uint32, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		id, err := ParseSegmentID(entry.Name())
		if err != nil {
			return nil, errors.NewCorruptDirectoryError(err, filepath.Join(dir, entry.Name()), entry.Name())
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
