package seginfo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateNameParseSegmentIDRoundTrip(t *testing.T) {
	tests := []uint32{0, 1, 42, 4294967295}

	for _, id := range tests {
		name := GenerateName(id)
		if len(name) != nameWidth {
			t.Errorf("GenerateName(%d) = %q, want length %d", id, name, nameWidth)
		}

		got, err := ParseSegmentID(name)
		if err != nil {
			t.Fatalf("ParseSegmentID(%q) error = %v", name, err)
		}
		if got != id {
			t.Errorf("ParseSegmentID(GenerateName(%d)) = %d, want %d", id, got, id)
		}
	}
}

func TestParseSegmentIDRejectsNonNumeric(t *testing.T) {
	if _, err := ParseSegmentID("not-a-number"); err == nil {
		t.Errorf("ParseSegmentID() on non-numeric name error = nil, want error")
	}
}

func TestListSegmentIDsEmptyDirectoryIsNotAnError(t *testing.T) {
	dir := t.TempDir()

	ids, err := ListSegmentIDs(dir)
	if err != nil {
		t.Fatalf("ListSegmentIDs() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ListSegmentIDs() = %v, want empty", ids)
	}
}

func TestListSegmentIDsMissingDirectoryIsNotAnError(t *testing.T) {
	ids, err := ListSegmentIDs(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("ListSegmentIDs() error = %v", err)
	}
	if ids != nil {
		t.Errorf("ListSegmentIDs() = %v, want nil", ids)
	}
}

func TestListSegmentIDsSortsAscending(t *testing.T) {
	dir := t.TempDir()

	for _, id := range []uint32{5, 0, 3, 1} {
		path := filepath.Join(dir, GenerateName(id))
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("WriteFile(%q) error = %v", path, err)
		}
	}

	ids, err := ListSegmentIDs(dir)
	if err != nil {
		t.Fatalf("ListSegmentIDs() error = %v", err)
	}

	want := []uint32{0, 1, 3, 5}
	if len(ids) != len(want) {
		t.Fatalf("ListSegmentIDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ListSegmentIDs()[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestListSegmentIDsRejectsUnparsableFilename(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), nil, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := ListSegmentIDs(dir); err == nil {
		t.Errorf("ListSegmentIDs() with a non-segment file error = nil, want CorruptDirectory error")
	}
}
