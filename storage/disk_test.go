package storage

import (
	"bytes"
	"strings"
	"testing"
)

func TestDiskStorage_SaveLoadDelete(t *testing.T) {
	bucket := Bucket{
		Name:        "test",
		StorageType: StorageTypeFile,
		Path:        t.TempDir(),
	}
	store := NewDiskStorage(&bucket)

	content := "hello drive"
	written, err := store.Save("ab/object-1", strings.NewReader(content))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != int64(len(content)) {
		t.Errorf("Save wrote %d bytes, want %d", written, len(content))
	}

	var out bytes.Buffer
	read, err := store.Load("ab/object-1", &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if read != int64(len(content)) || out.String() != content {
		t.Errorf("Load returned %d bytes %q, want %q", read, out.String(), content)
	}

	if err := store.Delete("ab/object-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load("ab/object-1", &out); err == nil {
		t.Error("Load succeeded after Delete")
	}
}
