package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "bookmarks.json")

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	// Nothing stored yet.
	_, ok, err := fs.Get(ctx)
	if err != nil {
		t.Fatalf("Get on empty store failed: %v", err)
	}
	if ok {
		t.Error("ok should be false before first Set")
	}

	if err := fs.Set(ctx, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, ok, err := fs.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("ok should be true after Set")
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Get = %s", data)
	}
}

func TestFileStoreSetOverwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookmarks.json")

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := fs.Set(ctx, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := fs.Set(ctx, []byte("second")); err != nil {
		t.Fatal(err)
	}

	data, _, err := fs.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("Get = %s, want second", data)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookmarks.json")

	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	// Deleting an absent blob is not an error.
	if err := fs.Delete(ctx); err != nil {
		t.Errorf("Delete of absent blob failed: %v", err)
	}

	if err := fs.Set(ctx, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := fs.Delete(ctx); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := fs.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("blob should be gone after Delete")
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := WriteFileAtomic(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp.") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %s", data)
	}
}

func TestFileStorePing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
