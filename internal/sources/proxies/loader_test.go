package proxies

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProxiesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxies.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeProxiesFile(t, `---
proxies:
  - "https://api.allorigins.win/raw?url="
  - "https://corsproxy.io/?"
`)

	endpoints, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(endpoints) != 2 {
		t.Fatalf("Load() returned %d endpoints, want 2", len(endpoints))
	}
	if endpoints[0] != "https://api.allorigins.win/raw?url=" {
		t.Errorf("endpoint order not preserved: %v", endpoints)
	}
}

func TestLoaderDropsBlankEntries(t *testing.T) {
	path := writeProxiesFile(t, `---
proxies:
  - "https://corsproxy.io/?"
  - "   "
  - ""
`)

	endpoints, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(endpoints) != 1 {
		t.Errorf("blank entries should be dropped, got %v", endpoints)
	}
}

func TestLoaderEmptyListIsError(t *testing.T) {
	path := writeProxiesFile(t, `---
proxies: []
`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() of empty list should fail")
	}
}

func TestLoaderMissingFileIsError(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).Load(); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestLoaderInvalidYAMLIsError(t *testing.T) {
	path := writeProxiesFile(t, `proxies: [unclosed`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() of invalid yaml should fail")
	}
}
