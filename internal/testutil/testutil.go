// Package testutil provides shared test helpers: locating the module root
// and laying out locale resource trees on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FindRepoRoot walks up from the working directory to the directory holding
// go.mod.
func FindRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("cannot get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find repository root (no go.mod found)")
		}
		dir = parent
	}
}

// WriteFiles creates each slash-separated relative path in files under root
// with the given content, creating parent directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
}

// SourceTree creates a temp dir holding a "src" tree built from files and
// returns the src path plus a not-yet-created "dest" path beside it.
func SourceTree(t *testing.T, files map[string]string) (src, dest string) {
	t.Helper()
	dir := t.TempDir()
	src = filepath.Join(dir, "src")
	dest = filepath.Join(dir, "dest")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatalf("creating src: %v", err)
	}
	WriteFiles(t, src, files)
	return src, dest
}
