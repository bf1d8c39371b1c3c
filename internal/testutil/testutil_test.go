package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leeovery/strdedup/internal/testutil"
)

func TestFindRepoRoot(t *testing.T) {
	t.Run("it returns a path containing go.mod", func(t *testing.T) {
		root := testutil.FindRepoRoot(t)
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
			t.Fatalf("expected go.mod at %s: %v", root, err)
		}
	})
}

func TestSourceTree(t *testing.T) {
	t.Run("it lays out files under src and leaves dest absent", func(t *testing.T) {
		src, dest := testutil.SourceTree(t, map[string]string{"values-fr/strings.xml": "<resources/>"})

		got, err := os.ReadFile(filepath.Join(src, "values-fr", "strings.xml"))
		if err != nil {
			t.Fatalf("reading written file: %v", err)
		}
		if string(got) != "<resources/>" {
			t.Errorf("content = %q", got)
		}
		if _, err := os.Stat(dest); !os.IsNotExist(err) {
			t.Errorf("expected dest to be absent, stat err = %v", err)
		}
		if filepath.Dir(src) != filepath.Dir(dest) {
			t.Errorf("src %q and dest %q should share a parent", src, dest)
		}
	})
}
