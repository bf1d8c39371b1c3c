package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leeovery/strdedup/internal/testutil"
)

const frStrings = `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <string name="cancel">Annuler</string>
    <string name="cancel">Annulation</string>
    <string name="ok">OK</string>
</resources>
`

// runApp runs the CLI in dir with an empty environment and returns the exit
// code and captured output.
func runApp(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := &App{
		Stdout: &stdout,
		Stderr: &stderr,
		Dir:    dir,
		Env:    map[string]string{},
	}
	code := app.Run(context.Background(), append([]string{"strdedup"}, args...))
	return code, stdout.String(), stderr.String()
}

func TestApp(t *testing.T) {
	t.Run("it uses ./src and ./dest relative to the working directory by default", func(t *testing.T) {
		work := t.TempDir()
		testutil.WriteFiles(t, work, map[string]string{"src/values-fr/strings.xml": frStrings})

		code, stdout, stderr := runApp(t, work)
		if code != ExitOK {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr)
		}

		got, err := os.ReadFile(filepath.Join(work, "dest", "values-fr", "strings.xml"))
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if strings.Contains(string(got), "Annulation") {
			t.Errorf("duplicate survived:\n%s", got)
		}
		if !strings.Contains(stdout, "start copying values-fr/strings.xml") {
			t.Errorf("stdout missing progress:\n%s", stdout)
		}
	})

	t.Run("it renders a JSON summary", func(t *testing.T) {
		src, dest := testutil.SourceTree(t, map[string]string{"values-fr/strings.xml": frStrings})

		code, stdout, stderr := runApp(t, t.TempDir(), "--src", src, "--dest", dest, "--json", "--quiet=false")
		if code != ExitOK {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr)
		}

		start := strings.Index(stdout, "{")
		if start < 0 {
			t.Fatalf("no JSON in output:\n%s", stdout)
		}
		var got struct {
			Totals struct {
				Removed int `json:"removed"`
			} `json:"totals"`
			Files []struct {
				Locale   string `json:"locale"`
				Removals []struct {
					Name string `json:"name"`
					Text string `json:"text"`
				} `json:"removals"`
			} `json:"files"`
		}
		if err := json.Unmarshal([]byte(stdout[start:]), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout[start:])
		}
		if got.Totals.Removed != 1 || len(got.Files) != 1 || got.Files[0].Removals[0].Text != "Annulation" {
			t.Errorf("unexpected summary: %+v", got)
		}
	})

	t.Run("it prints nothing with --quiet", func(t *testing.T) {
		src, dest := testutil.SourceTree(t, map[string]string{"values-fr/strings.xml": frStrings})

		code, stdout, _ := runApp(t, t.TempDir(), "-q", "--src", src, "--dest", dest)
		if code != ExitOK {
			t.Fatalf("exit code = %d", code)
		}
		if stdout != "" {
			t.Errorf("expected no stdout, got:\n%s", stdout)
		}
		if _, err := os.Stat(filepath.Join(dest, "values-fr", "strings.xml")); err != nil {
			t.Errorf("expected output file: %v", err)
		}
	})

	t.Run("it writes verbose lines to stderr", func(t *testing.T) {
		src, dest := testutil.SourceTree(t, map[string]string{"values-fr/strings.xml": frStrings})

		code, _, stderr := runApp(t, t.TempDir(), "-v", "-q", "--src", src, "--dest", dest)
		if code != ExitOK {
			t.Fatalf("exit code = %d", code)
		}
		if !strings.Contains(stderr, "verbose: lock acquired") {
			t.Errorf("stderr missing verbose lines:\n%s", stderr)
		}
	})

	t.Run("it lets flags override the environment and the environment override the config file", func(t *testing.T) {
		src, dest := testutil.SourceTree(t, map[string]string{"values-fr/strings.xml": frStrings})
		work := t.TempDir()
		testutil.WriteFiles(t, work, map[string]string{
			"strdedup.yml": "source_dir: " + src + "\ndest_dir: /nonexistent/never\nmode: bogus\n",
		})

		var stdout, stderr bytes.Buffer
		app := &App{
			Stdout: &stdout,
			Stderr: &stderr,
			Dir:    work,
			Env:    map[string]string{"STRDEDUP_DEST_DIR": dest},
		}
		code := app.Run(context.Background(), []string{"strdedup", "--config", "strdedup.yml", "--mode", "all", "-q"})
		if code != ExitOK {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
		}
		if _, err := os.Stat(filepath.Join(dest, "values-fr", "strings.xml")); err != nil {
			t.Errorf("expected output under env dest: %v", err)
		}
	})

	t.Run("it exits 1 when the source root is missing", func(t *testing.T) {
		code, _, stderr := runApp(t, t.TempDir())
		if code != ExitError {
			t.Errorf("exit code = %d, want %d", code, ExitError)
		}
		if !strings.HasPrefix(stderr, "Error: ") {
			t.Errorf("stderr = %q, want Error: prefix", stderr)
		}
	})

	t.Run("it exits 0 even when a file fails", func(t *testing.T) {
		src, dest := testutil.SourceTree(t, map[string]string{"values-fr/strings.xml": "<resources><string name=\"a>A</string></resources>"})

		code, stdout, _ := runApp(t, t.TempDir(), "--src", src, "--dest", dest, "--pretty")
		if code != ExitOK {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(stdout, "Failed:") {
			t.Errorf("summary should list the failure:\n%s", stdout)
		}
	})

	t.Run("it exits 1 for an invalid configuration", func(t *testing.T) {
		code, _, stderr := runApp(t, t.TempDir(), "--mode", "sorted")
		if code != ExitError {
			t.Errorf("exit code = %d, want %d", code, ExitError)
		}
		if !strings.Contains(stderr, "unknown dedup mode") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("it exits 2 for conflicting format flags", func(t *testing.T) {
		code, _, stderr := runApp(t, t.TempDir(), "--json", "--toon")
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr, "multiple format flags") {
			t.Errorf("stderr = %q", stderr)
		}
	})

	t.Run("it exits 2 for positional arguments", func(t *testing.T) {
		code, _, _ := runApp(t, t.TempDir(), "extra")
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("it prints usage and exits 0 for --help", func(t *testing.T) {
		code, _, stderr := runApp(t, t.TempDir(), "--help")
		if code != ExitOK {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(stderr, "Usage: strdedup") {
			t.Errorf("stderr missing usage:\n%s", stderr)
		}
	})

	t.Run("it prints the version", func(t *testing.T) {
		var stdout bytes.Buffer
		app := &App{Stdout: &stdout, Stderr: &bytes.Buffer{}, Version: "0.3.0"}
		if code := app.Run(context.Background(), []string{"strdedup", "--version"}); code != ExitOK {
			t.Fatalf("exit code = %d", code)
		}
		if stdout.String() != "0.3.0\n" {
			t.Errorf("stdout = %q", stdout.String())
		}
	})
}

func TestSplitList(t *testing.T) {
	got := splitList(" string, ,plurals,")
	if strings.Join(got, "|") != "string|plurals" {
		t.Errorf("splitList = %q", got)
	}
}
