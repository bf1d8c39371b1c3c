// Package engine runs the dedup pipeline over a tree of locale directories:
// discover, transform each file, and write the results to the output tree.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/leeovery/strdedup/internal/locale"
	"github.com/leeovery/strdedup/internal/resource"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// ErrDestExists is returned in strict mode when the output root already exists.
var ErrDestExists = errors.New("output directory already exists")

// Logger is an optional sink for verbose diagnostics.
type Logger interface {
	Log(msg string)
}

// Options configures a Runner.
type Options struct {
	SourceDir   string
	DestDir     string
	Filter      *locale.Filter
	Tags        []string
	Mode        resource.Mode
	Strict      bool
	DryRun      bool
	LockTimeout time.Duration
}

// Runner executes one dedup run.
type Runner struct {
	opts     Options
	progress io.Writer
	logger   Logger
}

// Option configures optional Runner behaviour.
type Option func(*Runner)

// WithProgress sends progress lines (files started and finished, removed
// entries, directory creation) to w.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) {
		r.progress = w
	}
}

// WithLogger sends verbose diagnostics to l.
func WithLogger(l Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner for opts.
func NewRunner(opts Options, options ...Option) *Runner {
	r := &Runner{opts: opts, progress: io.Discard}
	for _, o := range options {
		o(r)
	}
	return r
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.progress, format+"\n", args...)
}

func (r *Runner) logVerbose(format string, args ...any) {
	if r.logger != nil {
		r.logger.Log(fmt.Sprintf(format, args...))
	}
}

// Run processes every resource file under the source root. It returns an
// error only for run-level failures (lock, output root in strict mode,
// unreadable source root, cancellation); per-file failures are recorded in
// the report and do not stop the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		Source: r.opts.SourceDir,
		Dest:   r.opts.DestDir,
		Mode:   r.opts.Mode,
		DryRun: r.opts.DryRun,
	}

	if !r.opts.DryRun {
		release, err := r.lockDest(ctx)
		if err != nil {
			return report, err
		}
		defer func() {
			release()
			r.logVerbose("lock released")
		}()

		if err := r.ensureDest(); err != nil {
			return report, err
		}
	}

	r.logVerbose("discovering locale directories in %s (include %s)", r.opts.SourceDir, r.opts.Filter)
	units, err := locale.Discover(r.opts.SourceDir, r.opts.Filter)
	if err != nil {
		return report, err
	}
	r.logVerbose("found %d locale directories", len(units))

	for _, u := range units {
		if u.Err != nil {
			r.printf("%s", u.Err)
			report.Files = append(report.Files, FileResult{
				Locale:   u.Dir,
				Language: u.Tag.String(),
				Status:   StatusFailed,
				Err:      u.Err.Error(),
			})
			continue
		}
		if !u.Known {
			r.logVerbose("%s: no language qualifier recognised", u.Dir)
		}

		for _, name := range u.Files {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Files = append(report.Files, r.processFile(u, name))
		}
	}

	return report, nil
}

func (r *Runner) lockDest(ctx context.Context) (func(), error) {
	lockPath := LockPath(r.opts.DestDir)
	if err := os.MkdirAll(filepath.Dir(lockPath), dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	r.logVerbose("lock acquire exclusive %s", lockPath)
	unlock, err := acquireLock(ctx, lockPath, r.opts.LockTimeout)
	if err != nil {
		return nil, err
	}
	r.logVerbose("lock acquired")

	return func() { _ = unlock() }, nil
}

// ensureDest creates the output root. In strict mode an existing root is
// fatal; otherwise the outcome is reported and the run continues.
func (r *Runner) ensureDest() error {
	err := os.Mkdir(r.opts.DestDir, dirPerm)
	switch {
	case err == nil:
		r.printf("Succeeded in creating a %s directory.", r.opts.DestDir)
		return nil
	case r.opts.Strict && errors.Is(err, os.ErrExist):
		return fmt.Errorf("%s: %w", r.opts.DestDir, ErrDestExists)
	case r.opts.Strict:
		return fmt.Errorf("failed to create %s: %w", r.opts.DestDir, err)
	case errors.Is(err, os.ErrExist):
		r.printf("The %s directory already exists, reusing it.", r.opts.DestDir)
		return nil
	default:
		r.printf("Failed to create a %s directory.", r.opts.DestDir)
		r.printf("%s", err)
		return nil
	}
}

func (r *Runner) processFile(u locale.Unit, name string) FileResult {
	res := FileResult{
		Locale:   u.Dir,
		Language: u.Tag.String(),
		File:     name,
	}
	fail := func(err error) FileResult {
		r.printf("failed %s/%s: %s", u.Dir, name, err)
		res.Status = StatusFailed
		res.Err = err.Error()
		return res
	}

	r.printf("start copying %s/%s", u.Dir, name)

	srcPath := filepath.Join(r.opts.SourceDir, u.Dir, name)
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fail(fmt.Errorf("failed to read %s: %w", srcPath, err))
	}

	out, err := resource.Transform(data, resource.Options{
		Mode: r.opts.Mode,
		Tags: r.opts.Tags,
		OnRemove: func(rm resource.Removal) {
			r.printf("remove element %s name=%q text=%q", rm.Tag, rm.Name, rm.Text)
		},
	})
	if err != nil {
		return fail(fmt.Errorf("%s: %w", srcPath, err))
	}
	res.Entries = out.Entries
	res.Kept = out.Kept
	res.Removals = out.Removals
	r.logVerbose("%s/%s: %d entries, %d removed", u.Dir, name, out.Entries, len(out.Removals))

	if r.opts.DryRun {
		res.Status = StatusDryRun
		r.printf("finish checking %s/%s", u.Dir, name)
		return res
	}

	destDir := filepath.Join(r.opts.DestDir, u.Dir)
	if err := os.MkdirAll(destDir, dirPerm); err != nil {
		return fail(fmt.Errorf("failed to create %s: %w", destDir, err))
	}

	destPath := filepath.Join(destDir, name)
	if err := writeFileAtomic(destPath, out.Output, filePerm); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", destPath, err))
	}
	r.logVerbose("wrote %s (%d bytes)", destPath, len(out.Output))

	res.Status = StatusWritten
	r.printf("finish copying %s/%s", u.Dir, name)
	return res
}
