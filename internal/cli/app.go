// Package cli implements the strdedup command-line interface.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/leeovery/strdedup/internal/config"
	"github.com/leeovery/strdedup/internal/engine"
	"github.com/leeovery/strdedup/internal/locale"
	"github.com/leeovery/strdedup/internal/resource"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// App is the strdedup CLI application.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory relative paths resolve against.
	Dir string
	// Env holds the process environment as key/value pairs.
	Env     map[string]string
	Version string
}

// flags holds the raw command-line values before they are merged into a
// config.Config. Only flags the user actually set override the config.
type flags struct {
	configPath  string
	source      string
	dest        string
	include     string
	tags        string
	mode        string
	strict      bool
	dryRun      bool
	lockTimeout time.Duration

	quiet   bool
	verbose bool
	toon    bool
	pretty  bool
	json    bool
	version bool
}

// Run parses args (args[0] is the program name), runs the dedup job and
// returns the process exit code. Per-file failures do not change the exit
// code; only run-level failures do.
func (a *App) Run(ctx context.Context, args []string) int {
	fs, fl := a.newFlagSet()
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(a.Stderr, "Error: unexpected argument '%s'. Run 'strdedup --help' for usage.\n", fs.Arg(0))
		return ExitUsage
	}

	if fl.version {
		fmt.Fprintln(a.Stdout, a.version())
		return ExitOK
	}

	fc, err := NewFormatConfig(fl.toon, fl.pretty, fl.json, fl.quiet, fl.verbose, a.Stdout)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %s\n", err)
		return ExitUsage
	}

	cfg, err := a.loadConfig(fs, fl)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %s\n", err)
		return ExitError
	}

	report, err := a.runJob(ctx, cfg, fc)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %s\n", err)
		return ExitError
	}

	if !fc.Quiet {
		fmt.Fprint(a.Stdout, fc.Formatter().FormatReport(report))
	}
	return ExitOK
}

func (a *App) newFlagSet() (*flag.FlagSet, *flags) {
	fl := &flags{}
	fs := flag.NewFlagSet("strdedup", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)

	fs.StringVar(&fl.configPath, "config", "", "read settings from a YAML `file`")
	fs.StringVar(&fl.source, "src", "", "source root holding one directory per locale (default ./src/)")
	fs.StringVar(&fl.dest, "dest", "", "output root mirrored from the source (default ./dest/)")
	fs.StringVar(&fl.include, "include", "", "glob selecting resource files by name (default *)")
	fs.StringVar(&fl.tags, "tags", "", "comma-separated element names treated as entries (default string)")
	fs.StringVar(&fl.mode, "mode", "", "dedup mode: adjacent (sorted input) or all (default adjacent)")
	fs.BoolVar(&fl.strict, "strict", false, "fail when the output root already exists")
	fs.BoolVar(&fl.dryRun, "dry-run", false, "report removals without writing anything")
	fs.DurationVar(&fl.lockTimeout, "lock-timeout", 0, "how long to wait for the output lock (default 5s)")

	fs.BoolVar(&fl.quiet, "quiet", false, "suppress progress and summary output")
	fs.BoolVar(&fl.quiet, "q", false, "shorthand for --quiet")
	fs.BoolVar(&fl.verbose, "verbose", false, "write debug detail to stderr")
	fs.BoolVar(&fl.verbose, "v", false, "shorthand for --verbose")
	fs.BoolVar(&fl.toon, "toon", false, "force TOON summary output")
	fs.BoolVar(&fl.pretty, "pretty", false, "force human-readable summary output")
	fs.BoolVar(&fl.json, "json", false, "force JSON summary output")
	fs.BoolVar(&fl.version, "version", false, "print the version and exit")

	fs.Usage = func() {
		fmt.Fprintln(a.Stderr, "Usage: strdedup [options]")
		fmt.Fprintln(a.Stderr)
		fmt.Fprintln(a.Stderr, "Copies <src>/<locale>/<file> to <dest>/<locale>/<file>, keeping only the")
		fmt.Fprintln(a.Stderr, "first of each run of string entries that share a name.")
		fmt.Fprintln(a.Stderr)
		fmt.Fprintln(a.Stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(a.Stderr)
		fmt.Fprintln(a.Stderr, "Environment:")
		fmt.Fprintln(a.Stderr, "  STRDEDUP_SOURCE_DIR, STRDEDUP_DEST_DIR, STRDEDUP_INCLUDE, STRDEDUP_TAGS,")
		fmt.Fprintln(a.Stderr, "  STRDEDUP_MODE, STRDEDUP_STRICT, STRDEDUP_DRY_RUN, STRDEDUP_LOCK_TIMEOUT")
	}
	return fs, fl
}

// loadConfig merges defaults, the config file, the environment and the flags
// that were set, in that order, then resolves and validates the result.
func (a *App) loadConfig(fs *flag.FlagSet, fl *flags) (*config.Config, error) {
	cfg := config.NewDefault()

	if fl.configPath != "" {
		var err error
		if cfg, err = config.OverrideFromFile(a.resolve(fl.configPath), cfg); err != nil {
			return nil, err
		}
	}
	if err := config.OverrideFromEnv(cfg, a.Env); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "src":
			cfg.SourceDir = fl.source
		case "dest":
			cfg.DestDir = fl.dest
		case "include":
			cfg.Include = fl.include
		case "tags":
			cfg.Tags = splitList(fl.tags)
		case "mode":
			cfg.Mode = fl.mode
		case "strict":
			cfg.Strict = fl.strict
		case "dry-run":
			cfg.DryRun = fl.dryRun
		case "lock-timeout":
			cfg.LockTimeout = fl.lockTimeout
		}
	})

	cfg.Resolve(a.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) runJob(ctx context.Context, cfg *config.Config, fc FormatConfig) (*engine.Report, error) {
	mode, err := resource.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	filter, err := locale.NewFilter(cfg.Include)
	if err != nil {
		return nil, err
	}

	var opts []engine.Option
	if !fc.Quiet {
		opts = append(opts, engine.WithProgress(a.Stdout))
	}
	if fc.Verbose {
		opts = append(opts, engine.WithLogger(engine.NewVerboseLogger(a.Stderr, true)))
	}

	runner := engine.NewRunner(engine.Options{
		SourceDir:   cfg.SourceDir,
		DestDir:     cfg.DestDir,
		Filter:      filter,
		Tags:        cfg.Tags,
		Mode:        mode,
		Strict:      cfg.Strict,
		DryRun:      cfg.DryRun,
		LockTimeout: cfg.LockTimeout,
	}, opts...)
	return runner.Run(ctx)
}

func (a *App) resolve(path string) string {
	if a.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.Dir, path)
}

func (a *App) version() string {
	if a.Version == "" {
		return "dev"
	}
	return a.Version
}

// splitList splits a comma-separated list, trimming blanks and dropping
// empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
