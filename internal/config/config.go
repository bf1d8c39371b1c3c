// Package config resolves run settings from defaults, an optional YAML file
// and STRDEDUP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"

	"github.com/leeovery/strdedup/internal/locale"
	"github.com/leeovery/strdedup/internal/resource"
)

// Default paths, relative to the working directory.
const (
	DefaultSourceDir = "./src/"
	DefaultDestDir   = "./dest/"
)

// Config holds every setting of a run.
type Config struct {
	SourceDir   string        `yaml:"source_dir" env:"STRDEDUP_SOURCE_DIR"`
	DestDir     string        `yaml:"dest_dir" env:"STRDEDUP_DEST_DIR"`
	Include     string        `yaml:"include" env:"STRDEDUP_INCLUDE"`
	Tags        []string      `yaml:"tags" env:"STRDEDUP_TAGS" envSeparator:","`
	Mode        string        `yaml:"mode" env:"STRDEDUP_MODE"`
	Strict      bool          `yaml:"strict" env:"STRDEDUP_STRICT"`
	DryRun      bool          `yaml:"dry_run" env:"STRDEDUP_DRY_RUN"`
	LockTimeout time.Duration `yaml:"lock_timeout" env:"STRDEDUP_LOCK_TIMEOUT"`
}

// NewDefault returns the built-in configuration.
func NewDefault() *Config {
	return &Config{
		SourceDir:   DefaultSourceDir,
		DestDir:     DefaultDestDir,
		Include:     "*",
		Tags:        []string{resource.DefaultTag},
		Mode:        string(resource.ModeAdjacent),
		LockTimeout: 5 * time.Second,
	}
}

// OverrideFromFile overlays the YAML file at path onto cfg. Keys absent from
// the file leave cfg unchanged.
func OverrideFromFile(path string, cfg *Config) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("error opening config file %s: %w", path, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.UnmarshalStrict(content, cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// OverrideFromEnv overlays STRDEDUP_* variables from environ onto cfg.
// Unset variables leave cfg unchanged.
func OverrideFromEnv(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that cfg describes a runnable job.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return errors.New("source directory must be specified")
	}
	if c.DestDir == "" {
		return errors.New("destination directory must be specified")
	}
	if sameDir(c.SourceDir, c.DestDir) {
		return fmt.Errorf("source and destination must differ: %s", c.SourceDir)
	}
	if _, err := resource.ParseMode(c.Mode); err != nil {
		return err
	}
	if len(c.Tags) == 0 {
		return errors.New("at least one entry tag must be specified")
	}
	for _, tag := range c.Tags {
		if tag == "" {
			return errors.New("entry tags must not be empty")
		}
	}
	if _, err := locale.NewFilter(c.Include); err != nil {
		return err
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("lock_timeout must be positive, got %s", c.LockTimeout)
	}
	return nil
}

// Resolve makes relative paths absolute against dir.
func (c *Config) Resolve(dir string) {
	if !filepath.IsAbs(c.SourceDir) {
		c.SourceDir = filepath.Join(dir, c.SourceDir)
	}
	if !filepath.IsAbs(c.DestDir) {
		c.DestDir = filepath.Join(dir, c.DestDir)
	}
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
