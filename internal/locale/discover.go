package locale

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/language"
)

// Unit is one locale directory and the resource files found in it.
type Unit struct {
	// Dir is the directory name, copied verbatim to the output tree.
	Dir   string
	Tag   language.Tag
	Known bool
	Files []string
	// Err is set when the directory could not be listed.
	Err error
}

// Filter selects resource files by base name.
type Filter struct {
	pattern string
	g       glob.Glob
}

// NewFilter compiles a glob pattern such as "strings*.xml". An empty pattern
// matches every file.
func NewFilter(pattern string) (*Filter, error) {
	if pattern == "" {
		pattern = "*"
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
	}
	return &Filter{pattern: pattern, g: g}, nil
}

// Match reports whether a file name passes the filter. A nil Filter matches
// everything.
func (f *Filter) Match(name string) bool {
	if f == nil {
		return true
	}
	return f.g.Match(name)
}

// String returns the source pattern.
func (f *Filter) String() string {
	if f == nil {
		return "*"
	}
	return f.pattern
}

// Discover lists the locale directories directly under root, sorted by name,
// and the files in each that pass filter. Hidden entries and plain files at
// the root are skipped. A root that cannot be read is an error; a locale
// directory that cannot be read is returned with Err set.
func Discover(root string, filter *Filter) ([]Unit, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	var units []Unit
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		tag, known := ParseTag(entry.Name())
		u := Unit{Dir: entry.Name(), Tag: tag, Known: known}

		files, err := os.ReadDir(filepath.Join(root, entry.Name()))
		if err != nil {
			u.Err = fmt.Errorf("failed to read locale directory %s: %w", entry.Name(), err)
			units = append(units, u)
			continue
		}
		for _, f := range files {
			if !f.Type().IsRegular() || strings.HasPrefix(f.Name(), ".") {
				continue
			}
			if filter.Match(f.Name()) {
				u.Files = append(u.Files, f.Name())
			}
		}
		units = append(units, u)
	}

	return units, nil
}
