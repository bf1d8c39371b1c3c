package cli

import (
	"errors"
	"io"
	"os"

	"github.com/leeovery/strdedup/internal/engine"
)

// Format represents the output format of the run summary.
type Format string

// Format constants for output selection.
const (
	FormatToon   Format = "toon"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// FormatConfig holds the resolved output configuration.
type FormatConfig struct {
	Format  Format
	Quiet   bool
	Verbose bool
}

// Formatter renders command output.
type Formatter interface {
	// FormatReport renders the summary of a dedup run.
	FormatReport(r *engine.Report) string
	// FormatMessage renders a simple message.
	FormatMessage(msg string) string
}

// DetectTTY checks if the given writer is a terminal. Returns false if the
// writer is not an *os.File or if Stat fails.
func DetectTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// ResolveFormat determines the output format from flags and TTY status.
// Returns an error if more than one format flag is set. With no flags set,
// a TTY gets Pretty and anything else gets Toon.
func ResolveFormat(toonFlag, prettyFlag, jsonFlag, isTTY bool) (Format, error) {
	count := 0
	for _, set := range []bool{toonFlag, prettyFlag, jsonFlag} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", errors.New("cannot specify multiple format flags (--toon, --pretty, --json)")
	}

	switch {
	case toonFlag:
		return FormatToon, nil
	case prettyFlag:
		return FormatPretty, nil
	case jsonFlag:
		return FormatJSON, nil
	case isTTY:
		return FormatPretty, nil
	default:
		return FormatToon, nil
	}
}

// NewFormatConfig creates a FormatConfig from flags and TTY detection.
func NewFormatConfig(toonFlag, prettyFlag, jsonFlag, quiet, verbose bool, stdout io.Writer) (FormatConfig, error) {
	format, err := ResolveFormat(toonFlag, prettyFlag, jsonFlag, DetectTTY(stdout))
	if err != nil {
		return FormatConfig{}, err
	}

	return FormatConfig{
		Format:  format,
		Quiet:   quiet,
		Verbose: verbose,
	}, nil
}

// Formatter returns the Formatter for the configured format.
func (c FormatConfig) Formatter() Formatter {
	switch c.Format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatPretty:
		return &PrettyFormatter{}
	default:
		return &ToonFormatter{}
	}
}
