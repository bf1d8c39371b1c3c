package engine

import (
	"fmt"
	"io"
)

// VerboseLogger writes diagnostic lines prefixed with "verbose: " so they can
// be grepped out of mixed output. When disabled, or when the receiver is nil,
// every call is a no-op.
type VerboseLogger struct {
	w       io.Writer
	enabled bool
}

// NewVerboseLogger creates a VerboseLogger writing to w.
func NewVerboseLogger(w io.Writer, enabled bool) *VerboseLogger {
	return &VerboseLogger{w: w, enabled: enabled && w != nil}
}

// Log writes one verbose line.
func (v *VerboseLogger) Log(msg string) {
	if v == nil || !v.enabled {
		return
	}
	fmt.Fprintf(v.w, "verbose: %s\n", msg)
}

// Logf formats and writes one verbose line.
func (v *VerboseLogger) Logf(format string, args ...any) {
	if v == nil || !v.enabled {
		return
	}
	v.Log(fmt.Sprintf(format, args...))
}
