package engine

import (
	"github.com/leeovery/strdedup/internal/resource"
)

// Status is the outcome of processing one file.
type Status string

const (
	StatusWritten Status = "written"
	StatusDryRun  Status = "dry-run"
	StatusFailed  Status = "failed"
)

// FileResult records what happened to one resource file. For a locale
// directory that could not be listed, File is empty.
type FileResult struct {
	Locale   string
	Language string
	File     string
	Status   Status
	Entries  int
	Kept     int
	Removals []resource.Removal
	Err      string
}

// Report is the summary of a run.
type Report struct {
	Source string
	Dest   string
	Mode   resource.Mode
	DryRun bool
	Files  []FileResult
}

// Totals aggregates the per-file results of a Report.
type Totals struct {
	Files   int
	Written int
	Failed  int
	Entries int
	Removed int
}

// Totals sums the report's file results.
func (r *Report) Totals() Totals {
	var t Totals
	for _, f := range r.Files {
		t.Files++
		switch f.Status {
		case StatusWritten:
			t.Written++
		case StatusFailed:
			t.Failed++
		}
		t.Entries += f.Entries
		t.Removed += len(f.Removals)
	}
	return t
}
