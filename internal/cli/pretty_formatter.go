package cli

import (
	"fmt"
	"strings"

	"github.com/leeovery/strdedup/internal/engine"
)

// PrettyFormatter renders human-readable terminal output: aligned columns,
// no borders, no colors.
type PrettyFormatter struct{}

const maxTextWidth = 50

// FormatReport renders the run header, a file table, the removed entries and
// a totals line. Failed files are listed with their errors.
func (f *PrettyFormatter) FormatReport(r *engine.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Source:  %s\n", r.Source)
	fmt.Fprintf(&b, "Dest:    %s\n", r.Dest)
	mode := string(r.Mode)
	if r.DryRun {
		mode += " (dry run)"
	}
	fmt.Fprintf(&b, "Mode:    %s\n", mode)

	if len(r.Files) == 0 {
		b.WriteString("\nNo resource files found.\n")
		return b.String()
	}

	b.WriteString("\n")
	f.writeFileTable(&b, r.Files)

	if removed := f.removalLines(r.Files); len(removed) > 0 {
		b.WriteString("\nRemoved:\n")
		for _, line := range removed {
			b.WriteString("  " + line + "\n")
		}
	}

	var failed []string
	for _, fr := range r.Files {
		if fr.Status == engine.StatusFailed {
			failed = append(failed, fmt.Sprintf("%s: %s", joinPath(fr.Locale, fr.File), fr.Err))
		}
	}
	if len(failed) > 0 {
		b.WriteString("\nFailed:\n")
		for _, line := range failed {
			b.WriteString("  " + line + "\n")
		}
	}

	t := r.Totals()
	fmt.Fprintf(&b, "\nFiles: %d  Written: %d  Failed: %d  Removed: %d\n", t.Files, t.Written, t.Failed, t.Removed)
	return b.String()
}

// FormatMessage renders a simple message as plain text.
func (f *PrettyFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

func (f *PrettyFormatter) writeFileTable(b *strings.Builder, files []engine.FileResult) {
	locW, langW, fileW, statusW := len("LOCALE"), len("LANG"), len("FILE"), len("STATUS")
	for _, fr := range files {
		locW = max(locW, len(fr.Locale))
		langW = max(langW, len(fr.Language))
		fileW = max(fileW, len(fr.File))
		statusW = max(statusW, len(fr.Status))
	}

	rowFmt := fmt.Sprintf("%%-%ds  %%-%ds  %%-%ds  %%-%ds  %%7s  %%7s\n", locW, langW, fileW, statusW)
	fmt.Fprintf(b, rowFmt, "LOCALE", "LANG", "FILE", "STATUS", "ENTRIES", "REMOVED")
	for _, fr := range files {
		fmt.Fprintf(b, rowFmt, fr.Locale, fr.Language, fr.File, fr.Status,
			fmt.Sprint(fr.Entries), fmt.Sprint(len(fr.Removals)))
	}
}

func (f *PrettyFormatter) removalLines(files []engine.FileResult) []string {
	var lines []string
	for _, fr := range files {
		for _, rm := range fr.Removals {
			lines = append(lines, fmt.Sprintf("%s  %s  %q", joinPath(fr.Locale, fr.File), rm.Name, truncateText(rm.Text, maxTextWidth)))
		}
	}
	return lines
}

func joinPath(locale, file string) string {
	if file == "" {
		return locale
	}
	return locale + "/" + file
}

// truncateText shortens s to at most width runes, marking the cut with "...".
func truncateText(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
