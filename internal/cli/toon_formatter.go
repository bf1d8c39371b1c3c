package cli

import (
	"fmt"
	"strings"

	toon "github.com/toon-format/toon-go"

	"github.com/leeovery/strdedup/internal/engine"
)

// ToonFormatter renders output in TOON (Token-Oriented Object Notation), the
// default when stdout is not a terminal.
type ToonFormatter struct{}

const toonFileFields = "locale,language,file,status,entries,kept,removed,error"

// FormatReport renders the run as three sections: run (settings and totals),
// files (one row per file) and removals (one row per dropped entry, omitted
// when nothing was removed).
func (f *ToonFormatter) FormatReport(r *engine.Report) string {
	sections := []string{f.buildRunSection(r), f.buildFilesSection(r)}
	if s := f.buildRemovalsSection(r); s != "" {
		sections = append(sections, s)
	}
	return strings.Join(sections, "\n")
}

// FormatMessage renders a simple message as plain text.
func (f *ToonFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

func (f *ToonFormatter) buildRunSection(r *engine.Report) string {
	totals := r.Totals()
	doc := toon.NewObject(
		toon.Field{Key: "run", Value: toon.NewObject(
			toon.Field{Key: "source", Value: r.Source},
			toon.Field{Key: "dest", Value: r.Dest},
			toon.Field{Key: "mode", Value: string(r.Mode)},
			toon.Field{Key: "dry_run", Value: r.DryRun},
			toon.Field{Key: "files", Value: totals.Files},
			toon.Field{Key: "written", Value: totals.Written},
			toon.Field{Key: "failed", Value: totals.Failed},
			toon.Field{Key: "entries", Value: totals.Entries},
			toon.Field{Key: "removed", Value: totals.Removed},
		)},
	)
	return marshalSection(doc)
}

func (f *ToonFormatter) buildFilesSection(r *engine.Report) string {
	if len(r.Files) == 0 {
		return fmt.Sprintf("files[0]{%s}:\n", toonFileFields)
	}

	rows := make([]toon.Object, len(r.Files))
	for i, fr := range r.Files {
		rows[i] = toon.NewObject(
			toon.Field{Key: "locale", Value: fr.Locale},
			toon.Field{Key: "language", Value: fr.Language},
			toon.Field{Key: "file", Value: fr.File},
			toon.Field{Key: "status", Value: string(fr.Status)},
			toon.Field{Key: "entries", Value: fr.Entries},
			toon.Field{Key: "kept", Value: fr.Kept},
			toon.Field{Key: "removed", Value: len(fr.Removals)},
			toon.Field{Key: "error", Value: fr.Err},
		)
	}
	return marshalSection(toon.NewObject(toon.Field{Key: "files", Value: rows}))
}

func (f *ToonFormatter) buildRemovalsSection(r *engine.Report) string {
	var rows []toon.Object
	for _, fr := range r.Files {
		for _, rm := range fr.Removals {
			rows = append(rows, toon.NewObject(
				toon.Field{Key: "locale", Value: fr.Locale},
				toon.Field{Key: "file", Value: fr.File},
				toon.Field{Key: "name", Value: rm.Name},
				toon.Field{Key: "tag", Value: rm.Tag},
				toon.Field{Key: "text", Value: rm.Text},
			))
		}
	}
	if len(rows) == 0 {
		return ""
	}
	return marshalSection(toon.NewObject(toon.Field{Key: "removals", Value: rows}))
}

// marshalSection encodes one TOON section, terminated by a newline.
func marshalSection(doc toon.Object) string {
	result, err := toon.MarshalString(doc)
	if err != nil {
		return fmt.Sprintf("error: toon marshal: %v\n", err)
	}
	return strings.TrimRight(result, "\n") + "\n"
}
