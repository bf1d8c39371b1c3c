package cli

import (
	"encoding/json"
	"fmt"

	"github.com/leeovery/strdedup/internal/engine"
	"github.com/leeovery/strdedup/internal/resource"
)

// JSONFormatter renders output as 2-space indented JSON with snake_case keys.
type JSONFormatter struct{}

type jsonReport struct {
	Source string     `json:"source"`
	Dest   string     `json:"dest"`
	Mode   string     `json:"mode"`
	DryRun bool       `json:"dry_run"`
	Totals jsonTotals `json:"totals"`
	Files  []jsonFile `json:"files"`
}

type jsonTotals struct {
	Files   int `json:"files"`
	Written int `json:"written"`
	Failed  int `json:"failed"`
	Entries int `json:"entries"`
	Removed int `json:"removed"`
}

// jsonFile always carries a removals array, empty rather than null.
type jsonFile struct {
	Locale   string             `json:"locale"`
	Language string             `json:"language"`
	File     string             `json:"file"`
	Status   string             `json:"status"`
	Entries  int                `json:"entries"`
	Kept     int                `json:"kept"`
	Removals []resource.Removal `json:"removals"`
	Error    string             `json:"error,omitempty"`
}

type jsonMessage struct {
	Message string `json:"message"`
}

// FormatReport renders the run summary as a single JSON object.
func (f *JSONFormatter) FormatReport(r *engine.Report) string {
	t := r.Totals()
	out := jsonReport{
		Source: r.Source,
		Dest:   r.Dest,
		Mode:   string(r.Mode),
		DryRun: r.DryRun,
		Totals: jsonTotals(t),
		Files:  make([]jsonFile, 0, len(r.Files)),
	}
	for _, fr := range r.Files {
		removals := fr.Removals
		if removals == nil {
			removals = []resource.Removal{}
		}
		out.Files = append(out.Files, jsonFile{
			Locale:   fr.Locale,
			Language: fr.Language,
			File:     fr.File,
			Status:   string(fr.Status),
			Entries:  fr.Entries,
			Kept:     fr.Kept,
			Removals: removals,
			Error:    fr.Err,
		})
	}
	return marshalIndent(out)
}

// FormatMessage renders {"message": msg}.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalIndent(jsonMessage{Message: msg})
}

func marshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("{\"error\": %q}\n", err.Error())
	}
	return string(data) + "\n"
}
