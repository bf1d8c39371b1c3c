package resource

import (
	"fmt"
)

// Mode selects which repeated entries a dedup pass removes.
type Mode string

const (
	// ModeAdjacent removes an entry only when its name equals the name of the
	// previous kept entry. Input is expected to be sorted by name.
	ModeAdjacent Mode = "adjacent"
	// ModeAll removes every entry whose name was already kept earlier in the
	// document, whether or not the repeats are adjacent.
	ModeAll Mode = "all"
)

// ParseMode converts a mode name into a Mode. An empty name is ModeAdjacent.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAdjacent:
		return ModeAdjacent, nil
	case ModeAll:
		return ModeAll, nil
	default:
		return "", fmt.Errorf("unknown dedup mode %q (want %q or %q)", s, ModeAdjacent, ModeAll)
	}
}

// Options configures a dedup pass.
type Options struct {
	Mode Mode
	Tags []string
	// OnRemove, when set, is called for each removal as it happens.
	OnRemove func(Removal)
}

// Removal describes one entry dropped by a dedup pass.
type Removal struct {
	Name string `json:"name"`
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Result is the outcome of transforming one document.
type Result struct {
	Output   []byte
	Entries  int
	Kept     int
	Removals []Removal
}

// Dedup removes repeated entries from t and returns what it removed, in
// document order. Among entries sharing a name only the first survives, even
// when later ones carry different text. Entries without a name attribute are
// always kept and do not affect the comparison.
func Dedup(t *Tree, opts Options) []Removal {
	entries := t.Entries(opts.Tags...)

	var removals []Removal
	remove := func(e Entry) {
		t.Remove(e)
		r := Removal{Name: e.Name, Tag: e.Tag, Text: e.Text}
		removals = append(removals, r)
		if opts.OnRemove != nil {
			opts.OnRemove(r)
		}
	}

	if opts.Mode == ModeAll {
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			if !e.HasName {
				continue
			}
			if seen[e.Name] {
				remove(e)
				continue
			}
			seen[e.Name] = true
		}
		return removals
	}

	prev, havePrev := "", false
	for _, e := range entries {
		if !e.HasName {
			continue
		}
		if havePrev && e.Name == prev {
			remove(e)
			continue
		}
		prev, havePrev = e.Name, true
	}
	return removals
}

// Transform parses data, removes repeated entries and serializes the result.
func Transform(data []byte, opts Options) (*Result, error) {
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}

	total := len(t.Entries(opts.Tags...))
	removals := Dedup(t, opts)

	out, err := t.Bytes()
	if err != nil {
		return nil, err
	}

	return &Result{
		Output:   out,
		Entries:  total,
		Kept:     total - len(removals),
		Removals: removals,
	}, nil
}
