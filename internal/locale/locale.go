// Package locale discovers per-locale resource directories and parses their
// names into language tags.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// valuesPrefix is the directory name of the default Android resource set.
const valuesPrefix = "values"

// ParseTag derives a language tag from a locale directory name. It accepts
// Android resource qualifiers ("values", "values-fr", "values-pt-rBR",
// "values-b+sr+Latn") and plain BCP 47 names ("fr-FR"). Names it cannot
// interpret yield language.Und and false.
func ParseTag(dir string) (language.Tag, bool) {
	if dir == valuesPrefix {
		return language.Und, true
	}
	if rest, ok := strings.CutPrefix(dir, valuesPrefix+"-"); ok {
		return parseQualifiers(rest)
	}

	tag, err := language.Parse(dir)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// parseQualifiers reads the locale part of an Android qualifier list. Other
// qualifiers (night, land, sw600dp) end the locale part.
func parseQualifiers(q string) (language.Tag, bool) {
	parts := strings.Split(q, "-")

	// values-b+sr+Latn is a full BCP 47 tag joined with '+'.
	if b, ok := strings.CutPrefix(parts[0], "b+"); ok {
		tag, err := language.Parse(strings.ReplaceAll(b, "+", "-"))
		if err != nil {
			return language.Und, false
		}
		return tag, true
	}

	lang := parts[0]
	if len(lang) < 2 || len(lang) > 3 {
		return language.Und, false
	}
	s := lang
	if len(parts) > 1 && len(parts[1]) == 3 && parts[1][0] == 'r' {
		s += "-" + parts[1][1:]
	}

	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
