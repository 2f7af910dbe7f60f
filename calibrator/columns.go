package calibrator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ColumnCandidates lists the header names recognised for each entry field in
// CSV/TSV files. Empty lists fall back to the built-in names.
type ColumnCandidates struct {
	ID    []string `json:"id" mapstructure:"id"`
	Text  []string `json:"text" mapstructure:"text"`
	Value []string `json:"value" mapstructure:"value"`
	Kind  []string `json:"kind" mapstructure:"kind"`
}

// DefaultColumnCandidates returns the built-in header names. The text list
// also names statement columns in statement files.
func DefaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		ID:    []string{"id", "key", "index", "no"},
		Text:  []string{"text", "statement", "string", "entry", "name", "intention", "content", "body", "sentence", "message", "description"},
		Value: []string{"value", "calibration", "loc", "level", "score"},
		Kind:  []string{"kind", "type"},
	}
}

func (c ColumnCandidates) withDefaults() ColumnCandidates {
	defaults := DefaultColumnCandidates()
	return ColumnCandidates{
		ID:    pickStrings(c.ID, defaults.ID),
		Text:  pickStrings(c.Text, defaults.Text),
		Value: pickStrings(c.Value, defaults.Value),
		Kind:  pickStrings(c.Kind, defaults.Kind),
	}
}

func pickStrings(custom, fallback []string) []string {
	if len(custom) == 0 {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// HeaderMode says whether the first row of a delimited file is a header.
type HeaderMode string

// Header modes. HeaderAuto treats the first row as a header when one of its
// cells names a known column.
const (
	HeaderAuto    HeaderMode = "auto"
	HeaderPresent HeaderMode = "present"
	HeaderAbsent  HeaderMode = "absent"
)

// ParseHeaderMode accepts auto, present/yes/true and absent/no/false; empty
// means auto.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return HeaderAuto, nil
	case "present", "yes", "true":
		return HeaderPresent, nil
	case "absent", "no", "false":
		return HeaderAbsent, nil
	}
	return "", fmt.Errorf("invalid header mode %q (want auto, present or absent)", s)
}

// ParseDelimiter accepts a single character or the names tab, comma and
// semicolon. Empty returns 0, which picks the delimiter from the file
// extension.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\n' || r == '\r' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
