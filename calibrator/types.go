package calibrator

import (
	"encoding/json"
	"strings"
)

// Kind classifies a corpus or reference-map entry.
type Kind string

// KindStandard is the only kind the built-in data uses.
const KindStandard Kind = "standard"

// Entry is a calibrated reference text. Corpus entries and reference-map
// levels share this shape.
type Entry struct {
	ID    string  `json:"id" yaml:"id"`
	Text  string  `json:"text" yaml:"text"`
	Value float64 `json:"value" yaml:"value"`
	Kind  Kind    `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// MatchKind tells where a match came from.
type MatchKind string

const (
	// StandardMatch is a hit against the corpus.
	StandardMatch MatchKind = "standard"
	// ReferenceMapMatch is the forced-choice reference-map fallback.
	ReferenceMapMatch MatchKind = "reference_map"
)

// Match is an entry selected by a pipeline stage.
type Match struct {
	Entry  Entry     `json:"entry"`
	Kind   MatchKind `json:"kind"`
	Fields []string  `json:"matchedFields,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

// MatchSet holds matches keyed by entry id in discovery order. The zero value
// is ready to use.
type MatchSet struct {
	items []Match
	index map[string]int
}

// NewMatchSet returns a set holding matches.
func NewMatchSet(matches ...Match) *MatchSet {
	s := &MatchSet{}
	for _, m := range matches {
		s.Add(m)
	}
	return s
}

// Add inserts m. A match with an id already present replaces the earlier one
// in place.
func (s *MatchSet) Add(m Match) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[m.Entry.ID]; ok {
		s.items[i] = m
		return
	}
	s.index[m.Entry.ID] = len(s.items)
	s.items = append(s.items, m)
}

// Union adds every match of other.
func (s *MatchSet) Union(other *MatchSet) {
	if other == nil {
		return
	}
	for _, m := range other.items {
		s.Add(m)
	}
}

// Len returns the number of matches.
func (s *MatchSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Get returns the match for id.
func (s *MatchSet) Get(id string) (Match, bool) {
	if s == nil {
		return Match{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Match{}, false
	}
	return s.items[i], true
}

// Matches returns a copy of the matches in discovery order.
func (s *MatchSet) Matches() []Match {
	if s == nil {
		return nil
	}
	out := make([]Match, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the entry ids in discovery order.
func (s *MatchSet) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.items))
	for i, m := range s.items {
		out[i] = m.Entry.ID
	}
	return out
}

// MarshalJSON encodes the set as an ordered array.
func (s *MatchSet) MarshalJSON() ([]byte, error) {
	items := s.Matches()
	if items == nil {
		items = []Match{}
	}
	return json.Marshal(items)
}

// Stage records what one pipeline stage produced.
type Stage struct {
	Name     string    `json:"name"`
	Matches  *MatchSet `json:"matches"`
	Keywords []string  `json:"keywords,omitempty"`
}

// Suggestion is a corpus entry proposed for the statement.
type Suggestion struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Source string `json:"source"`
}

// Stage names in pipeline order.
const (
	StageExact          = "Direct statement"
	StageNearExact      = "Near exact statement"
	StageSimilarity     = "Statement similarity"
	StageSuggestions    = "Corpus suggestions"
	StageReferenceMap   = "Reference map fallback"
	StageSecondary      = "Secondary keywords"
	StageTertiaryAndMap = "Tertiary keywords + reference map"
)

// Result is the outcome of one pipeline run.
type Result struct {
	RunID             string       `json:"runId"`
	Statement         string       `json:"statement"`
	Matches           *MatchSet    `json:"matches"`
	Trace             []Stage      `json:"trace"`
	SecondaryKeywords []string     `json:"secondaryKeywords,omitempty"`
	TertiaryKeywords  []string     `json:"tertiaryKeywords,omitempty"`
	Suggestions       []Suggestion `json:"suggestions,omitempty"`
}

// Stage returns the trace record named name.
func (r Result) Stage(name string) (Stage, bool) {
	for _, st := range r.Trace {
		if strings.EqualFold(st.Name, name) {
			return st, true
		}
	}
	return Stage{}, false
}

// Average returns the weighted geometric mean of the matches.
func (r Result) Average() (float64, bool) {
	return Average(r.Matches.Matches())
}

// Range returns the lowest and highest matched values.
func (r Result) Range() (float64, float64, bool) {
	return Range(r.Matches.Matches())
}
