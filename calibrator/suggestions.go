package calibrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"yashubustudio/calibrator/generate"
)

const (
	suggestionMaxTokens     = 400
	heuristicSuggestionTopN = 3
	heuristicRatioFloor     = 0.45
)

// Suggestion sources.
const (
	SourceModel     = "model"
	SourceHeuristic = "heuristic"
)

// Suggester proposes corpus entries related to a statement.
type Suggester struct {
	corpus     *Corpus
	gen        generate.Backend
	confidence float64
	logger     *zap.Logger
}

// NewSuggester returns a suggester; model suggestions below confidence are
// ignored.
func NewSuggester(corpus *Corpus, gen generate.Backend, confidence float64, logger *zap.Logger) *Suggester {
	if gen == nil {
		gen = generate.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Suggester{corpus: corpus, gen: gen, confidence: confidence, logger: logger}
}

// Suggest returns model suggestions that pass the literal-overlap checks,
// followed by heuristic suggestions not already present.
func (s *Suggester) Suggest(ctx context.Context, statement string) []Suggestion {
	statementTokens := suggestionTokens(statement)
	var out []Suggestion
	text, err := s.gen.Complete(ctx, s.prompt(statement), suggestionMaxTokens)
	if err != nil {
		s.logger.Debug("suggestion generation unavailable", zap.Error(err))
	} else if text != "" {
		var parsed bool
		out, parsed = s.parseJSON(text, statementTokens)
		if !parsed {
			out = s.parseLines(text, statementTokens)
		}
	}

	seen := make(map[string]struct{}, len(out))
	for _, sg := range out {
		seen[Normalize(sg.Name)] = struct{}{}
	}
	for _, name := range s.heuristic(statement) {
		key := Normalize(name)
		if _, dup := seen[key]; dup {
			continue
		}
		if !statementTokens.Intersects(Tokenize(key)) {
			continue
		}
		out = append(out, Suggestion{Name: name, Reason: "heuristic similarity", Source: SourceHeuristic})
		seen[key] = struct{}{}
	}
	return out
}

func (s *Suggester) prompt(statement string) string {
	var b strings.Builder
	b.WriteString("You are given the following reference entries:\n")
	for i, e := range s.corpus.entries {
		fmt.Fprintf(&b, "%d. %s (calibration %s)\n", i+1, e.Text, formatValue(e.Value))
	}
	b.WriteString("\nStatement: \"" + truncateForPrompt(statement, statementPromptTokens) + "\"\n")
	b.WriteString("Output a JSON array of up to 5 objects. Each object must have keys 'entry', 'reason', and 'confidence'. " +
		"The 'entry' must exactly match one of the reference entries. The 'reason' should briefly explain the literal " +
		"overlap between the statement and the entry. 'confidence' must be a number between 0 and 1. Only include " +
		"entries with a clear, literal relationship to the statement. If none qualify, return an empty JSON array [].")
	return b.String()
}

// suggestionTokens are the non-stopword alphabetic words of text.
func suggestionTokens(text string) TokenSet {
	out := make(TokenSet)
	for _, w := range asciiWords(text) {
		if !stopwords.Has(w) {
			out[w] = struct{}{}
		}
	}
	return out
}

// grounded reports whether a proposed entry is a real corpus entry sharing a
// token with the statement, justified by a reason that does too.
func (s *Suggester) grounded(name, reason string, statementTokens TokenSet) bool {
	if name == "" {
		return false
	}
	if _, ok := s.corpus.byNormalized[Normalize(name)]; !ok {
		return false
	}
	return statementTokens.Intersects(suggestionTokens(reason)) &&
		statementTokens.Intersects(Tokenize(Normalize(name)))
}

type modelSuggestion struct {
	Entry      any `json:"entry"`
	Reason     any `json:"reason"`
	Confidence any `json:"confidence"`
}

func (s *Suggester) parseJSON(text string, statementTokens TokenSet) ([]Suggestion, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(extractJSON(text, '[', ']')), &items); err != nil {
		return nil, false
	}
	var out []Suggestion
	for _, raw := range items {
		var item modelSuggestion
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		name := strings.TrimSpace(stringField(item.Entry))
		reason := strings.TrimSpace(stringField(item.Reason))
		if confidenceOf(item.Confidence) < s.confidence || !s.grounded(name, reason, statementTokens) {
			continue
		}
		if reason == "" {
			reason = "model suggested similarity"
		}
		out = append(out, Suggestion{Name: name, Reason: reason, Source: SourceModel})
	}
	return out, true
}

func confidenceOf(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

// parseLines reads one "name - reason" suggestion per line for responses that
// ignored the JSON instruction.
func (s *Suggester) parseLines(text string, statementTokens TokenSet) []Suggestion {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, strings.Trim(line, " -*•\t\r"))
	}
	if len(lines) == 0 && strings.Contains(text, ",") {
		for _, part := range strings.Split(text, ",") {
			if p := strings.TrimSpace(part); p != "" {
				lines = append(lines, p)
			}
		}
	}
	var out []Suggestion
	for _, line := range lines {
		if line == "" || strings.EqualFold(line, "none") {
			continue
		}
		name, reason := line, ""
		if before, after, ok := strings.Cut(line, "—"); ok {
			name, reason = before, after
		} else if before, after, ok := strings.Cut(line, "-"); ok {
			name, reason = before, after
		}
		name = strings.Trim(name, " \"'")
		reason = strings.Trim(reason, " \"'")
		if !s.grounded(name, reason, statementTokens) {
			continue
		}
		if reason == "" {
			reason = "model suggested similarity"
		}
		out = append(out, Suggestion{Name: name, Reason: reason, Source: SourceModel})
	}
	return out
}

// heuristic ranks the whole corpus by shared words plus half the character
// ratio and returns the best few names.
func (s *Suggester) heuristic(statement string) []string {
	ns := Normalize(statement)
	st := contentWords(ns)
	type scored struct {
		score float64
		name  string
	}
	var ranked []scored
	for pos, e := range s.corpus.entries {
		ne := s.corpus.normalized[pos]
		overlap := st.Overlap(contentWords(ne))
		ratio := CharRatio(ns, ne)
		if overlap == 0 && ratio < heuristicRatioFloor {
			continue
		}
		ranked = append(ranked, scored{score: float64(overlap) + ratio*0.5, name: e.Text})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name > ranked[j].name
	})
	if len(ranked) > heuristicSuggestionTopN {
		ranked = ranked[:heuristicSuggestionTopN]
	}
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.name
	}
	return names
}

// contentWords are the words of normalized text longer than two characters
// that are not stopwords.
func contentWords(normalized string) TokenSet {
	out := make(TokenSet)
	for _, w := range strings.Fields(normalized) {
		if len(w) > 2 && !stopwords.Has(w) {
			out[w] = struct{}{}
		}
	}
	return out
}
