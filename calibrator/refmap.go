package calibrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"yashubustudio/calibrator/generate"
)

const (
	refmapMaxTokens   = 200
	proximitySpan     = 300.0
	hintCorrectionGap = 50.0
	judgmentHint      = 150
)

// ReferenceMap is the ordered hierarchy of levels used as the last-resort
// classifier. Levels are held highest value first.
type ReferenceMap struct {
	levels     []Entry
	normalized []string
	tokens     []TokenSet
}

// NewReferenceMap validates and orders levels. Values and ids must be unique.
func NewReferenceMap(levels []Entry) (*ReferenceMap, error) {
	if len(levels) == 0 {
		return nil, errors.New("reference map has no levels")
	}
	sorted := make([]Entry, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	m := &ReferenceMap{
		levels:     sorted,
		normalized: make([]string, len(sorted)),
		tokens:     make([]TokenSet, len(sorted)),
	}
	ids := make(map[string]struct{}, len(sorted))
	for i := range sorted {
		lv := &sorted[i]
		if strings.TrimSpace(lv.Text) == "" {
			return nil, fmt.Errorf("reference level %v: missing name", lv.Value)
		}
		if lv.ID == "" {
			lv.ID = "level_" + strconv.FormatFloat(lv.Value, 'f', -1, 64)
		}
		if lv.Kind == "" {
			lv.Kind = KindStandard
		}
		if i > 0 && sorted[i-1].Value == lv.Value {
			return nil, fmt.Errorf("reference levels %q and %q share value %v", sorted[i-1].Text, lv.Text, lv.Value)
		}
		if _, dup := ids[lv.ID]; dup {
			return nil, fmt.Errorf("reference level id %q repeated", lv.ID)
		}
		ids[lv.ID] = struct{}{}
		m.normalized[i] = Normalize(lv.Text)
		m.tokens[i] = Tokenize(lv.Text)
	}
	return m, nil
}

// Levels returns a copy of the levels, highest first.
func (m *ReferenceMap) Levels() []Entry {
	out := make([]Entry, len(m.levels))
	copy(out, m.levels)
	return out
}

// Len returns the number of levels.
func (m *ReferenceMap) Len() int { return len(m.levels) }

var negativeHintPhrases = []string{
	"double standard", "double standards", "unfair", "unfairness", "bias",
	"biased", "hypocrisy", "hypocrite", "hypocritical", "dishonest", "deceit",
	"deceitful", "corrupt", "corruption", "unjust", "discriminatory",
	"discriminate",
}

var tokenHints = []struct {
	anchor float64
	words  TokenSet
}{
	{160, newSet("want", "wants", "wanting", "wanted", "desire", "desires", "desiring", "needy", "need", "needs", "yearn", "yearning", "crave", "craving")},
	{125, newSet("fear", "fears", "afraid", "scared", "worried", "worry", "anxious", "anxiety", "panic", "panicking", "terrified")},
	{75, newSet("apathy", "hopeless", "hopelessness", "numb", "numbness", "limbo", "stuck")},
}

// DetectHint returns the level value suggested by judgment, desire, fear or
// apathy vocabulary in text.
func DetectHint(text string) (float64, bool) {
	n := Normalize(text)
	for _, phrase := range negativeHintPhrases {
		if strings.Contains(n, phrase) {
			return judgmentHint, true
		}
	}
	tokens := Tokenize(text)
	for _, h := range tokenHints {
		if tokens.Intersects(h.words) {
			return h.anchor, true
		}
	}
	return 0, false
}

// Closest returns the level nearest to value; ties go to the lower level.
func (m *ReferenceMap) Closest(value float64) Entry {
	best := len(m.levels) - 1
	bestDiff := math.Inf(1)
	for i, lv := range m.levels {
		diff := math.Abs(lv.Value - value)
		if diff < bestDiff || (diff == bestDiff && lv.Value < m.levels[best].Value) {
			best, bestDiff = i, diff
		}
	}
	return m.levels[best]
}

// Match always selects exactly one level for statement. Lexical overlap with
// the statement or extraTerms wins; otherwise gen is asked to pick a level;
// otherwise a local heuristic scores overlap plus proximity to any hinted
// level. A pure-intent pick far from a detected hint is moved to the level
// closest to the hint.
func (m *ReferenceMap) Match(ctx context.Context, gen generate.Backend, statement string, extraTerms []string) Match {
	sel, ok := m.overlapSelection(append([]string{statement}, extraTerms...))
	if !ok {
		sel, ok = m.modelSelection(ctx, gen, statement)
	}
	if !ok {
		sel = m.heuristicSelection(statement)
	}

	if hint, found := DetectHint(statement); found && len(sel.Fields) == 0 {
		if math.Abs(sel.Entry.Value-hint) > hintCorrectionGap {
			sel = Match{
				Entry:  m.Closest(hint),
				Reason: "aligned to hinted intent near level " + formatValue(hint),
			}
		}
	}
	sel.Kind = ReferenceMapMatch
	return sel
}

func (m *ReferenceMap) overlapSelection(terms []string) (Match, bool) {
	best := -1
	var bestFields []string
	for _, term := range terms {
		n := Normalize(term)
		if n == "" {
			continue
		}
		for i := range m.levels {
			if !CloseMatch(n, m.normalized[i], m.tokens[i], 1) {
				continue
			}
			fields := []string{"name"}
			if best < 0 || len(fields) > len(bestFields) ||
				(len(fields) == len(bestFields) && m.levels[i].Value > m.levels[best].Value) {
				best, bestFields = i, fields
			}
		}
	}
	if best < 0 {
		return Match{}, false
	}
	return Match{
		Entry:  m.levels[best],
		Fields: bestFields,
		Reason: "overlap on " + strings.Join(bestFields, ", "),
	}, true
}

func (m *ReferenceMap) promptListing() string {
	lines := make([]string, len(m.levels))
	for i, lv := range m.levels {
		lines[i] = formatValue(lv.Value) + ": " + lv.Text
	}
	return strings.Join(lines, "\n")
}

func (m *ReferenceMap) selectionPrompt(statement string) string {
	return "Reference map levels:\n" + m.promptListing() + "\n\n" +
		"Statement: \"" + truncateForPrompt(statement, statementPromptTokens) + "\"\n" +
		"Select the single level whose intention most closely matches the explicit or implicit intent of the statement. " +
		"Explain how the statement embodies or aspires to that level; do not justify the choice by what the statement lacks. " +
		"Statements about unfairness, hypocrisy, bias or double standards belong below 200; do not map them to higher levels " +
		"merely because fairness is desirable. " +
		`Respond ONLY with JSON like {"loc": 350, "intention": "Acceptance", "reason": "short explanation"}`
}

type levelChoice struct {
	Loc       json.RawMessage `json:"loc"`
	Intention any             `json:"intention"`
	Reason    any             `json:"reason"`
}

func (m *ReferenceMap) modelSelection(ctx context.Context, gen generate.Backend, statement string) (Match, bool) {
	if gen == nil {
		return Match{}, false
	}
	text, err := gen.Complete(ctx, m.selectionPrompt(statement), refmapMaxTokens)
	if err != nil || text == "" {
		return Match{}, false
	}
	var choice levelChoice
	if err := json.Unmarshal([]byte(extractJSON(text, '{', '}')), &choice); err != nil {
		return Match{}, false
	}
	reason := strings.TrimSpace(stringField(choice.Reason))
	if reason == "" {
		reason = "model suggested intent"
	}
	if loc, ok := parseLoc(choice.Loc); ok {
		for _, lv := range m.levels {
			if int64(lv.Value) == loc {
				return Match{Entry: lv, Reason: reason}, true
			}
		}
	}
	if intent := Normalize(stringField(choice.Intention)); intent != "" {
		for i, lv := range m.levels {
			if m.normalized[i] == intent {
				return Match{Entry: lv, Reason: reason}, true
			}
		}
	}
	return Match{}, false
}

func parseLoc(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return int64(num), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func stringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(t)
	}
}

func (m *ReferenceMap) heuristicSelection(statement string) Match {
	tokens := Tokenize(statement)
	hint, hinted := DetectHint(statement)
	best, bestScore := -1, -1.0
	for i, lv := range m.levels {
		score := float64(tokens.Overlap(m.tokens[i]))
		if hinted {
			score += math.Max(0, 1-math.Abs(lv.Value-hint)/proximitySpan)
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	reason := "default fallback (no overlap)"
	if bestScore > 0 {
		reason = "heuristic intent similarity"
	}
	return Match{Entry: m.levels[best], Reason: reason}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
