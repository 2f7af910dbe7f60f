package calibrator

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"yashubustudio/calibrator/generate"
)

const alignmentMaxTokens = 200

// alignCache memoizes alignment decisions for the life of the process.
// Entries are only ever added.
type alignCache struct {
	mu sync.RWMutex
	m  map[string]bool
}

func newAlignCache() *alignCache {
	return &alignCache{m: make(map[string]bool)}
}

func (c *alignCache) get(key string) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *alignCache) put(key string, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
}

func (c *alignCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func alignKey(statement, entryText string) string {
	h := sha1.Sum([]byte(Normalize(statement) + "\x00" + entryText))
	return hex.EncodeToString(h[:])
}

// AlignmentGate decides whether a candidate entry talks about the same
// subject, with the same polarity, as the statement. A model judgment can
// veto the local heuristic but never overrule a rejection.
type AlignmentGate struct {
	gen    generate.Backend
	cache  *alignCache
	logger *zap.Logger
}

// NewAlignmentGate returns a gate consulting gen; a nil gen leaves only the
// heuristic.
func NewAlignmentGate(gen generate.Backend, logger *zap.Logger) *AlignmentGate {
	if gen == nil {
		gen = generate.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlignmentGate{gen: gen, cache: newAlignCache(), logger: logger}
}

// Aligned implements Aligner.
func (g *AlignmentGate) Aligned(ctx context.Context, statement, entryText string) bool {
	key := alignKey(statement, entryText)
	if v, ok := g.cache.get(key); ok {
		return v
	}
	heuristic := HeuristicAligned(statement, entryText)
	related := heuristic
	if judged, ok := g.judge(ctx, statement, entryText); ok {
		related = judged && heuristic
		if judged != heuristic {
			g.logger.Debug("alignment judgment differs from heuristic",
				zap.String("entry", entryText),
				zap.Bool("model", judged),
				zap.Bool("heuristic", heuristic))
		}
	}
	g.cache.put(key, related)
	return related
}

func (g *AlignmentGate) judge(ctx context.Context, statement, entryText string) (bool, bool) {
	prompt := "Determine whether the following statement and entry describe related contexts with similar intent, " +
		"polarity, and level (pro/anti, positive/negative, high/low, affirmative/denial). Consider negations such as " +
		"'not', 'ban', 'resist'. Respond ONLY with a JSON object {\"related\": true/false, \"reason\": \"...\"}. " +
		"Reply true only if the statement and entry clearly align.\n" +
		"Statement: " + truncateForPrompt(statement, contextStatementPromptTokens) + "\n" +
		"Entry: " + truncateForPrompt(entryText, contextEntryPromptTokens) + "\n" +
		"JSON:"
	text, err := g.gen.Complete(ctx, prompt, alignmentMaxTokens)
	if err != nil || text == "" {
		return false, false
	}
	return parseRelated(text)
}

// parseRelated reads the "related" field of a JSON object found anywhere in
// text. String values are compared against "true".
func parseRelated(text string) (bool, bool) {
	var payload struct {
		Related any `json:"related"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text, '{', '}')), &payload); err != nil {
		return false, false
	}
	switch v := payload.Related.(type) {
	case bool:
		return v, true
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true"), true
	default:
		return false, false
	}
}

// HeuristicAligned is the deterministic alignment check: polarity must agree
// and the texts must share enough tokens for their length.
func HeuristicAligned(statement, entryText string) bool {
	st := Tokenize(statement)
	et := Tokenize(Normalize(entryText))
	if len(st) == 0 || len(et) == 0 {
		return false
	}
	if HasNegation(statement) != HasNegation(entryText) {
		return false
	}
	need := 2
	if len(st) <= 1 || len(et) <= 1 || min(len(st), len(et)) <= 2 {
		need = 1
	}
	overlap := st.Overlap(et)
	if overlap < need {
		return overlap == 1 && CharRatio(Normalize(statement), Normalize(entryText)) >= 0.6
	}
	if overlap < 2 {
		if len(st) <= 2 || len(et) <= 2 {
			return true
		}
		if max(len(st), len(et)) >= 4 {
			return CharRatio(Normalize(statement), Normalize(entryText)) >= 0.65
		}
	}
	return true
}
