package calibrator

import "context"

// Aligner decides whether an entry is about the same thing as a statement.
type Aligner interface {
	Aligned(ctx context.Context, statement, entryText string) bool
}

const (
	nearExactRatio        = 0.93
	nearExactRelaxedRatio = 0.8
	nearExactShortWords   = 4
)

// SearchExact returns entries whose normalized text equals the normalized
// term.
func (c *Corpus) SearchExact(term string) *MatchSet {
	out := NewMatchSet()
	n := Normalize(term)
	if n == "" {
		return out
	}
	for pos, entryText := range c.normalized {
		if entryText == n {
			out.Add(c.match(pos))
		}
	}
	return out
}

// SearchNearExact returns entries that differ from term only by small edits
// such as pluralization or typos.
func (c *Corpus) SearchNearExact(term string) *MatchSet {
	out := NewMatchSet()
	n := Normalize(term)
	if n == "" {
		return out
	}
	termTokens := Tokenize(n)
	if len(termTokens) == 0 {
		return out
	}
	threshold := nearExactRatio
	if wordCount(n) <= nearExactShortWords {
		threshold = nearExactRelaxedRatio
	}
	for _, pos := range c.index.Candidates(termTokens) {
		entryText := c.normalized[pos]
		if entryText == "" || CharRatio(n, entryText) < threshold {
			continue
		}
		entryTokens := c.tokens[pos]
		floor := min(len(termTokens), len(entryTokens))
		overlap := termTokens.Overlap(entryTokens)
		if (floor <= 2 && overlap >= 1) || overlap >= max(1, floor) {
			out.Add(c.match(pos))
		}
	}
	return out
}

// TermSearchOptions tunes SearchTerms.
type TermSearchOptions struct {
	// Statement, when set together with Gate, must align with every match.
	Statement string
	Gate      Aligner
	// MinOverlapRatio is the share of term tokens an entry must contain. It
	// only applies to terms with more than three tokens.
	MinOverlapRatio float64
	// MinTermTokens skips terms with fewer tokens.
	MinTermTokens int
}

// SearchTerms matches every term against the corpus. It also returns the
// normalized terms that produced at least one match.
func (c *Corpus) SearchTerms(ctx context.Context, terms []string, opts TermSearchOptions) (*MatchSet, map[string]struct{}) {
	out := NewMatchSet()
	matched := make(map[string]struct{})
	for _, term := range terms {
		n := Normalize(term)
		if n == "" {
			continue
		}
		termTokens := Tokenize(n)
		if len(termTokens) == 0 || len(termTokens) < opts.MinTermTokens {
			continue
		}
		minRatio := opts.MinOverlapRatio
		if len(termTokens) <= 3 {
			minRatio = 0
		}
		termWords := wordCount(n)
		for _, pos := range c.index.Candidates(termTokens) {
			entryText := c.normalized[pos]
			entryTokens := c.tokens[pos]
			need := MinOverlapFor(termWords, wordCount(entryText), len(termTokens), len(entryTokens))
			overlap := termTokens.Overlap(entryTokens)
			if overlap < need {
				continue
			}
			if minRatio > 0 && float64(overlap)/float64(len(termTokens)) < minRatio {
				continue
			}
			if !CloseMatch(n, entryText, entryTokens, need) {
				continue
			}
			if opts.Gate != nil && opts.Statement != "" && !opts.Gate.Aligned(ctx, opts.Statement, c.entries[pos].Text) {
				continue
			}
			out.Add(c.match(pos))
			matched[n] = struct{}{}
		}
	}
	return out, matched
}

// SearchByNames resolves display strings to entries by exact normalized text.
// When gate is set each entry must also align with statement.
func (c *Corpus) SearchByNames(ctx context.Context, names []string, statement string, gate Aligner) *MatchSet {
	out := NewMatchSet()
	for _, name := range names {
		pos, ok := c.byNormalized[Normalize(name)]
		if !ok {
			continue
		}
		if gate != nil && statement != "" && !gate.Aligned(ctx, statement, c.entries[pos].Text) {
			continue
		}
		out.Add(c.match(pos))
	}
	return out
}
