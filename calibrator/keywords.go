package calibrator

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"yashubustudio/calibrator/generate"
)

const (
	secondaryCount     = 10
	secondaryMaxTokens = 80
	tertiaryCount      = 15
	tertiaryMaxTokens  = 120
	keywordWordLimit   = 4
)

var (
	keywordSplit     = regexp.MustCompile(`[\n,;]+`)
	listNumbering    = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	bareKeyword      = regexp.MustCompile(`[A-Za-z][A-Za-z0-9' -]*`)
	trailingBang     = regexp.MustCompile(`[!?]+$`)
	nonKeywordChars  = regexp.MustCompile(`[^A-Za-z -]`)
	keywordShape     = regexp.MustCompile(`^[a-z][a-z -]*$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	genericFallbacks = []string{"context", "intent", "impact", "behavior", "cause", "effect"}
	tertiaryDefaults = []string{"symbolism", "meaning", "tradition", "culture", "ritual", "belief", "ethic", "behavior", "principle"}
)

// Expander turns statements and unmatched keywords into short descriptive
// keywords. Generation failures fall back to words taken from the input.
type Expander struct {
	gen    generate.Backend
	logger *zap.Logger
}

// NewExpander returns an expander backed by gen; a nil gen always falls back.
func NewExpander(gen generate.Backend, logger *zap.Logger) *Expander {
	if gen == nil {
		gen = generate.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{gen: gen, logger: logger}
}

// Expand returns up to ten keywords associated with statement.
func (e *Expander) Expand(ctx context.Context, statement string) []string {
	prompt := "Generate exactly 10 concise keywords that someone would naturally associate with the statement below. " +
		"Favor synonyms, hypernyms, physical attributes, contexts, functions, causes, or consequences tied directly to the subject. " +
		"If the statement is a single noun, provide closely related nouns such as synonyms or category names. " +
		"Each keyword must be 1-3 alphabetic words, comma-separated, with no instructions or filler language.\n" +
		"Statement: \"" + truncateForPrompt(statement, statementPromptTokens) + "\"\n" +
		"Keywords:"
	return e.keywords(ctx, prompt, secondaryCount, secondaryMaxTokens, func() []string {
		return textFallback(statement, secondaryCount)
	})
}

// ExpandUnmatched returns up to fifteen new descriptors for terms that found
// no match. None of the returned keywords repeats an input term.
func (e *Expander) ExpandUnmatched(ctx context.Context, terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	prompt := "The following keywords returned no matches: " +
		truncateForPrompt(strings.Join(terms, ", "), suggestionPromptTokens) + ". " +
		"Generate up to 15 new descriptors (1-3 alphabetic words each) that clarify their synonyms, categories, " +
		"symbolic meanings, contexts, or downstream effects. Do not repeat the original keywords. " +
		"Return a single comma-separated list."
	out := e.keywords(ctx, prompt, tertiaryCount, tertiaryMaxTokens, func() []string {
		return termsFallback(terms, tertiaryCount)
	})
	return excludeTerms(out, terms)
}

func (e *Expander) keywords(ctx context.Context, prompt string, n, maxTokens int, fallback func() []string) []string {
	var keywords []string
	text, err := e.gen.Complete(ctx, prompt, maxTokens)
	if err != nil {
		e.logger.Debug("keyword generation unavailable", zap.Error(err))
	} else if text != "" {
		keywords = FilterKeywords(ParseKeywords(text))
		if len(keywords) == 0 {
			keywords = FilterKeywords(textFallback(text, n*2))
		}
	}
	if len(keywords) < max(1, n/2) {
		existing := make(map[string]struct{}, len(keywords))
		for _, k := range keywords {
			existing[Normalize(k)] = struct{}{}
		}
		for _, w := range FilterKeywords(fallback()) {
			key := Normalize(w)
			if _, dup := existing[key]; dup || key == "" {
				continue
			}
			keywords = append(keywords, w)
			existing[key] = struct{}{}
			if len(keywords) >= n {
				break
			}
		}
	}
	if len(keywords) == 0 {
		keywords = FilterKeywords(fallback())
	}
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}

// ParseKeywords splits a generated response into keyword candidates. List
// numbering, bullets and a leading "Keywords:" style label are removed.
func ParseKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range keywordSplit.Split(raw, -1) {
		cleaned := listNumbering.ReplaceAllString(part, "")
		cleaned = strings.Trim(cleaned, " -*•\t\r")
		cleaned = stripDescriptorLabel(cleaned)
		if cleaned != "" {
			out = append(out, cleaned)
		}
	}
	if len(out) > 0 {
		return out
	}
	return bareKeyword.FindAllString(raw, -1)
}

// stripDescriptorLabel drops a "Label:" prefix when the label only describes
// the response, as in "Keywords: faith".
func stripDescriptorLabel(s string) string {
	label, rest, ok := strings.Cut(s, ":")
	if !ok || !hasBannedDescriptor(Normalize(label)) {
		return s
	}
	return strings.TrimSpace(rest)
}

func hasBannedDescriptor(normalized string) bool {
	for _, bad := range bannedDescriptors {
		if strings.Contains(normalized, bad) {
			return true
		}
	}
	return false
}

func cleanKeyword(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.Trim(cleaned, "`\"'“”‘’()[]{}")
	cleaned = trailingBang.ReplaceAllString(cleaned, "")
	cleaned = nonKeywordChars.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// FilterKeywords keeps short alphabetic descriptors and drops stopwords,
// fragments, long phrases and words that describe the prompt itself.
func FilterKeywords(words []string) []string {
	var out []string
	for _, w := range dedupePreserve(words) {
		cleaned := cleanKeyword(w)
		n := Normalize(cleaned)
		if len(n) < 3 || !keywordShape.MatchString(n) {
			continue
		}
		parts := strings.Fields(n)
		if len(parts) > keywordWordLimit {
			continue
		}
		if countLetters(n) < 3 || hasBannedDescriptor(n) {
			continue
		}
		ok := true
		for _, p := range parts {
			if len(p) < 3 || stopwords.Has(p) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, cleaned)
		}
	}
	return out
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			n++
		}
	}
	return n
}

// excludeTerms drops keywords whose normalized form is in disallowed, and
// duplicates.
func excludeTerms(keywords, disallowed []string) []string {
	blocked := make(map[string]struct{}, len(disallowed))
	for _, d := range disallowed {
		if n := Normalize(d); n != "" {
			blocked[n] = struct{}{}
		}
	}
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		n := Normalize(k)
		if n == "" {
			continue
		}
		if _, ok := blocked[n]; ok {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, k)
	}
	return out
}

func textFallback(text string, n int) []string {
	words := dedupePreserve(alphaWords(text))
	if len(words) == 0 {
		words = append([]string(nil), genericFallbacks...)
	}
	if len(words) > n {
		words = words[:n]
	}
	return words
}

func termsFallback(terms []string, n int) []string {
	var parts []string
	for _, t := range terms {
		parts = append(parts, alphaWords(t)...)
	}
	if len(parts) == 0 {
		parts = append(parts, terms...)
	}
	words := dedupePreserve(append(parts, tertiaryDefaults...))
	if len(words) > n {
		words = words[:n]
	}
	return words
}
