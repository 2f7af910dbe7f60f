package calibrator

import (
	"strings"
	"unicode/utf8"
)

const approxCharsPerToken = 4

// Prompt budgets, in approximate tokens.
const (
	statementPromptTokens        = 256
	suggestionPromptTokens       = 196
	contextStatementPromptTokens = 160
	contextEntryPromptTokens     = 120
)

// truncateForPrompt keeps text within an approximate token budget, cutting at
// a word boundary when one is close enough to the limit.
func truncateForPrompt(text string, maxTokens int) string {
	if text == "" || maxTokens <= 0 {
		return ""
	}
	maxChars := maxTokens * approxCharsPerToken
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	truncated := string([]rune(text)[:maxChars])
	if cut := strings.LastIndex(truncated, " "); cut >= 0 && utf8.RuneCountInString(truncated[:cut]) > maxChars*6/10 {
		truncated = truncated[:cut]
	}
	return strings.TrimRight(truncated, " \t\n") + "..."
}

// dedupePreserve drops items whose normalized form was already seen.
func dedupePreserve(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := Normalize(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

// alphaWords returns lowercased words that start with a letter and continue
// with letters, digits or apostrophes.
func alphaWords(text string) []string {
	lowered := strings.ToLower(text)
	var words []string
	start := -1
	for i, r := range lowered {
		isLetter := r >= 'a' && r <= 'z'
		isTail := isLetter || (r >= '0' && r <= '9') || r == '\''
		switch {
		case start < 0 && isLetter:
			start = i
		case start >= 0 && !isTail:
			words = append(words, lowered[start:i])
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, lowered[start:])
	}
	return words
}

// extractJSON returns the span of text from the first open delimiter to the
// last close delimiter, or the trimmed text when there is no such span.
func extractJSON(text string, open, close byte) string {
	trimmed := strings.TrimSpace(text)
	start := strings.IndexByte(trimmed, open)
	end := strings.LastIndexByte(trimmed, close)
	if start < 0 || end < start {
		return trimmed
	}
	return trimmed[start : end+1]
}
