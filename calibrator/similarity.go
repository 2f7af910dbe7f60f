package calibrator

import "unicode/utf8"

// closeRatioThreshold is the character ratio two long strings need when they
// share too few tokens.
const closeRatioThreshold = 0.85

// minRatioLength is the shortest string for which the character ratio is
// consulted at all.
const minRatioLength = 5

// CloseMatch reports whether term and candidate are similar enough to count
// as a match. Token overlap decides first; candidateTokens, when supplied, is
// retried without generic filler; the character ratio is a last resort for
// long strings. Texts that disagree on negation never match.
//
// The check is not symmetric: candidateTokens belongs to the candidate.
func CloseMatch(term, candidate string, candidateTokens TokenSet, minOverlap int) bool {
	if term == "" || candidate == "" {
		return false
	}
	if HasNegation(term) != HasNegation(candidate) {
		return false
	}
	termTokens := Tokenize(term)
	if termTokens.Overlap(Tokenize(candidate)) >= minOverlap {
		return true
	}
	if len(candidateTokens) > 0 {
		if candidateTokens.Without(bannedGeneric).Overlap(termTokens) >= minOverlap {
			return true
		}
	}
	if utf8.RuneCountInString(term) < minRatioLength || utf8.RuneCountInString(candidate) < minRatioLength {
		return false
	}
	return CharRatio(term, candidate) >= closeRatioThreshold
}

// MinOverlapFor returns the token overlap required between a term and a
// candidate. Multi-word pairs need two shared tokens unless either side has
// at most two tokens.
func MinOverlapFor(termWords, candidateWords, termTokens, candidateTokens int) int {
	if termWords <= 1 || candidateWords <= 1 {
		return 1
	}
	if min(termTokens, candidateTokens) <= 2 {
		return 1
	}
	return 2
}
