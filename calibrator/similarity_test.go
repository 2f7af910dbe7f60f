package calibrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharRatio(t *testing.T) {
	assert.Equal(t, 1.0, CharRatio("", ""))
	assert.Equal(t, 0.0, CharRatio("abc", ""))
	assert.Equal(t, 0.0, CharRatio("abc", "xyz"))
	assert.Equal(t, 1.0, CharRatio("same", "same"))
	assert.InDelta(t, 0.75, CharRatio("abcd", "bcde"), 1e-9)
	assert.InDelta(t, 0.9, CharRatio("abcdefghij", "abcdefghik"), 1e-9)
}

func TestCharRatio_LongInputsStayBounded(t *testing.T) {
	a := strings.Repeat("ab", 150)
	b := strings.Repeat("ab", 140) + strings.Repeat("c", 20)
	r := CharRatio(a, b)
	assert.GreaterOrEqual(t, r, 0.0)
	assert.LessOrEqual(t, r, 1.0)
}

func TestCloseMatch_TokenOverlap(t *testing.T) {
	assert.True(t, CloseMatch("faith in god", "faith", Tokenize("faith"), 1))
	assert.False(t, CloseMatch("", "faith", nil, 1))
	assert.False(t, CloseMatch("faith", "", nil, 1))
}

func TestCloseMatch_NegationGate(t *testing.T) {
	// Heavy lexical overlap is not enough when polarity differs.
	assert.False(t, CloseMatch("ban guns", "guns", Tokenize("guns"), 1))
	assert.False(t, CloseMatch("guns", "ban guns", Tokenize("ban guns"), 1))
	assert.True(t, CloseMatch("ban guns", "banning guns", Tokenize("banning guns"), 1))
}

func TestCloseMatch_IsAsymmetric(t *testing.T) {
	// candidateTokens belongs to the candidate, so swapping arguments can
	// change the outcome.
	assert.True(t, CloseMatch("faith", "zzzzz", newSet("faith"), 1))
	assert.False(t, CloseMatch("zzzzz", "faith", Tokenize("faith"), 1))
}

func TestCloseMatch_CandidateTokensIgnoreGenericFiller(t *testing.T) {
	assert.False(t, CloseMatch("wxyz world", "qrst", newSet("world"), 1))
}

func TestCloseMatch_RatioFallback(t *testing.T) {
	assert.True(t, CloseMatch("abcdefghij", "abcdefghik", nil, 1))
	assert.False(t, CloseMatch("abcd", "abce", nil, 1), "short strings skip the ratio")
}

func TestMinOverlapFor(t *testing.T) {
	assert.Equal(t, 1, MinOverlapFor(1, 5, 1, 5))
	assert.Equal(t, 1, MinOverlapFor(5, 1, 5, 1))
	assert.Equal(t, 1, MinOverlapFor(3, 3, 2, 5))
	assert.Equal(t, 2, MinOverlapFor(3, 3, 3, 4))
}
