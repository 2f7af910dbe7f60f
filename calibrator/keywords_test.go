package calibrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterKeywords_DropsStopwordsShortAndDescriptors(t *testing.T) {
	raw := "Keywords: faith, the, ok, comma-separated list, belief"
	assert.Equal(t, []string{"faith", "belief"}, FilterKeywords(ParseKeywords(raw)))
}

func TestParseKeywords(t *testing.T) {
	assert.Equal(t, []string{"hope", "charity", "grace"}, ParseKeywords("1. hope\n2) charity\n- grace"))
	assert.Equal(t, []string{"alpha", "beta"}, ParseKeywords("alpha; beta"))
	assert.Nil(t, ParseKeywords("   "))
}

func TestFilterKeywords(t *testing.T) {
	got := FilterKeywords([]string{
		`"Courage"`, "courage", "self-respect", "a very long phrase of words", "x1y2", "Respond here", "hope!!",
	})
	assert.Equal(t, []string{"Courage", "self-respect", "hope"}, got)
}

func TestExpander_FallsBackToStatementWords(t *testing.T) {
	e := NewExpander(nil, nil)
	got := e.Expand(context.Background(), "The quick brown fox")
	assert.Equal(t, []string{"quick", "brown", "fox"}, got)
}

func TestExpander_GenericFillerForWordlessStatements(t *testing.T) {
	e := NewExpander(&scriptedBackend{err: errors.New("offline")}, nil)
	got := e.Expand(context.Background(), "42 !!")
	assert.Equal(t, genericFallbacks, got)
}

func TestExpander_TopsUpShortModelAnswers(t *testing.T) {
	gen := &scriptedBackend{reply: "Keywords: faith, the, ok, comma-separated list, belief"}
	e := NewExpander(gen, nil)
	got := e.Expand(context.Background(), "trust in providence")
	assert.Equal(t, []string{"faith", "belief", "trust", "providence"}, got)
	assert.Equal(t, 1, gen.callCount())
}

func TestExpander_TruncatesToCount(t *testing.T) {
	gen := &scriptedBackend{reply: "alpha, bravo, charlie, delta, echo, foxtrot, golf, hotel, india, juliet, kilo, lima"}
	e := NewExpander(gen, nil)
	got := e.Expand(context.Background(), "phonetic alphabet")
	assert.Len(t, got, secondaryCount)
	assert.Equal(t, "alpha", got[0])
}

func TestExpandUnmatched_NeverRepeatsInputTerms(t *testing.T) {
	terms := []string{"faith", "Trust", "holy spirit"}
	gen := &scriptedBackend{reply: "FAITH, hope, trust, Holy Spirit, charity"}
	e := NewExpander(gen, nil)

	got := e.ExpandUnmatched(context.Background(), terms)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), tertiaryCount)
	blocked := map[string]bool{}
	for _, term := range terms {
		blocked[Normalize(term)] = true
	}
	for _, k := range got {
		assert.False(t, blocked[Normalize(k)], "reintroduced %q", k)
	}
	assert.Contains(t, got, "hope")
}

func TestExpandUnmatched_Fallback(t *testing.T) {
	e := NewExpander(nil, nil)
	got := e.ExpandUnmatched(context.Background(), []string{"xyzzy", "qwerty"})
	assert.NotContains(t, got, "xyzzy")
	assert.NotContains(t, got, "qwerty")
	assert.Equal(t, tertiaryDefaults, got)

	assert.Nil(t, e.ExpandUnmatched(context.Background(), nil))
}
