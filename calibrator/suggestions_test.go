package calibrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionCorpus(t *testing.T) *Corpus {
	t.Helper()
	c, err := NewCorpus([]Entry{
		{ID: "1", Text: "chess (board game)", Value: 400},
		{ID: "2", Text: "mindfulness", Value: 555},
		{ID: "3", Text: "latin cross", Value: 530},
	}, CorpusOptions{})
	require.NoError(t, err)
	return c
}

func TestSuggester_JSONKeepsGroundedConfidentEntries(t *testing.T) {
	gen := &scriptedBackend{reply: `Sure: [
		{"entry": "chess (board game)", "reason": "chess is named", "confidence": 0.9},
		{"entry": "latin cross", "reason": "unrelated", "confidence": 0.95},
		{"entry": "mindfulness", "reason": "chess needs focus", "confidence": "0.2"},
		{"entry": "not a corpus entry", "reason": "chess", "confidence": 1}
	]`}
	s := NewSuggester(suggestionCorpus(t), gen, 0.6, nil)

	got := s.Suggest(context.Background(), "I love playing chess")
	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{Name: "chess (board game)", Reason: "chess is named", Source: SourceModel}, got[0])

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "1. chess (board game) (calibration 400)")
}

func TestSuggester_LineFallback(t *testing.T) {
	gen := &scriptedBackend{reply: "chess (board game) - chess appears in both\nnone"}
	s := NewSuggester(suggestionCorpus(t), gen, 0.6, nil)

	got := s.Suggest(context.Background(), "I love playing chess")
	require.Len(t, got, 1)
	assert.Equal(t, "chess (board game)", got[0].Name)
	assert.Equal(t, "chess appears in both", got[0].Reason)
	assert.Equal(t, SourceModel, got[0].Source)
}

func TestSuggester_HeuristicOnly(t *testing.T) {
	s := NewSuggester(suggestionCorpus(t), nil, 0.6, nil)

	got := s.Suggest(context.Background(), "I love playing chess")
	require.Len(t, got, 1)
	assert.Equal(t, "chess (board game)", got[0].Name)
	assert.Equal(t, SourceHeuristic, got[0].Source)

	assert.Empty(t, s.Suggest(context.Background(), "xyzzy qwerty"))
}

func TestConfidenceOf(t *testing.T) {
	assert.Equal(t, 0.7, confidenceOf(0.7))
	assert.Equal(t, 0.4, confidenceOf(" 0.4 "))
	assert.Equal(t, 1.0, confidenceOf(true))
	assert.Equal(t, 0.0, confidenceOf("high"))
	assert.Equal(t, 0.0, confidenceOf(nil))
}
