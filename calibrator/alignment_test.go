package calibrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicAligned(t *testing.T) {
	assert.True(t, HeuristicAligned("faith in god", "faith"))
	assert.False(t, HeuristicAligned("ban guns", "guns"), "polarity differs")
	assert.False(t, HeuristicAligned("xyzzy qwerty", "mindfulness"))
	assert.False(t, HeuristicAligned("", "mindfulness"))
}

func TestAlignmentGate_ModelCannotOverruleHeuristic(t *testing.T) {
	gen := &scriptedBackend{reply: `{"related": true, "reason": "both about guns"}`}
	gate := NewAlignmentGate(gen, nil)
	assert.False(t, gate.Aligned(context.Background(), "ban guns", "guns"))
	assert.False(t, gate.Aligned(context.Background(), "xyzzy qwerty", "mindfulness"))
}

func TestAlignmentGate_ModelCanVeto(t *testing.T) {
	gen := &scriptedBackend{reply: `{"related": false}`}
	gate := NewAlignmentGate(gen, nil)
	assert.False(t, gate.Aligned(context.Background(), "faith in god", "faith"))
}

func TestAlignmentGate_AgreementAndFallback(t *testing.T) {
	gate := NewAlignmentGate(&scriptedBackend{reply: `{"related": "True"}`}, nil)
	assert.True(t, gate.Aligned(context.Background(), "faith in god", "faith"))

	gate = NewAlignmentGate(&scriptedBackend{reply: "I cannot answer that"}, nil)
	assert.True(t, gate.Aligned(context.Background(), "faith in god", "faith"), "unparsable judgment leaves the heuristic")

	gate = NewAlignmentGate(nil, nil)
	assert.True(t, gate.Aligned(context.Background(), "faith in god", "faith"))
}

func TestAlignmentGate_Memoizes(t *testing.T) {
	gen := &scriptedBackend{reply: `{"related": true}`}
	gate := NewAlignmentGate(gen, nil)

	first := gate.Aligned(context.Background(), "Faith in God", "faith")
	second := gate.Aligned(context.Background(), "  faith IN god!", "faith")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.callCount(), "same normalized statement hits the cache")
	assert.Equal(t, 1, gate.cache.len())

	gate.Aligned(context.Background(), "faith in god", "Faith")
	assert.Equal(t, 2, gen.callCount(), "entry text is part of the key")
}

func TestParseRelated(t *testing.T) {
	v, ok := parseRelated(`Answer: {"related": true, "reason": "x"}`)
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = parseRelated(`{"related": " false "}`)
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = parseRelated(`{"related": 3}`)
	assert.False(t, ok)
	_, ok = parseRelated("nope")
	assert.False(t, ok)
}
