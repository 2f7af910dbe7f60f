package calibrator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedBackend answers every prompt with reply, or err when set, and
// counts calls.
type scriptedBackend struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
}

func (s *scriptedBackend) Name() string { return "scripted" }

func (s *scriptedBackend) Complete(_ context.Context, prompt string, _ int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *scriptedBackend) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func defaultCorpus(t *testing.T) *Corpus {
	t.Helper()
	c, err := NewCorpus(DefaultEntries(), CorpusOptions{})
	require.NoError(t, err)
	return c
}

func defaultRefMap(t *testing.T) *ReferenceMap {
	t.Helper()
	m, err := NewReferenceMap(DefaultLevels())
	require.NoError(t, err)
	return m
}

func matchesWithValues(values ...float64) []Match {
	out := make([]Match, len(values))
	for i, v := range values {
		out[i] = Match{Entry: Entry{ID: string(rune('a' + i)), Text: "entry", Value: v, Kind: KindStandard}, Kind: StandardMatch}
	}
	return out
}
