package calibrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestService(t *testing.T, backends Backends, logger *zap.Logger) *Service {
	t.Helper()
	svc, err := NewService(DefaultConfig(), defaultCorpus(t), defaultRefMap(t), backends, logger)
	require.NoError(t, err)
	return svc
}

func stageNames(res Result) []string {
	names := make([]string, len(res.Trace))
	for i, st := range res.Trace {
		names[i] = st.Name
	}
	return names
}

func TestNewService_RequiresData(t *testing.T) {
	_, err := NewService(DefaultConfig(), nil, defaultRefMap(t), Backends{}, nil)
	assert.Error(t, err)
	_, err = NewService(DefaultConfig(), defaultCorpus(t), nil, Backends{}, nil)
	assert.Error(t, err)
}

func TestRun_EmptyStatement(t *testing.T) {
	svc := newTestService(t, Backends{}, nil)
	_, err := svc.Run(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyStatement)
}

func TestRun_ExactMatchStopsWithoutExternalCalls(t *testing.T) {
	hosted := &scriptedBackend{reply: "anything"}
	local := &scriptedBackend{reply: "anything"}
	svc := newTestService(t, Backends{Hosted: hosted, Local: local}, nil)

	res, err := svc.Run(context.Background(), "Social   Pressure!")
	require.NoError(t, err)
	assert.Equal(t, []string{StageExact}, stageNames(res))
	assert.Equal(t, []string{"1"}, res.Matches.IDs())
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 0, hosted.callCount())
	assert.Equal(t, 0, local.callCount())
}

func TestRun_NearExact(t *testing.T) {
	hosted := &scriptedBackend{reply: "anything"}
	svc := newTestService(t, Backends{Hosted: hosted}, nil)

	res, err := svc.Run(context.Background(), "social pressures")
	require.NoError(t, err)
	assert.Equal(t, []string{StageExact, StageNearExact}, stageNames(res))
	assert.Contains(t, res.Matches.IDs(), "1")
	assert.Equal(t, 0, hosted.callCount())
}

func TestRun_KeywordsBeforeReferenceMap(t *testing.T) {
	svc := newTestService(t, Backends{}, nil)

	res, err := svc.Run(context.Background(), "xyzzy qwerty")
	require.NoError(t, err)
	assert.Equal(t, []string{
		StageExact, StageNearExact, StageSimilarity, StageSuggestions, StageSecondary, StageTertiaryAndMap,
	}, stageNames(res))
	assert.Equal(t, []string{"xyzzy", "qwerty"}, res.SecondaryKeywords)
	assert.NotContains(t, res.TertiaryKeywords, "xyzzy")
	assert.NotContains(t, res.TertiaryKeywords, "qwerty")

	require.Equal(t, 1, res.Matches.Len())
	m := res.Matches.Matches()[0]
	assert.Equal(t, ReferenceMapMatch, m.Kind)

	last, ok := res.Stage(StageTertiaryAndMap)
	require.True(t, ok)
	assert.Equal(t, res.TertiaryKeywords, last.Keywords)
	assert.Equal(t, 1, last.Matches.Len())
}

func TestRun_EarlyReferenceMapIsTerminal(t *testing.T) {
	svc := newTestService(t, Backends{}, nil)
	svc.SetEarlyReferenceMap(true)
	assert.True(t, svc.Config().Pipeline.EarlyReferenceMap)

	res, err := svc.Run(context.Background(), "xyzzy qwerty")
	require.NoError(t, err)
	assert.Equal(t, []string{
		StageExact, StageNearExact, StageSimilarity, StageSuggestions, StageReferenceMap,
	}, stageNames(res))
	assert.Nil(t, res.SecondaryKeywords)
	require.Equal(t, 1, res.Matches.Len())
	assert.Equal(t, "The Absolute", res.Matches.Matches()[0].Entry.Text)
	assert.Equal(t, "default fallback (no overlap)", res.Matches.Matches()[0].Reason)
}

func TestRun_FailingBackendsDegradeWithOneNotice(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	hosted := &scriptedBackend{err: errors.New("HTTP error 401 from hosted API")}
	svc := newTestService(t, Backends{Hosted: hosted}, zap.New(core))

	for i := 0; i < 2; i++ {
		res, err := svc.Run(context.Background(), "xyzzy qwerty")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Matches.Len())
	}
	assert.Greater(t, hosted.callCount(), 1)
	assert.Equal(t, 1, logs.FilterMessage("keyword expansion disabled, using fallback keywords").Len())
	assert.Equal(t, 1, logs.FilterMessage("model suggestions unavailable, using heuristic suggestions").Len())
}

func TestRun_StatementSimilarity(t *testing.T) {
	c, err := NewCorpus([]Entry{
		{ID: "a", Text: "praying for others as an occupation", Value: 300},
		{ID: "b", Text: "latin cross", Value: 530},
	}, CorpusOptions{})
	require.NoError(t, err)
	svc, err := NewService(DefaultConfig(), c, defaultRefMap(t), Backends{}, nil)
	require.NoError(t, err)

	res, err := svc.Run(context.Background(), "praying for others daily")
	require.NoError(t, err)
	assert.Equal(t, []string{StageExact, StageNearExact, StageSimilarity}, stageNames(res))
	assert.Equal(t, []string{"a"}, res.Matches.IDs())
}

func TestService_Accessors(t *testing.T) {
	svc := newTestService(t, Backends{Hosted: &scriptedBackend{}}, nil)
	assert.Equal(t, "scripted", svc.BackendName())
	assert.Equal(t, 26, svc.ReferenceMap().Len())
	assert.Greater(t, svc.Corpus().Len(), 0)
	assert.NoError(t, svc.Close())

	cfg := svc.Config()
	cfg.Pipeline.EarlyReferenceMap = true
	assert.False(t, svc.Config().Pipeline.EarlyReferenceMap, "Config returns a copy")
}
