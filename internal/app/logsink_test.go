package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yashubustudio/calibrator/calibrator"
)

func TestLogSinkKeepsNewestLines(t *testing.T) {
	sink := newLogSink(2)
	calls := 0
	sink.setOnWrite(func() { calls++ })

	n, err := sink.Write([]byte("one\r\ntwo\n\nthree\n"))
	assert.NoError(t, err)
	assert.Equal(t, len("one\r\ntwo\n\nthree\n"), n)
	assert.Equal(t, "two\nthree", sink.Text())
	assert.Equal(t, 1, calls)
}

func TestNewLoggerWritesToSink(t *testing.T) {
	sink := newLogSink(10)
	level := zap.NewAtomicLevel()
	setLogLevel(level, "info")
	logger := newLogger(sink, level)
	logger.Debug("hidden")
	logger.Info("visible")
	assert.Contains(t, sink.Text(), "visible")
	assert.NotContains(t, sink.Text(), "hidden")

	setLogLevel(level, "bogus")
	logger.Info("dropped")
	assert.NotContains(t, sink.Text(), "dropped")
	assert.Equal(t, zapcore.WarnLevel, level.Level())
}

func TestApplyLogLevelInPlace(t *testing.T) {
	sink := newLogSink(10)
	level := zap.NewAtomicLevel()
	setLogLevel(level, "warn")
	u := &uiState{logger: newLogger(sink, level), level: level, cfg: calibrator.DefaultConfig()}

	u.logger.Debug("before")
	next := u.cfg.Clone()
	next.Log.Level = "debug"
	assert.False(t, needsReopen(u.cfg, next))
	u.applyLogLevel(next.Log.Level)
	u.logger.Debug("after")

	assert.NotContains(t, sink.Text(), "before")
	assert.Contains(t, sink.Text(), "after")
}

func TestNeedsReopen(t *testing.T) {
	prev := calibrator.DefaultConfig()
	next := prev.Clone()
	assert.False(t, needsReopen(prev, next))

	next.Corpus.Columns.Candidates.Text = []string{"phrase"}
	assert.True(t, needsReopen(prev, next))

	next = prev.Clone()
	next.Pipeline.EarlyReferenceMap = !prev.Pipeline.EarlyReferenceMap
	assert.False(t, needsReopen(prev, next))
}
