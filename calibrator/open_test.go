package calibrator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadData_Defaults(t *testing.T) {
	corpus, refmap, err := LoadData(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, 173, corpus.Len())
	assert.Equal(t, 26, refmap.Len())

	cfg := DefaultConfig()
	cfg.Corpus.StrictIDs = true
	_, _, err = LoadData(cfg, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestOpen_UsesConfiguredFiles(t *testing.T) {
	clearConfigEnv(t)
	cfg := DefaultConfig()
	cfg.Corpus.Path = writeFile(t, "corpus.csv", "text,value\nsocial pressure,185\nTokyo,205\n")
	cfg.ReferenceMap.Path = writeFile(t, "levels.yaml", "levels:\n  - {text: Love, value: 500}\n  - {text: Fear, value: 100}\n")

	svc, err := Open(cfg, nil)
	require.NoError(t, err)
	defer svc.Close()
	assert.Equal(t, 2, svc.Corpus().Len())
	assert.Equal(t, 2, svc.ReferenceMap().Len())
	assert.Equal(t, "hosted>local", svc.BackendName())

	res, err := svc.Run(context.Background(), "tokyo")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, res.Matches.IDs())
}

func TestOpen_ConfiguredCorpusColumns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.Path = writeFile(t, "corpus.csv", "ref;phrase;note;lvl\nA;social pressure;x;185\nB;Tokyo;y;205\n")
	cfg.Corpus.Columns = ColumnsConfig{ID: "ref", Text: "phrase", Value: "lvl", Delimiter: ";"}

	corpus, _, err := LoadData(cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 2, corpus.Len())
	e, ok := corpus.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, Entry{ID: "B", Text: "Tokyo", Value: 205}, e)

	cfg.Corpus.Columns.Delimiter = "::"
	_, _, err = LoadData(cfg, nil)
	assert.ErrorContains(t, err, "corpus columns")
}

func TestOpen_BadPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Corpus.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Open(cfg, nil)
	assert.ErrorContains(t, err, "load corpus")

	cfg = DefaultConfig()
	cfg.ReferenceMap.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Open(cfg, nil)
	assert.ErrorContains(t, err, "load reference map")
}
