package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/calibrator/calibrator"
)

func runCLI(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "CALIBRATOR_HOSTED_APIKEY"} {
		t.Setenv(key, "")
	}
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	configPath := filepath.Join(t.TempDir(), "config.json")
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyze_ExactStatement(t *testing.T) {
	out, _, err := runCLI(t, []string{"analyze", "social", "pressure"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Lookup Results ===")
	assert.Contains(t, out, "  => social pressure (value=185, kind=standard)")
	assert.Contains(t, out, "Insufficient data: 1 match(es) between (185 - 185)")
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"analyze", "--json", "Tokyo"}, "")
	require.NoError(t, err)

	var res struct {
		RunID     string `json:"runId"`
		Statement string `json:"statement"`
		Matches   []struct {
			Entry calibrator.Entry `json:"entry"`
			Kind  string           `json:"kind"`
		} `json:"matches"`
		Trace []struct {
			Name string `json:"name"`
		} `json:"trace"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "Tokyo", res.Statement)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "4", res.Matches[0].Entry.ID)
	assert.Equal(t, "standard", res.Matches[0].Kind)
	require.Len(t, res.Trace, 1)
	assert.Equal(t, calibrator.StageExact, res.Trace[0].Name)
}

func TestAnalyze_ReadsStatementsFromStdin(t *testing.T) {
	out, _, err := runCLI(t, []string{"analyze"}, "Tokyo\n\n  social pressure  \n")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "=== Lookup Results ==="))
	assert.Contains(t, out, "Tokyo (value=205, kind=standard)")

	_, _, err = runCLI(t, []string{"analyze"}, "\n  \n")
	assert.ErrorIs(t, err, calibrator.ErrEmptyStatement)
}

func TestAnalyze_StageOrdering(t *testing.T) {
	out, _, err := runCLI(t, []string{"analyze", "xyzzy qwerty"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Secondary keywords:\n  Keywords: xyzzy, qwerty")
	assert.Contains(t, out, "Tertiary keywords + reference map:")
	assert.Contains(t, out, "Reference Map — ")

	out, _, err = runCLI(t, []string{"analyze", "--early-refmap", "xyzzy qwerty"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Reference map fallback:\n  - Reference Map — The Absolute (level 1000) — default fallback (no overlap)")
	assert.NotContains(t, out, "Secondary keywords:")
}

func TestCorpusList(t *testing.T) {
	out, _, err := runCLI(t, []string{"corpus", "list", "--filter", "TOKYO"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Tokyo")
	assert.Contains(t, out, "1 entries")

	out, _, err = runCLI(t, []string{"corpus", "list", "--json"}, "")
	require.NoError(t, err)
	var entries []calibrator.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 173)
}

func TestCorpusExport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "corpus.db")
	out, _, err := runCLI(t, []string{"corpus", "export", "--sqlite", target}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 173 entries")

	entries, err := calibrator.LoadCorpusFile(target)
	require.NoError(t, err)
	assert.Len(t, entries, 173)

	_, _, err = runCLI(t, []string{"corpus", "export"}, "")
	assert.Error(t, err)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCorpusFlags_NonDefaultHeaders(t *testing.T) {
	path := writeTempFile(t, "levels.csv", "ref;phrase;lvl\nA1;social pressure;185\nB2;Tokyo;205\n")
	columns := []string{"--corpus", path, "--id-column", "ref", "--text-column", "phrase", "--value-column", "lvl", "--delimiter", "semicolon"}

	out, _, err := runCLI(t, append([]string{"corpus", "list", "--json"}, columns...), "")
	require.NoError(t, err)
	var entries []calibrator.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []calibrator.Entry{
		{ID: "A1", Text: "social pressure", Value: 185},
		{ID: "B2", Text: "Tokyo", Value: 205},
	}, entries)

	out, _, err = runCLI(t, append([]string{"analyze", "--json"}, append(columns, "Tokyo")...), "")
	require.NoError(t, err)
	var res struct {
		Matches []struct {
			Entry calibrator.Entry `json:"entry"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "B2", res.Matches[0].Entry.ID)

	target := filepath.Join(t.TempDir(), "corpus.db")
	out, _, err = runCLI(t, append([]string{"corpus", "export", "--sqlite", target}, columns...), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 entries")

	_, _, err = runCLI(t, []string{"corpus", "list", "--corpus", path, "--delimiter", "semicolon"}, "")
	assert.ErrorContains(t, err, `invalid value "phrase"`)
	_, _, err = runCLI(t, append([]string{"corpus", "list", "--header", "sometimes"}, columns...), "")
	assert.ErrorContains(t, err, "invalid header mode")
}

func TestAnalyze_StatementsFileWithTrace(t *testing.T) {
	path := writeTempFile(t, "statements.csv", "id,statement\n1,Tokyo\n2,social pressure\n")
	out, _, err := runCLI(t, []string{"analyze", "--file", path, "--trace"}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "=== Lookup Results ==="))
	assert.Equal(t, 2, strings.Count(out, "│ Direct statement"))
	assert.Contains(t, out, "205")

	path = writeTempFile(t, "statements.csv", "a,b\nx,Tokyo\n")
	out, _, err = runCLI(t, []string{"analyze", "--file", path, "--statement-column", "b"}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "=== Lookup Results ==="))
	assert.Contains(t, out, "Tokyo (value=205, kind=standard)")

	_, _, err = runCLI(t, []string{"analyze", "--file", path, "Tokyo"}, "")
	assert.ErrorContains(t, err, "not both")
}

func TestTraceTable(t *testing.T) {
	tokyo := calibrator.Match{Entry: calibrator.Entry{ID: "4", Text: "Tokyo", Value: 205}, Kind: calibrator.StandardMatch}
	res := calibrator.Result{
		Matches: calibrator.NewMatchSet(tokyo),
		Trace: []calibrator.Stage{
			{Name: calibrator.StageExact, Matches: calibrator.NewMatchSet()},
			{Name: calibrator.StageSecondary, Matches: calibrator.NewMatchSet(tokyo), Keywords: []string{"tokyo", "city"}},
		},
	}
	out := traceTable(res)
	assert.Contains(t, out, "│ Direct statement")
	assert.Contains(t, out, "tokyo, city")
	assert.Contains(t, out, "205")

	out = traceTable(calibrator.Result{Trace: []calibrator.Stage{{Name: calibrator.StageExact}}})
	assert.Contains(t, out, "│ Direct statement")
	assert.NotContains(t, strings.ToLower(out), "average")
}

func TestLevels(t *testing.T) {
	out, _, err := runCLI(t, []string{"levels"}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "The Absolute")
	assert.Contains(t, out, "Spiritual Darkness")

	out, _, err = runCLI(t, []string{"levels", "--json"}, "")
	require.NoError(t, err)
	var levels []calibrator.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &levels))
	require.Len(t, levels, 26)
	assert.Equal(t, 1000.0, levels[0].Value)
}

func TestConfigInitAndShow(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.json")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration")
	_, err = os.Stat(target)
	require.NoError(t, err)

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	assert.ErrorContains(t, err, "already exists")
	_, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "")
	assert.NoError(t, err)

	out, _, err = runCLI(t, []string{"config", "show"}, "")
	require.NoError(t, err)
	var cfg calibrator.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, calibrator.DefaultConfig().Hosted.Model, cfg.Hosted.Model)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "bogus")
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
