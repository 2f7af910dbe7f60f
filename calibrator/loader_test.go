package calibrator

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCorpusFile_YAMLSequence(t *testing.T) {
	path := writeFile(t, "corpus.yaml", `
- id: "1"
  text: social pressure
  value: 185
- text: latin cross
  value: 530
  kind: standard
`)
	entries, err := LoadCorpusFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{ID: "1", Text: "social pressure", Value: 185}, entries[0])
	assert.Equal(t, "2", entries[1].ID, "missing ids take the row number")
	assert.Equal(t, KindStandard, entries[1].Kind)
}

func TestLoadCorpusFile_YAMLDocument(t *testing.T) {
	path := writeFile(t, "corpus.yml", `
entries:
  - {id: a, text: mindfulness, value: 555}
`)
	entries, err := LoadCorpusFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: "a", Text: "mindfulness", Value: 555}}, entries)
}

func TestLoadCorpusFile_JSON(t *testing.T) {
	path := writeFile(t, "corpus.json", `[{"id": "x", "text": "Tokyo", "value": 205}]`)
	entries, err := LoadCorpusFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: "x", Text: "Tokyo", Value: 205}}, entries)

	path = writeFile(t, "levels.json", `{"levels": [{"text": "Love", "value": 500}]}`)
	levels, err := LoadReferenceMapFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Text: "Love", Value: 500}}, levels)
}

func TestLoadCorpusFile_CSVWithHeader(t *testing.T) {
	path := writeFile(t, "corpus.csv", "\ufeffID,Statement,Calibration\n7,\"chess (board game)\",400\n8,,10\n9,Tokyo,205\n")
	entries, err := LoadCorpusFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{ID: "7", Text: "chess (board game)", Value: 400},
		{ID: "9", Text: "Tokyo", Value: 205},
	}, entries)
}

func TestLoadCorpusFile_CSVHeaderless(t *testing.T) {
	path := writeFile(t, "corpus.csv", "social pressure,185\nTokyo,205\n")
	entries, err := LoadCorpusFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{ID: "1", Text: "social pressure", Value: 185},
		{ID: "2", Text: "Tokyo", Value: 205},
	}, entries)
}

func TestLoadCorpusFile_TSVExplicitColumns(t *testing.T) {
	path := writeFile(t, "corpus.tsv", "score\tlabel\tnote\n400\tchess\tgame\n")
	entries, err := LoadCorpusFileWithOptions(path, ParseOptions{TextColumn: "label", ValueColumn: "#1"})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: "1", Text: "chess", Value: 400}}, entries)

	_, err = LoadCorpusFileWithOptions(path, ParseOptions{TextColumn: "#9"})
	assert.Error(t, err)
	_, err = LoadCorpusFileWithOptions(path, ParseOptions{TextColumn: "missing"})
	assert.Error(t, err)
}

func TestLoadCorpusFile_Errors(t *testing.T) {
	_, err := LoadCorpusFile(writeFile(t, "corpus.csv", "text\nonly text\n"))
	assert.ErrorContains(t, err, "value column")

	_, err = LoadCorpusFile(writeFile(t, "corpus.csv", "text,value\nTokyo,high\n"))
	assert.ErrorContains(t, err, "invalid value")

	_, err = LoadCorpusFile(writeFile(t, "corpus.txt", "Tokyo"))
	assert.ErrorContains(t, err, "unsupported")

	_, err = LoadCorpusFile(writeFile(t, "corpus.json", "[]"))
	assert.ErrorContains(t, err, "no entries")

	_, err = LoadCorpusFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCorpusSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "corpus.db")
	want := []Entry{
		{ID: "1", Text: "social pressure", Value: 185, Kind: KindStandard},
		{ID: "2", Text: "Tokyo", Value: 205, Kind: KindStandard},
	}
	require.NoError(t, WriteCorpusSQLite(path, want))
	require.NoError(t, WriteCorpusSQLite(path, want), "existing files are replaced")

	got, err := LoadCorpusFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = LoadReferenceMapFile(path)
	assert.Error(t, err, "no levels table")
}

func TestLoadReferenceMapFile_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE levels (id TEXT, text TEXT NOT NULL, value REAL NOT NULL, kind TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO levels (id, text, value, kind) VALUES (NULL, 'Love', 500, NULL), ('top', 'The Absolute', 1000, 'standard')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	levels, err := LoadReferenceMapFile(path)
	require.NoError(t, err)
	m, err := NewReferenceMap(levels)
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "level_500"}, []string{m.Levels()[0].ID, m.Levels()[1].ID})
}

func TestLoadCorpusFileWithOptions_CustomCandidates(t *testing.T) {
	path := writeFile(t, "corpus.csv", "phrase,value\nTokyo,205\n")

	entries, err := LoadCorpusFileWithOptions(path, ParseOptions{
		Candidates: ColumnCandidates{Text: []string{"phrase"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Text: "Tokyo", Value: 205}}, entries)

	_, err = LoadCorpusFile(path)
	assert.ErrorContains(t, err, "no usable text column")
}

func TestLoadCorpusFileWithOptions_HeaderModes(t *testing.T) {
	path := writeFile(t, "corpus.csv", "Tokyo,205\nsocial pressure,185\n")

	entries, err := LoadCorpusFileWithOptions(path, ParseOptions{Header: HeaderPresent})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Text: "social pressure", Value: 185}}, entries)

	path = writeFile(t, "corpus.csv", "text,value\n")
	_, err = LoadCorpusFileWithOptions(path, ParseOptions{Header: HeaderAbsent})
	assert.ErrorContains(t, err, `invalid value "value"`)

	path = writeFile(t, "corpus.csv", "x1,Tokyo,205\n")
	entries, err = LoadCorpusFileWithOptions(path, ParseOptions{
		IDColumn: "#1", TextColumn: "#2", ValueColumn: "#3", Header: HeaderAbsent,
	})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{ID: "x1", Text: "Tokyo", Value: 205}}, entries)
}

func TestLoadCorpusFileWithOptions_Delimiter(t *testing.T) {
	path := writeFile(t, "corpus.csv", "phrase;score\nTokyo;205\n")

	entries, err := LoadCorpusFileWithOptions(path, ParseOptions{
		TextColumn: "phrase", ValueColumn: "score", Delimiter: ';',
	})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Text: "Tokyo", Value: 205}}, entries)

	path = writeFile(t, "corpus.txt", "text|value\nTokyo|205\n")
	entries, err = LoadCorpusFileWithOptions(path, ParseOptions{Delimiter: '|'})
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Text: "Tokyo", Value: 205}}, entries)
}

func TestLoadCorpusFileWithOptions_ColumnErrors(t *testing.T) {
	path := writeFile(t, "corpus.csv", "text,value\nTokyo,205\n")

	_, err := LoadCorpusFileWithOptions(path, ParseOptions{TextColumn: "phrase"})
	assert.ErrorContains(t, err, `column "phrase" not found`)
	_, err = LoadCorpusFileWithOptions(path, ParseOptions{ValueColumn: "#3"})
	assert.ErrorContains(t, err, "out of range")
	_, err = LoadCorpusFileWithOptions(path, ParseOptions{ValueColumn: "#0"})
	assert.ErrorContains(t, err, "1-based")
}
