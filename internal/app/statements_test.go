package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/calibrator/calibrator"
)

func TestColumnChoices(t *testing.T) {
	table, err := calibrator.ReadStatementFile(strings.NewReader("\ufeffid,\n1,a statement that is rather long\n2\n"), "input.csv", calibrator.ParseOptions{Header: calibrator.HeaderPresent})
	require.NoError(t, err)
	choices := columnChoices(table)
	require.Len(t, choices, 2)
	assert.Equal(t, "[1] id (e.g. 1)", choices[0].Label)
	assert.Equal(t, "[2] Column 2 (e.g. a statement that is …)", choices[1].Label)
	assert.Equal(t, 1, choices[1].Index)
}

func TestColumnChoices_Headerless(t *testing.T) {
	table, err := calibrator.ReadStatementFile(strings.NewReader("Tokyo\tx\n"), "input.tsv", calibrator.ParseOptions{})
	require.NoError(t, err)
	choices := columnChoices(table)
	require.Len(t, choices, 2)
	assert.Equal(t, "[1] Column 1 (e.g. Tokyo)", choices[0].Label)
}

func TestStatementOptionsUseConfiguredTextColumns(t *testing.T) {
	cfg := calibrator.DefaultConfig()
	cfg.Corpus.Columns.Candidates.Text = []string{"phrase"}

	table, err := calibrator.ReadStatementFile(strings.NewReader("id,phrase\n1,Tokyo\n"), "input.csv", statementOptions(cfg))
	require.NoError(t, err)
	assert.Equal(t, 1, table.TextColumn)
	assert.Equal(t, []string{"Tokyo"}, table.Statements())
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "abc…", truncateText("abcdef", 3))
}
