package calibrator

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// StatementTable is a delimited statements file with its statement column
// resolved.
type StatementTable struct {
	// Header is the header row, or nil when the file has none.
	Header []string
	// Rows are the data rows.
	Rows       [][]string
	TextColumn int
}

// ReadStatementTable parses delimited statements. The statement column is
// picked like a corpus text column: opts.TextColumn, then the text
// candidates, then the first column.
func ReadStatementTable(r io.Reader, comma rune, opts ParseOptions) (*StatementTable, error) {
	rows, err := readDelimited(r, comma)
	if err != nil {
		return nil, err
	}
	header := rows[0]
	if opts.Header == HeaderAbsent {
		header = nil
	}
	idx, matched, err := pickColumn(header, rowWidth(rows), opts.TextColumn, opts.Candidates.withDefaults().Text)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		idx = 0
	}
	t := &StatementTable{Rows: rows, TextColumn: idx}
	if skipFirstRow(opts.Header, matched) {
		t.Header = rows[0]
		t.Rows = rows[1:]
	}
	return t, nil
}

// Width is the widest row, header included.
func (t *StatementTable) Width() int {
	width := rowWidth(t.Rows)
	if len(t.Header) > width {
		width = len(t.Header)
	}
	return width
}

// Column returns the non-empty cells of column idx.
func (t *StatementTable) Column(idx int) []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v := cellAt(row, idx); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Statements returns the statement column.
func (t *StatementTable) Statements() []string { return t.Column(t.TextColumn) }

// ReadStatementFile reads a statements file called name. CSV/TSV files (or
// any file when opts.Delimiter is set) keep their columns; other files give
// one single-cell row per non-blank line.
func ReadStatementFile(r io.Reader, name string, opts ParseOptions) (*StatementTable, error) {
	comma, ok := opts.delimiterFor(strings.ToLower(filepath.Ext(name)))
	if !ok {
		lines, err := readStatementLines(r)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, len(lines))
		for i, line := range lines {
			rows[i] = []string{line}
		}
		return &StatementTable{Rows: rows}, nil
	}
	t, err := ReadStatementTable(r, comma, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(name), err)
	}
	return t, nil
}

// ReadStatements returns the statements of a file called name, as picked by
// ReadStatementFile.
func ReadStatements(r io.Reader, name string, opts ParseOptions) ([]string, error) {
	t, err := ReadStatementFile(r, name, opts)
	if err != nil {
		return nil, err
	}
	return t.Statements(), nil
}

func readStatementLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	var lines []string
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read statements: %w", err)
	}
	return lines, nil
}
