package calibrator

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

const (
	corpusTable = "entries"
	levelsTable = "levels"
)

// ParseOptions chooses how CSV/TSV columns map to entry fields. Columns are
// header names or 1-based "#n" positions; empty columns are detected from
// Candidates.
type ParseOptions struct {
	IDColumn    string
	TextColumn  string
	ValueColumn string
	KindColumn  string
	Candidates  ColumnCandidates
	// Delimiter overrides the extension's delimiter and reads any non
	// YAML/JSON/SQLite file as delimited; 0 keeps the extension default.
	Delimiter rune
	Header    HeaderMode
}

func (o ParseOptions) delimiterFor(ext string) (rune, bool) {
	if o.Delimiter != 0 {
		return o.Delimiter, true
	}
	switch ext {
	case ".csv":
		return ',', true
	case ".tsv":
		return '\t', true
	}
	return 0, false
}

// LoadCorpusFile reads corpus entries from a YAML, JSON, CSV, TSV or SQLite
// file. SQLite files must hold an entries(id, text, value, kind) table.
func LoadCorpusFile(path string) ([]Entry, error) {
	return LoadCorpusFileWithOptions(path, ParseOptions{})
}

// LoadCorpusFileWithOptions is LoadCorpusFile with explicit CSV column choices.
func LoadCorpusFileWithOptions(path string, opts ParseOptions) ([]Entry, error) {
	entries, err := loadEntries(path, corpusTable, opts)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if strings.TrimSpace(entries[i].ID) == "" {
			entries[i].ID = strconv.Itoa(i + 1)
		}
	}
	return entries, nil
}

// LoadReferenceMapFile reads reference-map levels from the same formats as
// LoadCorpusFile; SQLite files must hold a levels table.
func LoadReferenceMapFile(path string) ([]Entry, error) {
	return loadEntries(path, levelsTable, ParseOptions{})
}

func loadEntries(path, table string, opts ParseOptions) ([]Entry, error) {
	var (
		entries []Entry
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		entries, err = parseYAMLEntries(path)
	case ".json":
		entries, err = parseJSONEntries(path)
	case ".csv", ".tsv":
		comma, _ := opts.delimiterFor(ext)
		entries, err = parseDelimitedEntries(path, comma, opts)
	case ".db", ".sqlite", ".sqlite3":
		entries, err = readSQLiteEntries(path, table)
	default:
		comma, ok := opts.delimiterFor(ext)
		if !ok {
			return nil, fmt.Errorf("unsupported entry file type %q", ext)
		}
		entries, err = parseDelimitedEntries(path, comma, opts)
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries found in %s", filepath.Base(path))
	}
	return entries, nil
}

// entryFile is the document form of YAML and JSON files; a bare list of
// entries is accepted too.
type entryFile struct {
	Entries []Entry `yaml:"entries" json:"entries"`
	Levels  []Entry `yaml:"levels" json:"levels"`
}

func (f entryFile) all() []Entry {
	return append(append([]Entry(nil), f.Entries...), f.Levels...)
}

func parseYAMLEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var entries []Entry
		if err := doc.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return entries, nil
	}
	var file entryFile
	if err := doc.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return file.all(), nil
}

func parseJSONEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
		}
		return entries, nil
	}
	var file entryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return file.all(), nil
}

func parseDelimitedEntries(path string, comma rune, opts ParseOptions) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	rows, err := readDelimited(f, comma)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	cols, skipHeader, err := resolveEntryColumns(rows[0], rowWidth(rows), opts)
	if err != nil {
		return nil, err
	}
	start := 0
	if skipHeader {
		start = 1
	}
	entries := make([]Entry, 0, len(rows)-start)
	for n, row := range rows[start:] {
		text := cellAt(row, cols.text)
		if text == "" {
			continue
		}
		raw := cellAt(row, cols.value)
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid value %q", filepath.Base(path), n+start+1, raw)
		}
		entries = append(entries, Entry{
			ID:    cellAt(row, cols.id),
			Text:  text,
			Value: value,
			Kind:  Kind(cellAt(row, cols.kind)),
		})
	}
	return entries, nil
}

// readDelimited returns the cleaned rows of a delimited file; it fails on an
// empty file.
func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}
	for _, row := range rows {
		for i := range row {
			row[i] = cleanCell(row[i])
		}
	}
	return rows, nil
}

func rowWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

type entryColumns struct {
	id, text, value, kind int
}

// resolveEntryColumns maps the first row to entry fields. Without a matching
// header the file is read as text,value rows.
func resolveEntryColumns(first []string, width int, opts ParseOptions) (entryColumns, bool, error) {
	candidates := opts.Candidates.withDefaults()
	header := first
	if opts.Header == HeaderAbsent {
		header = nil
	}
	cols := entryColumns{id: -1, text: -1, value: -1, kind: -1}
	fromHeader := false
	pick := func(dst *int, explicit string, names []string) error {
		idx, matched, err := pickColumn(header, width, explicit, names)
		if err != nil {
			return err
		}
		*dst = idx
		fromHeader = fromHeader || matched
		return nil
	}
	if err := pick(&cols.id, opts.IDColumn, candidates.ID); err != nil {
		return cols, false, err
	}
	if err := pick(&cols.text, opts.TextColumn, candidates.Text); err != nil {
		return cols, false, err
	}
	if err := pick(&cols.value, opts.ValueColumn, candidates.Value); err != nil {
		return cols, false, err
	}
	if err := pick(&cols.kind, opts.KindColumn, candidates.Kind); err != nil {
		return cols, false, err
	}
	if !fromHeader {
		if cols.text < 0 {
			cols.text = 0
		}
		if cols.value < 0 && width > 1 {
			cols.value = 1
		}
	}
	if cols.text < 0 {
		return cols, false, errors.New("no usable text column found")
	}
	if cols.value < 0 {
		return cols, false, errors.New("no usable value column found")
	}
	return cols, skipFirstRow(opts.Header, fromHeader), nil
}

func skipFirstRow(mode HeaderMode, matched bool) bool {
	switch mode {
	case HeaderPresent:
		return true
	case HeaderAbsent:
		return false
	}
	return matched
}

// pickColumn resolves an explicit column or the first header cell matching
// candidates. A nil header only accepts "#n" positions.
func pickColumn(header []string, width int, explicit string, candidates []string) (int, bool, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return matchExplicitColumn(header, width, explicit)
	}
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i, true, nil
			}
		}
	}
	return -1, false, nil
}

func matchExplicitColumn(header []string, width int, explicit string) (int, bool, error) {
	for i, col := range header {
		if strings.EqualFold(col, explicit) {
			return i, true, nil
		}
	}
	if strings.HasPrefix(explicit, "#") {
		idx, err := parseColumnIndex(explicit)
		if err != nil {
			return -1, false, err
		}
		if idx >= width {
			return -1, false, fmt.Errorf("column index %s is out of range", explicit)
		}
		return idx, false, nil
	}
	return -1, false, fmt.Errorf("column %q not found", explicit)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

func readSQLiteEntries(path, table string) ([]Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer db.Close()
	rows, err := db.Query("SELECT id, text, value, kind FROM " + table + " ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			id   sql.NullString
			kind sql.NullString
		)
		if err := rows.Scan(&id, &e.Text, &e.Value, &kind); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		e.ID = id.String
		e.Kind = Kind(kind.String)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return entries, nil
}

// WriteCorpusSQLite writes entries to a new SQLite file in the layout
// LoadCorpusFile reads. An existing file is replaced.
func WriteCorpusSQLite(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE ` + corpusTable + ` (id TEXT NOT NULL, text TEXT NOT NULL, value REAL NOT NULL, kind TEXT)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO ` + corpusTable + ` (id, text, value, kind) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.ID, e.Text, e.Value, string(e.Kind)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %q: %w", e.ID, err)
		}
	}
	return tx.Commit()
}
