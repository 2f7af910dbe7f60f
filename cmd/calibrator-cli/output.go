package main

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"yashubustudio/calibrator/calibrator"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// headingFunc styles report headings only when writing to a terminal.
func headingFunc(w io.Writer) func(string) string {
	if !isTerminal(w) {
		return nil
	}
	return func(s string) string { return headingStyle.Render(s) }
}

// textWidth is where long statement and keyword cells wrap.
const textWidth = 48

func newTable(header table.Row, configs ...table.ColumnConfig) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return tw
}

func wrapped(name string) table.ColumnConfig {
	return table.ColumnConfig{Name: name, WidthMax: textWidth, WidthMaxEnforcer: text.WrapSoft}
}

func rightAligned(name string) table.ColumnConfig {
	return table.ColumnConfig{Name: name, Align: text.AlignRight, AlignHeader: text.AlignLeft}
}

// entryTable lists corpus entries with their calibration values.
func entryTable(entries []calibrator.Entry) string {
	tw := newTable(table.Row{"ID", "Text", "Value", "Kind"},
		rightAligned("ID"), wrapped("Text"), rightAligned("Value"))
	for _, e := range entries {
		tw.AppendRow(table.Row{e.ID, e.Text, formatValue(e.Value), string(e.Kind)})
	}
	return tw.Render()
}

// levelTable lists reference map levels, highest first.
func levelTable(levels []calibrator.Entry) string {
	tw := newTable(table.Row{"Level", "Name", "ID"}, rightAligned("Level"))
	for _, lv := range levels {
		tw.AppendRow(table.Row{formatValue(lv.Value), lv.Text, lv.ID})
	}
	return tw.Render()
}

// traceTable shows one row per pipeline stage that ran, with the values it
// matched and the keywords it searched.
func traceTable(res calibrator.Result) string {
	tw := newTable(table.Row{"Stage", "Matches", "Values", "Keywords"},
		rightAligned("Matches"), wrapped("Values"), wrapped("Keywords"))
	for _, st := range res.Trace {
		matches := st.Matches.Matches()
		values := make([]string, len(matches))
		for i, m := range matches {
			values[i] = formatValue(m.Entry.Value)
		}
		tw.AppendRow(table.Row{st.Name, len(matches), strings.Join(values, ", "), strings.Join(st.Keywords, ", ")})
	}
	if avg, ok := res.Average(); ok {
		tw.AppendFooter(table.Row{"Average", res.Matches.Len(), formatValue(math.Round(avg*100) / 100), ""})
	}
	return tw.Render()
}
