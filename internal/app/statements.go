package app

import (
	"fmt"

	"yashubustudio/calibrator/calibrator"
)

type columnChoice struct {
	Index int
	Label string
}

// statementOptions finds statement columns by the configured text column
// names.
func statementOptions(cfg calibrator.Config) calibrator.ParseOptions {
	return calibrator.ParseOptions{Candidates: cfg.Corpus.Columns.Candidates}
}

// columnChoices labels every column of t with its header, or its position,
// and a sample value.
func columnChoices(t *calibrator.StatementTable) []columnChoice {
	width := t.Width()
	choices := make([]columnChoice, 0, width)
	for col := 0; col < width; col++ {
		name := fmt.Sprintf("Column %d", col+1)
		if col < len(t.Header) && t.Header[col] != "" {
			name = t.Header[col]
		}
		label := fmt.Sprintf("[%d] %s", col+1, name)
		if values := t.Column(col); len(values) > 0 {
			label = fmt.Sprintf("%s (e.g. %s)", label, truncateText(values[0], 20))
		}
		choices = append(choices, columnChoice{Index: col, Label: label})
	}
	return choices
}

func truncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "…"
}
