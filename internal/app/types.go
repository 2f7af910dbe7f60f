package app

import (
	"fmt"
	"strconv"
	"strings"

	"yashubustudio/calibrator/calibrator"
)

// ResultRow is one analyzed statement in the results table.
type ResultRow struct {
	Statement string
	Result    calibrator.Result
	Err       error
}

func (r ResultRow) estimate() string {
	if r.Err != nil {
		return "error"
	}
	if avg, ok := r.Result.Average(); ok {
		return fmt.Sprintf("%.2f", avg)
	}
	if r.Result.Matches.Len() > 0 {
		return "insufficient data"
	}
	return "none"
}

func (r ResultRow) valueRange() (string, string) {
	lo, hi, ok := r.Result.Range()
	if r.Err != nil || !ok {
		return "", ""
	}
	return formatValue(lo), formatValue(hi)
}

func (r ResultRow) finalStage() string {
	if len(r.Result.Trace) == 0 {
		return ""
	}
	return r.Result.Trace[len(r.Result.Trace)-1].Name
}

func (r ResultRow) matchedNames() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	matches := r.Result.Matches.Matches()
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Entry.Text)
	}
	return strings.Join(names, "; ")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
