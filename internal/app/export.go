package app

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

var exportHeader = []string{"statement", "run_id", "matches", "estimate", "range_low", "range_high", "matched_ids", "final_stage", "error"}

func writeResultsCSV(w io.Writer, rows []ResultRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		lo, hi := r.valueRange()
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		record := []string{
			r.Statement,
			r.Result.RunID,
			strconv.Itoa(r.Result.Matches.Len()),
			r.estimate(),
			lo,
			hi,
			strings.Join(r.Result.Matches.IDs(), ";"),
			r.finalStage(),
			errText,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
