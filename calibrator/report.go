package calibrator

import (
	"fmt"
	"io"
	"strings"
)

// ReportOptions controls RenderReport.
type ReportOptions struct {
	// Heading styles section headings; nil leaves them plain.
	Heading func(string) string
}

func (o ReportOptions) heading(s string) string {
	if o.Heading == nil {
		return s
	}
	return o.Heading(s)
}

// FormatMatch renders one match for people.
func FormatMatch(m Match) string {
	if m.Kind == ReferenceMapMatch {
		var b strings.Builder
		fmt.Fprintf(&b, "Reference Map — %s (level %s)", m.Entry.Text, formatValue(m.Entry.Value))
		if len(m.Fields) > 0 {
			fmt.Fprintf(&b, " (matched on %s)", strings.Join(m.Fields, ", "))
		}
		if m.Reason != "" {
			b.WriteString(" — " + m.Reason)
		}
		return b.String()
	}
	kind := m.Entry.Kind
	if kind == "" {
		kind = KindStandard
	}
	return fmt.Sprintf("%s (value=%s, kind=%s)", m.Entry.Text, formatValue(m.Entry.Value), kind)
}

// Summary is the closing line of a report.
func Summary(res Result) string {
	n := res.Matches.Len()
	lo, hi, ok := res.Range()
	if !ok {
		return "No calibration guesstimate could be made with the current corpus. This could be wrong."
	}
	between := fmt.Sprintf("between (%s - %s)", formatValue(lo), formatValue(hi))
	avg, ok := res.Average()
	if !ok {
		return fmt.Sprintf("Insufficient data: %d match(es) %s; at least %d are needed for a calibration estimate. This could be wrong.",
			n, between, minAverageMatches)
	}
	return fmt.Sprintf("Geometric-average calibration across %d match(es): %.2f %s. "+
		"Remember the scale is logarithmic, so geometric means are used. This could be wrong.", n, avg, between)
}

// RenderReport writes the per-stage report of res followed by the summary.
func RenderReport(w io.Writer, res Result, opts ReportOptions) error {
	var b strings.Builder
	b.WriteString(opts.heading("=== Lookup Results ===") + "\n")

	if st, ok := res.Stage(StageExact); ok && st.Matches.Len() > 0 {
		b.WriteString("\nDirect statement match(es) found! Immediate calibrations:\n")
		for _, m := range st.Matches.Matches() {
			b.WriteString("  => " + FormatMatch(m) + "\n")
		}
	}

	for _, st := range res.Trace {
		b.WriteString("\n" + opts.heading(st.Name+":") + "\n")
		if len(st.Keywords) > 0 {
			b.WriteString("  Keywords: " + strings.Join(st.Keywords, ", ") + "\n")
		}
		if st.Name == StageSuggestions && len(res.Suggestions) > 0 {
			parts := make([]string, len(res.Suggestions))
			for i, sg := range res.Suggestions {
				reason := sg.Reason
				if reason == "" {
					reason = "no reasoning provided"
				}
				parts[i] = fmt.Sprintf("%s (%s)", sg.Name, reason)
			}
			b.WriteString("  Suggestions: " + strings.Join(parts, ", ") + "\n")
		}
		if st.Matches.Len() == 0 {
			b.WriteString("  No matches.\n")
			continue
		}
		for _, m := range st.Matches.Matches() {
			b.WriteString("  - " + FormatMatch(m) + "\n")
		}
	}

	b.WriteString("\n" + Summary(res) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
