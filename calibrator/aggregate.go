package calibrator

import "math"

// minAverageMatches is the fewest matches Average will summarize.
const minAverageMatches = 3

func matchWeight(m Match) float64 {
	w := 1.0 + 0.3*float64(len(m.Fields))
	if m.Entry.Kind == KindStandard {
		w += 0.2
	}
	return w
}

// Average returns the weighted geometric mean of the matched values. It
// reports false for fewer than three matches. When any value is zero or
// negative the plain arithmetic mean is returned instead.
func Average(matches []Match) (float64, bool) {
	if len(matches) < minAverageMatches {
		return 0, false
	}
	for _, m := range matches {
		if m.Entry.Value <= 0 {
			return arithmeticMean(matches), true
		}
	}
	var logSum, weightSum float64
	for _, m := range matches {
		w := matchWeight(m)
		logSum += w * math.Log(m.Entry.Value)
		weightSum += w
	}
	if weightSum == 0 {
		return 0, false
	}
	return math.Exp(logSum / weightSum), true
}

func arithmeticMean(matches []Match) float64 {
	var sum float64
	for _, m := range matches {
		sum += m.Entry.Value
	}
	return sum / float64(len(matches))
}

// Range returns the lowest and highest matched values.
func Range(matches []Match) (float64, float64, bool) {
	if len(matches) == 0 {
		return 0, 0, false
	}
	lo, hi := matches[0].Entry.Value, matches[0].Entry.Value
	for _, m := range matches[1:] {
		lo = math.Min(lo, m.Entry.Value)
		hi = math.Max(hi, m.Entry.Value)
	}
	return lo, hi, true
}
