package calibrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage_NeedsThreeMatches(t *testing.T) {
	for _, values := range [][]float64{nil, {500}, {500, 600}} {
		_, ok := Average(matchesWithValues(values...))
		assert.False(t, ok, "values %v", values)
	}
}

func TestAverage_Geometric(t *testing.T) {
	avg, ok := Average(matchesWithValues(100, 200, 400))
	require.True(t, ok)
	assert.InDelta(t, 200, avg, 1e-9)
}

func TestAverage_ZeroFallsBackToArithmetic(t *testing.T) {
	avg, ok := Average(matchesWithValues(0, 500, 600))
	require.True(t, ok)
	assert.False(t, math.IsNaN(avg))
	assert.InDelta(t, 366.6667, avg, 1e-3)
}

func TestAverage_Weights(t *testing.T) {
	matches := matchesWithValues(100, 100, 1000)
	matches[2].Fields = []string{"name", "description"}
	avg, ok := Average(matches)
	require.True(t, ok)

	want := math.Exp((1.2*math.Log(100)*2 + 1.8*math.Log(1000)) / (1.2*2 + 1.8))
	assert.InDelta(t, want, avg, 1e-9)
}

func TestRange(t *testing.T) {
	lo, hi, ok := Range(matchesWithValues(150, 600, 200))
	require.True(t, ok)
	assert.Equal(t, 150.0, lo)
	assert.Equal(t, 600.0, hi)

	_, _, ok = Range(nil)
	assert.False(t, ok)
}
