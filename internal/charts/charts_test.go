package charts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsehgal/adaptest/internal/analytics"
)

func TestBarChart_OneRowPerBin(t *testing.T) {
	bins := []analytics.HistogramBin{
		{BinStart: -2, Count: 2},
		{BinStart: -1, Count: 1},
		{BinStart: 0, Count: 3, IsUserBin: true},
	}

	out := BarChart(bins, 60, FormatTheta, PlainStyles())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[2], UserMarker)
	assert.NotContains(t, lines[0], UserMarker)
	// Counts appear as labels.
	assert.Contains(t, lines[0], " 2")
	assert.Contains(t, lines[2], " 3")
}

func TestBarChart_NonEmptyBinAlwaysVisible(t *testing.T) {
	bins := []analytics.HistogramBin{
		{BinStart: 0, Count: 1},
		{BinStart: 1, Count: 500},
	}
	out := BarChart(bins, 40, FormatCount, PlainStyles())
	lines := strings.Split(out, "\n")
	// The tiny bin still renders at least one block.
	assert.Contains(t, lines[0], "█")
}

func TestBarChart_Empty(t *testing.T) {
	out := BarChart(nil, 60, FormatTheta, PlainStyles())
	assert.Contains(t, out, "no peer data")
}

func TestPercentileGauge_Bounds(t *testing.T) {
	out := PercentileGauge("theta", 75, 40, PlainStyles())
	assert.Contains(t, out, "P75")
	assert.Contains(t, out, "theta")
}

func TestScatterPlot_GlyphsPerOutcome(t *testing.T) {
	correct := true
	wrong := false
	points := []analytics.ScatterPoint{
		{X: -1, Y: 0.5, Correct: &correct, Type: analytics.PointAnswered},
		{X: 1, Y: -0.5, Correct: &wrong, Type: analytics.PointAnswered},
		{X: 0, Y: 0, Type: analytics.PointCurrent},
	}

	out := ScatterPlot(points, 30, 10, PlainStyles())
	assert.Contains(t, out, glyphCorrect)
	assert.Contains(t, out, glyphWrong)
	assert.Contains(t, out, glyphPending)
}

func TestScatterPlot_ClampsOutOfDomainPoints(t *testing.T) {
	correct := true
	points := []analytics.ScatterPoint{
		{X: -10, Y: 10, Correct: &correct, Type: analytics.PointAnswered},
	}
	// Must not panic; point lands on the grid edge.
	out := ScatterPlot(points, 20, 8, PlainStyles())
	assert.Contains(t, out, glyphCorrect)
}

func TestCurvePlot_RendersAxisLabels(t *testing.T) {
	points := analytics.ICC(0, analytics.DefaultCurveOptions())
	out := CurvePlot(points, 0, 40, 10, PlainStyles())

	assert.Contains(t, out, "1.0")
	assert.Contains(t, out, "0.0")
	assert.Contains(t, out, "•")
}

func TestRadar_TwoBarsPerTopic(t *testing.T) {
	rows := []analytics.RadarRow{
		{Topic: "algebra", AccuracyPct: 80, ProficiencyPct: 50},
		{Topic: "geometry", AccuracyPct: 40, ProficiencyPct: 25},
	}

	out := Radar(rows, 70, PlainStyles())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "algebra")
	assert.Contains(t, lines[0], "80%")
	// Proficiency label carries the inverted theta.
	assert.Contains(t, lines[1], "θ +0.0")
	assert.Contains(t, lines[3], "θ -1.5")
}

func TestRadar_OutOfRangeClampedForDisplayOnly(t *testing.T) {
	rows := []analytics.RadarRow{
		{Topic: "misc", AccuracyPct: 100, ProficiencyPct: 110},
	}
	out := Radar(rows, 70, PlainStyles())
	// The bar clamps, the label keeps the real value.
	assert.Contains(t, out, "110")
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1.25", FormatTheta(1.25))
	assert.Equal(t, "80%", FormatPercent(0.8))
	assert.Equal(t, "12", FormatCount(12))
}
