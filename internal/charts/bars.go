package charts

import (
	"fmt"
	"strings"

	"github.com/rsehgal/adaptest/internal/analytics"
)

// UserMarker tags the bin holding the current user's value.
const UserMarker = "◀ you"

// BarChart renders a histogram as horizontal bars, one row per bin. Bin
// labels come from format; the user's bin is highlighted and marked.
func BarChart(bins []analytics.HistogramBin, width int, format Formatter, st Styles) string {
	if len(bins) == 0 {
		return st.Label.Render("no peer data")
	}

	maxCount := 0
	labelWidth := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
		if w := len(format(b.BinStart)); w > labelWidth {
			labelWidth = w
		}
	}

	barWidth := width - labelWidth - 12 // label, count, marker
	if barWidth < 8 {
		barWidth = 8
	}

	var rows []string
	for _, b := range bins {
		filled := 0
		if maxCount > 0 {
			filled = b.Count * barWidth / maxCount
		}
		if b.Count > 0 && filled == 0 {
			filled = 1
		}

		bar := strings.Repeat("█", filled)
		style := st.Bar
		marker := ""
		if b.IsUserBin {
			style = st.UserBar
			marker = " " + st.UserBar.Render(UserMarker)
		}

		row := fmt.Sprintf("%*s ", labelWidth, format(b.BinStart)) +
			style.Render(bar) +
			st.Label.Render(fmt.Sprintf(" %d", b.Count)) +
			marker
		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

// PercentileGauge renders a percentile as a compact labeled bar.
func PercentileGauge(label string, percentile, width int, st Styles) string {
	barWidth := width - len(label) - 8
	if barWidth < 10 {
		barWidth = 10
	}
	filled := percentile * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}

	return st.Label.Render(label) + " " +
		st.UserBar.Render(strings.Repeat("█", filled)) +
		st.Axis.Render(strings.Repeat("░", barWidth-filled)) +
		st.Label.Render(fmt.Sprintf(" P%d", percentile))
}
