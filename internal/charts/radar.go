package charts

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rsehgal/adaptest/internal/analytics"
)

// Radar renders per-topic accuracy and proficiency as paired bars on the
// shared 0-100 scale. Proficiency labels carry the underlying theta,
// recovered through the inverse mapping, so a reader can see both scales
// at once.
func Radar(rows []analytics.RadarRow, width int, st Styles) string {
	if len(rows) == 0 {
		return st.Label.Render("no topic data")
	}

	topicWidth := 0
	for _, r := range rows {
		if len(r.Topic) > topicWidth {
			topicWidth = len(r.Topic)
		}
	}

	barWidth := width - topicWidth - 26
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for i, r := range rows {
		acc := clampPct(r.AccuracyPct)
		prof := clampPct(r.ProficiencyPct)
		theta := analytics.ThetaFromProficiency(r.ProficiencyPct)

		b.WriteString(fmt.Sprintf("%-*s ", topicWidth, r.Topic))
		b.WriteString(st.Label.Render("acc  "))
		b.WriteString(scaleBar(acc, barWidth, st.Good, st.Axis))
		b.WriteString(st.Label.Render(fmt.Sprintf(" %3.0f%%", r.AccuracyPct)))
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", topicWidth+1))
		b.WriteString(st.Label.Render("prof "))
		b.WriteString(scaleBar(prof, barWidth, st.Bar, st.Axis))
		b.WriteString(st.Label.Render(fmt.Sprintf(" %3.0f (θ %+.1f)", r.ProficiencyPct, theta)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// clampPct bounds a radar value to the drawable 0-100 range. This is
// display clamping only; out-of-domain values keep their real labels.
func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func scaleBar(pct float64, width int, filled, empty lipgloss.Style) string {
	n := int(pct / 100 * float64(width))
	if n > width {
		n = width
	}
	return filled.Render(strings.Repeat("█", n)) + empty.Render(strings.Repeat("░", width-n))
}
