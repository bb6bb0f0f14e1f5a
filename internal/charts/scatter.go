package charts

import (
	"strings"

	"github.com/rsehgal/adaptest/internal/analytics"
)

// Scatter glyphs.
const (
	glyphCorrect = "●"
	glyphWrong   = "✗"
	glyphPending = "◌"
)

// ScatterPlot renders difficulty (x) against ability (y) on a character
// grid over the [-3, 3] × [-3, 3] ability domain. Correct answers render
// as dots, wrong ones as crosses, and the pending probe as a hollow dot.
func ScatterPlot(points []analytics.ScatterPoint, width, height int, st Styles) string {
	if width < 12 {
		width = 12
	}
	if height < 6 {
		height = 6
	}

	type cell struct {
		glyph string
		style int // index into styles below, -1 for empty
	}
	styles := []func(...string) string{
		st.Good.Render, st.Bad.Render, st.Pending.Render,
	}

	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{style: -1}
		}
	}

	for _, p := range points {
		x := coordinate(p.X, width)
		// Row 0 is the top of the plot, so high ability maps to low rows.
		y := height - 1 - coordinate(p.Y, height)

		c := cell{}
		switch {
		case p.Type == analytics.PointCurrent:
			c = cell{glyph: glyphPending, style: 2}
		case p.Correct != nil && *p.Correct:
			c = cell{glyph: glyphCorrect, style: 0}
		default:
			c = cell{glyph: glyphWrong, style: 1}
		}
		grid[y][x] = c
	}

	var b strings.Builder
	for y, row := range grid {
		b.WriteString(st.Axis.Render("│"))
		for _, c := range row {
			if c.style < 0 {
				b.WriteString(" ")
				continue
			}
			b.WriteString(styles[c.style](c.glyph))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(st.Axis.Render("└" + strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(st.Label.Render(" easy" + strings.Repeat(" ", max(width-10, 1)) + "hard"))

	return b.String()
}

// coordinate maps a value on the ability domain to a column/row index.
func coordinate(v float64, size int) int {
	frac := (v - analytics.ThetaMin) / (analytics.ThetaMax - analytics.ThetaMin)
	idx := int(frac * float64(size-1))
	if idx < 0 {
		return 0
	}
	if idx >= size {
		return size - 1
	}
	return idx
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
