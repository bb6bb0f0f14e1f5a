package charts

import (
	"strings"

	"github.com/rsehgal/adaptest/internal/analytics"
)

// CurvePlot renders an item-characteristic curve: probability of a
// correct response (y, 0-1) against ability (x). A vertical marker is
// drawn at the ability estimate the curve was generated for.
func CurvePlot(points []analytics.CurvePoint, theta float64, width, height int, st Styles) string {
	if len(points) == 0 {
		return st.Label.Render("no curve data")
	}
	if width < 12 {
		width = 12
	}
	if height < 5 {
		height = 5
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	thetaCol := coordinate(theta, width)
	for y := 0; y < height; y++ {
		grid[y][thetaCol] = '·'
	}

	for _, p := range points {
		x := coordinate(p.X, width)
		y := height - 1 - int(p.P*float64(height-1))
		if y < 0 {
			y = 0
		}
		if y >= height {
			y = height - 1
		}
		grid[y][x] = '•'
	}

	var b strings.Builder
	for y, row := range grid {
		label := "     "
		switch y {
		case 0:
			label = "1.0 "
		case height - 1:
			label = "0.0 "
		}
		b.WriteString(st.Label.Render(label))
		b.WriteString(st.Axis.Render("│"))
		b.WriteString(st.Bar.Render(string(row)))
		b.WriteString("\n")
	}
	b.WriteString(st.Label.Render("    "))
	b.WriteString(st.Axis.Render("└" + strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(st.Label.Render("     -3" + strings.Repeat(" ", max(width-8, 1)) + "+3"))

	return b.String()
}
