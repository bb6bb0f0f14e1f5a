// Package results implements the post-assessment results screen: the
// final estimate, peer comparisons, the item characteristic curve, and
// the per-topic breakdown.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsehgal/adaptest/internal/analytics"
	"github.com/rsehgal/adaptest/internal/charts"
	"github.com/rsehgal/adaptest/internal/flow"
	"github.com/rsehgal/adaptest/internal/router"
	"github.com/rsehgal/adaptest/internal/screen"
	"github.com/rsehgal/adaptest/internal/ui/layout"
	"github.com/rsehgal/adaptest/internal/ui/theme"
)

type tab int

const (
	tabOverview tab = iota
	tabPeers
	tabCurve
	tabTopics
	tabCount
)

var tabNames = []string{"Overview", "Peers", "Curve", "Topics"}

// ResultsScreen renders the final payload and its comparative analytics.
type ResultsScreen struct {
	state          *flow.State
	banksFactory   func() screen.Screen
	historyFactory func() screen.Screen

	active tab
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New creates the results screen over the completed flow state.
func New(state *flow.State, banksFactory, historyFactory func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		state:          state,
		banksFactory:   banksFactory,
		historyFactory: historyFactory,
	}
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "shift+tab":
		r.active = (r.active + tabCount - 1) % tabCount
	case "right", "tab":
		r.active = (r.active + 1) % tabCount
	case "1", "2", "3", "4":
		r.active = tab(kmsg.String()[0] - '1')
	case "r":
		r.state.Restart()
		next := r.banksFactory()
		return r, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	case "h":
		next := r.historyFactory()
		return r, func() tea.Msg {
			return router.PushScreenMsg{Screen: next}
		}
	}

	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	st := r.state
	if st.Results == nil {
		return theme.Hint.Render("  no results yet")
	}

	var s strings.Builder
	s.WriteString(r.tabBar())
	s.WriteString("\n\n")

	contentWidth := width - 8
	if contentWidth < 40 {
		contentWidth = 40
	}

	switch r.active {
	case tabOverview:
		s.WriteString(r.overview(contentWidth))
	case tabPeers:
		s.WriteString(r.peers(contentWidth))
	case tabCurve:
		s.WriteString(r.curve(contentWidth))
	case tabTopics:
		s.WriteString(r.topics(contentWidth))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(s.String())
}

func (r *ResultsScreen) tabBar() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if tab(i) == r.active {
			parts = append(parts, theme.Selected.Render(label))
		} else {
			parts = append(parts, theme.Hint.Render(label))
		}
	}
	return strings.Join(parts, theme.Hint.Render("│"))
}

func (r *ResultsScreen) overview(width int) string {
	st := r.state
	res := st.Results
	var s strings.Builder

	s.WriteString(theme.Title.Render(fmt.Sprintf("Tier: %s", res.Tier)))
	s.WriteString("\n\n")
	s.WriteString(theme.Body.Render(fmt.Sprintf("final ability   θ %+.2f  ± %.2f", res.FinalTheta, res.FinalSem)))
	s.WriteString("\n")
	s.WriteString(theme.Body.Render(fmt.Sprintf("accuracy        %d%% over %d questions",
		int(res.Accuracy*100), res.QuestionsAsked)))
	s.WriteString("\n")

	if res.PrecisionQuality.Stars > 0 {
		stars := strings.Repeat("★", res.PrecisionQuality.Stars) +
			strings.Repeat("☆", 5-res.PrecisionQuality.Stars)
		s.WriteString(theme.Body.Render(fmt.Sprintf("precision       %s %s", stars, res.PrecisionQuality.Label)))
		s.WriteString("\n")
	}

	if m := st.Metrics; m != nil {
		s.WriteString("\n")
		s.WriteString(theme.Subtitle.Render(fmt.Sprintf("Against %d peers", m.PeerCount)))
		s.WriteString("\n\n")
		gw := width - 10
		s.WriteString(charts.PercentileGauge("ability   ", m.ThetaPercentile, gw, charts.DefaultStyles()))
		s.WriteString("\n")
		s.WriteString(charts.PercentileGauge("accuracy  ", m.AccuracyPercentile, gw, charts.DefaultStyles()))
		s.WriteString("\n")
		s.WriteString(charts.PercentileGauge("efficiency", m.EfficiencyPercentile, gw, charts.DefaultStyles()))
		s.WriteString("\n")
	}

	if len(res.LearningRoadmap) > 0 {
		s.WriteString("\n")
		s.WriteString(theme.Subtitle.Render("Suggested next steps"))
		s.WriteString("\n")
		for _, step := range res.LearningRoadmap {
			s.WriteString(theme.Body.Render("  • "+step) + "\n")
		}
	}

	return s.String()
}

func (r *ResultsScreen) peers(width int) string {
	m := r.state.Metrics
	if m == nil || m.PeerCount == 0 {
		return theme.Hint.Render("  no peer sessions for this item bank yet")
	}

	var s strings.Builder
	st := charts.DefaultStyles()
	bw := width - 4

	s.WriteString(theme.Subtitle.Render(fmt.Sprintf("Ability distribution (peer mean θ %+.2f)", m.AvgTheta)))
	s.WriteString("\n")
	s.WriteString(charts.BarChart(m.ThetaHistogram, bw, charts.FormatTheta, st))
	s.WriteString("\n\n")

	s.WriteString(theme.Subtitle.Render(fmt.Sprintf("Accuracy distribution (peer mean %d%%)", int(m.AvgAccuracy*100))))
	s.WriteString("\n")
	s.WriteString(charts.BarChart(m.AccuracyHistogram, bw, charts.FormatPercent, st))
	s.WriteString("\n\n")

	s.WriteString(theme.Subtitle.Render(fmt.Sprintf("Questions needed (peer mean %.0f)", m.AvgQuestions)))
	s.WriteString("\n")
	s.WriteString(charts.BarChart(m.QuestionHistogram, bw, charts.FormatCount, st))

	return s.String()
}

func (r *ResultsScreen) curve(width int) string {
	st := r.state
	var s strings.Builder

	points := analytics.ICC(st.Theta, analytics.DefaultCurveOptions())

	s.WriteString(theme.Subtitle.Render("Item characteristic curve at your ability"))
	s.WriteString("\n")
	s.WriteString(charts.CurvePlot(points, st.Theta, width-6, 12, charts.DefaultStyles()))
	s.WriteString("\n\n")

	s.WriteString(theme.Subtitle.Render("Answered items by difficulty and running estimate"))
	s.WriteString("\n")
	s.WriteString(charts.ScatterPlot(st.Scatter, width-6, 10, charts.DefaultStyles()))

	return s.String()
}

func (r *ResultsScreen) topics(width int) string {
	if len(r.state.Radar) == 0 {
		return theme.Hint.Render("  no per-topic data for this session")
	}

	var s strings.Builder
	s.WriteString(theme.Subtitle.Render("Per-topic accuracy and proficiency"))
	s.WriteString("\n\n")
	s.WriteString(charts.Radar(r.state.Radar, width-4, charts.DefaultStyles()))
	return s.String()
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→/1-4", Description: "Switch tab"},
		{Key: "R", Description: "Retake"},
		{Key: "H", Description: "History"},
	}
}
