package charts

import (
	"charm.land/lipgloss/v2"

	"github.com/rsehgal/adaptest/internal/ui/theme"
)

// Styles carries the lipgloss styles a chart renders with. It is passed
// explicitly rather than read from shared state, so screens, tests, and
// exports can render with different palettes.
type Styles struct {
	Bar     lipgloss.Style
	UserBar lipgloss.Style
	Axis    lipgloss.Style
	Label   lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Pending lipgloss.Style
}

// DefaultStyles returns the application palette.
func DefaultStyles() Styles {
	return Styles{
		Bar:     lipgloss.NewStyle().Foreground(theme.Secondary),
		UserBar: lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Axis:    lipgloss.NewStyle().Foreground(theme.Border),
		Label:   lipgloss.NewStyle().Foreground(theme.TextDim),
		Good:    lipgloss.NewStyle().Foreground(theme.Success),
		Bad:     lipgloss.NewStyle().Foreground(theme.Error),
		Pending: lipgloss.NewStyle().Foreground(theme.Accent),
	}
}

// PlainStyles returns unstyled rendering, used by tests and plain-text
// reports.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Bar: plain, UserBar: plain, Axis: plain,
		Label: plain, Good: plain, Bad: plain, Pending: plain,
	}
}
