// Package history implements the local session history screen, backed by
// the on-disk results store.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsehgal/adaptest/internal/assessment"
	"github.com/rsehgal/adaptest/internal/screen"
	"github.com/rsehgal/adaptest/internal/store"
	"github.com/rsehgal/adaptest/internal/ui/layout"
	"github.com/rsehgal/adaptest/internal/ui/theme"
)

const historyLimit = 20

type entriesLoadedMsg struct {
	entries []store.HistoryEntry
	err     error
}

type detailLoadedMsg struct {
	sessionID string
	results   *assessment.Results
	err       error
}

// HistoryScreen lists locally stored completed sessions.
type HistoryScreen struct {
	repo store.HistoryRepo

	entries  []store.HistoryEntry
	selected int
	detail   *assessment.Results
	loading  bool
	errText  string
}

var _ screen.Screen = (*HistoryScreen)(nil)

// New creates the history screen.
func New(repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, loading: true}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) Init() tea.Cmd {
	repo := h.repo
	return func() tea.Msg {
		if repo == nil {
			return entriesLoadedMsg{}
		}
		entries, err := repo.Recent(context.Background(), historyLimit)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		h.loading = false
		if msg.err != nil {
			h.errText = msg.err.Error()
			return h, nil
		}
		h.entries = msg.entries
		return h, nil

	case detailLoadedMsg:
		if msg.err != nil {
			h.errText = msg.err.Error()
			return h, nil
		}
		h.detail = msg.results
		return h, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if h.selected > 0 {
				h.selected--
				h.detail = nil
			}
		case "down", "j":
			if h.selected < len(h.entries)-1 {
				h.selected++
				h.detail = nil
			}
		case "enter":
			return h, h.loadDetail()
		}
	}

	return h, nil
}

func (h *HistoryScreen) loadDetail() tea.Cmd {
	if h.selected < 0 || h.selected >= len(h.entries) {
		return nil
	}
	repo := h.repo
	sessionID := h.entries[h.selected].SessionID
	return func() tea.Msg {
		results, err := repo.Results(context.Background(), sessionID)
		return detailLoadedMsg{sessionID: sessionID, results: results, err: err}
	}
}

func (h *HistoryScreen) View(width, height int) string {
	var s strings.Builder

	s.WriteString(theme.Title.Render("Past sessions"))
	s.WriteString("\n\n")

	switch {
	case h.loading:
		s.WriteString(theme.Hint.Render("  loading..."))
	case h.errText != "":
		s.WriteString(theme.StatusError.Render("  ✗ " + h.errText))
	case len(h.entries) == 0:
		s.WriteString(theme.Hint.Render("  no completed sessions yet"))
	default:
		for i, e := range h.entries {
			line := fmt.Sprintf("%s  %-14s  θ %+.2f  %3d%%  %-12s  %s",
				e.CompletedAt.Format("2006-01-02"), e.ItemBank,
				e.FinalTheta, int(e.Accuracy*100), e.Tier, e.Username)
			if i == h.selected {
				s.WriteString(theme.Selected.Render("  ▸ "+line) + "\n")
			} else {
				s.WriteString(theme.Unselected.Render("    "+line) + "\n")
			}
		}
		if h.detail != nil {
			s.WriteString("\n")
			s.WriteString(h.detailView())
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(s.String())
}

func (h *HistoryScreen) detailView() string {
	res := h.detail
	var s strings.Builder

	s.WriteString(theme.Subtitle.Render(fmt.Sprintf(
		"θ %+.2f ± %.2f · %d questions · tier %s",
		res.FinalTheta, res.FinalSem, res.QuestionsAsked, res.Tier)))
	s.WriteString("\n")

	for _, tp := range res.TopicPerformance {
		s.WriteString(theme.Body.Render(fmt.Sprintf(
			"  %-16s %3d%%  (%d/%d)  %s",
			tp.Topic, int(tp.Accuracy*100), tp.CorrectCount,
			tp.QuestionsAnswered, tp.StrengthLevel)))
		s.WriteString("\n")
	}

	return theme.Card.Render(s.String())
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
	}
}
