// Package banks implements the item bank selection screen.
package banks

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsehgal/adaptest/internal/assessment"
	"github.com/rsehgal/adaptest/internal/flow"
	"github.com/rsehgal/adaptest/internal/router"
	"github.com/rsehgal/adaptest/internal/screen"
	"github.com/rsehgal/adaptest/internal/ui/components"
	"github.com/rsehgal/adaptest/internal/ui/layout"
	"github.com/rsehgal/adaptest/internal/ui/theme"
)

type banksLoadedMsg struct {
	banks []assessment.ItemBank
	err   error
}

type sessionStartedMsg struct {
	bank  assessment.ItemBank
	state *assessment.SessionState
	err   error
}

// BanksScreen lists the available item banks and starts a session.
type BanksScreen struct {
	client         assessment.Client
	state          *flow.State
	examFactory    func() screen.Screen
	historyFactory func() screen.Screen

	menu     components.Menu
	banks    []assessment.ItemBank
	loading  bool
	starting bool
	errText  string
}

var _ screen.Screen = (*BanksScreen)(nil)

// New creates the bank selection screen.
func New(client assessment.Client, state *flow.State, examFactory, historyFactory func() screen.Screen) *BanksScreen {
	return &BanksScreen{
		client:         client,
		state:          state,
		examFactory:    examFactory,
		historyFactory: historyFactory,
		loading:        true,
	}
}

func (b *BanksScreen) Title() string {
	return "Item banks"
}

func (b *BanksScreen) Init() tea.Cmd {
	client := b.client
	return func() tea.Msg {
		banks, err := client.Banks(context.Background())
		return banksLoadedMsg{banks: banks, err: err}
	}
}

func (b *BanksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case banksLoadedMsg:
		b.loading = false
		if msg.err != nil {
			b.errText = msg.err.Error()
			return b, nil
		}
		b.banks = msg.banks
		b.menu = components.NewMenu(b.menuItems())
		return b, nil

	case sessionStartedMsg:
		b.starting = false
		if msg.err != nil {
			b.errText = msg.err.Error()
			return b, nil
		}
		b.state.Begin(msg.bank, msg.state)
		next := b.examFactory()
		return b, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyPressMsg:
		if b.starting {
			return b, nil
		}
		if msg.String() == "h" {
			next := b.historyFactory()
			return b, func() tea.Msg {
				return router.PushScreenMsg{Screen: next}
			}
		}
	}

	var cmd tea.Cmd
	b.menu, cmd = b.menu.Update(msg)
	return b, cmd
}

func (b *BanksScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(b.banks))
	for _, bank := range b.banks {
		bank := bank
		items = append(items, components.MenuItem{
			Label:  bank.Name,
			Detail: fmt.Sprintf("%d items · %d sessions taken", bank.ItemCount, bank.SessionsTaken),
			Action: func() tea.Cmd {
				return b.start(bank)
			},
		})
	}
	return items
}

func (b *BanksScreen) start(bank assessment.ItemBank) tea.Cmd {
	b.starting = true
	b.errText = ""
	client := b.client
	return func() tea.Msg {
		state, err := client.Start(context.Background(), bank.ID)
		return sessionStartedMsg{bank: bank, state: state, err: err}
	}
}

func (b *BanksScreen) View(width, height int) string {
	var s strings.Builder

	s.WriteString(theme.Title.Render("Choose an item bank"))
	s.WriteString("\n\n")

	switch {
	case b.loading:
		s.WriteString(theme.Hint.Render("  loading item banks..."))
	case b.errText != "":
		s.WriteString(theme.StatusError.Render("  ✗ " + b.errText))
	case len(b.banks) == 0:
		s.WriteString(theme.Hint.Render("  no item banks available"))
	default:
		s.WriteString(b.menu.View())
		if selected := b.selectedBank(); selected != nil && selected.Description != "" {
			s.WriteString("\n")
			s.WriteString(theme.Hint.Render("  " + selected.Description))
		}
		if b.starting {
			s.WriteString("\n\n")
			s.WriteString(theme.Hint.Render("  starting session..."))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(s.String())
}

func (b *BanksScreen) selectedBank() *assessment.ItemBank {
	if b.menu.Selected < 0 || b.menu.Selected >= len(b.banks) {
		return nil
	}
	return &b.banks[b.menu.Selected]
}

func (b *BanksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "H", Description: "History"},
	}
}
