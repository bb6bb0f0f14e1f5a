package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsehgal/adaptest/internal/assessment"
	"github.com/rsehgal/adaptest/internal/config"
	"github.com/rsehgal/adaptest/internal/flow"
	"github.com/rsehgal/adaptest/internal/router"
	"github.com/rsehgal/adaptest/internal/screen"
	"github.com/rsehgal/adaptest/internal/screens/banks"
	examscreen "github.com/rsehgal/adaptest/internal/screens/exam"
	"github.com/rsehgal/adaptest/internal/screens/history"
	"github.com/rsehgal/adaptest/internal/screens/results"
	"github.com/rsehgal/adaptest/internal/screens/welcome"
	"github.com/rsehgal/adaptest/internal/store"
	"github.com/rsehgal/adaptest/internal/ui/layout"
)

// Deps carries the wired dependencies every screen draws from.
type Deps struct {
	Client  assessment.Client
	History store.HistoryRepo
	Config  config.Config
	State   *flow.State
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int
}

// newAppModel wires the screen graph. Screens reference each other
// through factory closures so each package only knows its own exits.
func newAppModel(deps Deps) AppModel {
	historyFactory := func() screen.Screen {
		return history.New(deps.History)
	}

	var banksFactory func() screen.Screen

	resultsFactory := func() screen.Screen {
		return results.New(deps.State, banksFactory, historyFactory)
	}
	examFactory := func() screen.Screen {
		return examscreen.New(deps.Client, deps.History, deps.State, resultsFactory)
	}
	banksFactory = func() screen.Screen {
		return banks.New(deps.Client, deps.State, examFactory, historyFactory)
	}

	welcomeScreen := welcome.New(deps.Client, deps.State, deps.Config.Username, banksFactory)

	return AppModel{
		deps:   deps,
		router: router.New(welcomeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.deps.State.Username, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hinter, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hinter.KeyHints(), footerHints...)
	} else if m.router.Depth() > 1 {
		footerHints = append([]layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}, footerHints...)
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program with the given dependencies.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
