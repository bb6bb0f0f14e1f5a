// Package welcome implements the sign-in screen shown on launch.
package welcome

import (
	"context"
	"errors"
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

const banner = `
  ▄▀█ █▀▄ ▄▀█ █▀█ ▀█▀ █▀▀ █▀ ▀█▀
  █▀█ █▄▀ █▀█ █▀▀  █  ██▄ ▄█  █ `

const (
	fieldUsername = iota
	fieldPassword
)

type loginResultMsg struct {
	username string
	err      error
}

// WelcomeScreen collects credentials and signs the user in.
type WelcomeScreen struct {
	client      assessment.Client
	state       *flow.State
	nextFactory func() screen.Screen

	username components.TextInput
	password components.TextInput
	focused  int

	signingIn bool
	errText   string
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the sign-in screen. prefill seeds the username field from
// the config file.
func New(client assessment.Client, state *flow.State, prefill string, nextFactory func() screen.Screen) *WelcomeScreen {
	username := components.NewTextInput("username", 64)
	if prefill != "" {
		username.Model.SetValue(prefill)
	}

	password := components.NewMaskedInput("access token", 128)
	password.Model.Blur()

	return &WelcomeScreen{
		client:      client,
		state:       state,
		nextFactory: nextFactory,
		username:    username,
		password:    password,
	}
}

func (w *WelcomeScreen) Title() string {
	return "Sign in"
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.username.Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		w.signingIn = false
		if msg.err != nil {
			w.errText = loginErrorText(msg.err)
			return w, nil
		}
		w.state.LoggedIn(msg.username)
		next := w.nextFactory()
		return w, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyPressMsg:
		if w.signingIn {
			return w, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return w, w.toggleFocus()
		case "enter":
			if w.focused == fieldUsername {
				return w, w.toggleFocus()
			}
			return w, w.submit()
		}
	}

	var cmd tea.Cmd
	if w.focused == fieldUsername {
		w.username, cmd = w.username.Update(msg)
	} else {
		w.password, cmd = w.password.Update(msg)
	}
	return w, cmd
}

func (w *WelcomeScreen) toggleFocus() tea.Cmd {
	if w.focused == fieldUsername {
		w.focused = fieldPassword
		w.username.Model.Blur()
		return w.password.Model.Focus()
	}
	w.focused = fieldUsername
	w.password.Model.Blur()
	return w.username.Model.Focus()
}

func (w *WelcomeScreen) submit() tea.Cmd {
	username := strings.TrimSpace(w.username.Value())
	password := w.password.Value()
	if username == "" || password == "" {
		w.errText = "both fields are required"
		return nil
	}

	w.signingIn = true
	w.errText = ""
	client := w.client
	return func() tea.Msg {
		err := client.Login(context.Background(), username, password)
		return loginResultMsg{username: username, err: err}
	}
}

func loginErrorText(err error) string {
	var (
		unauthorized *assessment.ErrUnauthorized
		rateLimit    *assessment.ErrRateLimit
		unavailable  *assessment.ErrUnavailable
	)
	switch {
	case errors.As(err, &unauthorized):
		return "invalid credentials"
	case errors.As(err, &rateLimit):
		return "too many attempts, try again shortly"
	case errors.As(err, &unavailable):
		return "server unavailable, is it running?"
	default:
		return err.Error()
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(banner))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("adaptive assessment client"))
	b.WriteString("\n\n\n")

	b.WriteString(theme.Body.Render("  Username"))
	b.WriteString("\n  " + w.username.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("  Access token"))
	b.WriteString("\n  " + w.password.View())
	b.WriteString("\n\n")

	switch {
	case w.signingIn:
		b.WriteString(theme.Hint.Render("  signing in..."))
	case w.errText != "":
		b.WriteString(theme.StatusError.Render("  ✗ " + w.errText))
	default:
		b.WriteString(theme.Hint.Render("  Enter to sign in"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
		{Key: "Enter", Description: "Sign in"},
	}
}
