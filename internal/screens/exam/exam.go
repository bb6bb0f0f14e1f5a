// Package exam implements the in-progress assessment screen: the live
// question loop plus the running ability estimate.
package exam

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rsehgal/adaptest/internal/assessment"
	"github.com/rsehgal/adaptest/internal/charts"
	"github.com/rsehgal/adaptest/internal/flow"
	"github.com/rsehgal/adaptest/internal/router"
	"github.com/rsehgal/adaptest/internal/screen"
	"github.com/rsehgal/adaptest/internal/store"
	"github.com/rsehgal/adaptest/internal/ui/components"
	"github.com/rsehgal/adaptest/internal/ui/layout"
	"github.com/rsehgal/adaptest/internal/ui/theme"
)

type submitResultMsg struct {
	sessionID string
	state     *assessment.SessionState
	err       error
}

type completedMsg struct {
	results *assessment.Results
	peers   []assessment.Session
	err     error
}

// ExamScreen runs the question loop for an in-progress session.
type ExamScreen struct {
	client         assessment.Client
	history        store.HistoryRepo
	state          *flow.State
	resultsFactory func() screen.Screen

	picker  components.OptionPicker
	errText string
}

var _ screen.Screen = (*ExamScreen)(nil)

// New creates the exam screen for the session already begun on state.
func New(client assessment.Client, history store.HistoryRepo, state *flow.State, resultsFactory func() screen.Screen) *ExamScreen {
	e := &ExamScreen{
		client:         client,
		history:        history,
		state:          state,
		resultsFactory: resultsFactory,
	}
	e.resetPicker()
	return e
}

func (e *ExamScreen) resetPicker() {
	if e.state.Current != nil {
		e.picker = components.NewOptionPicker(e.state.Current.Options)
	}
}

func (e *ExamScreen) Title() string {
	return e.state.Bank.Name
}

func (e *ExamScreen) Init() tea.Cmd {
	return nil
}

func (e *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		if msg.err != nil {
			e.state.FailSubmit()
			e.picker.Unlock()
			e.errText = submitErrorText(msg.err)
			return e, nil
		}
		if err := e.state.Apply(msg.state); err != nil {
			// A stale reply means a newer one already advanced the
			// session. Drop it rather than reorder the answers.
			if !errors.Is(err, flow.ErrStaleUpdate) {
				e.errText = err.Error()
			}
			return e, nil
		}
		e.errText = ""
		if e.state.Phase == flow.PhaseComplete {
			return e, e.fetchResults()
		}
		e.resetPicker()
		return e, nil

	case completedMsg:
		if msg.err != nil {
			e.errText = msg.err.Error()
			return e, nil
		}
		e.state.Complete(msg.results, msg.peers)
		cmds := []tea.Cmd{e.saveHistory(msg.results)}
		next := e.resultsFactory()
		cmds = append(cmds, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		})
		return e, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return e, e.submit()
		}
	}

	var cmd tea.Cmd
	e.picker, cmd = e.picker.Update(msg)
	return e, cmd
}

func (e *ExamScreen) submit() tea.Cmd {
	question := e.state.Current
	if question == nil {
		return nil
	}
	if err := e.state.BeginSubmit(); err != nil {
		if errors.Is(err, flow.ErrSubmitInFlight) {
			return nil
		}
		e.errText = err.Error()
		return nil
	}

	e.picker.Lock()
	e.errText = ""

	client := e.client
	sessionID := e.state.SessionID
	questionID := question.QuestionID
	option := e.picker.SelectedLabel()
	return func() tea.Msg {
		state, err := client.Submit(context.Background(), sessionID, questionID, option)
		return submitResultMsg{sessionID: sessionID, state: state, err: err}
	}
}

func (e *ExamScreen) fetchResults() tea.Cmd {
	client := e.client
	sessionID := e.state.SessionID
	bank := e.state.Bank.ID
	return func() tea.Msg {
		results, err := client.Results(context.Background(), sessionID)
		if err != nil {
			return completedMsg{err: err}
		}
		peers, err := client.PeerSessions(context.Background(), bank)
		if err != nil {
			return completedMsg{err: err}
		}
		return completedMsg{results: results, peers: peers}
	}
}

// saveHistory persists the finished session locally. A failure here must
// not block the results screen, so the error surfaces only as a status
// line later.
func (e *ExamScreen) saveHistory(results *assessment.Results) tea.Cmd {
	repo := e.history
	username := e.state.Username
	bank := e.state.Bank.ID
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		_ = repo.Save(context.Background(), username, bank, results, time.Now())
		return nil
	}
}

func submitErrorText(err error) string {
	var (
		rateLimit   *assessment.ErrRateLimit
		unavailable *assessment.ErrUnavailable
	)
	switch {
	case errors.As(err, &rateLimit):
		return fmt.Sprintf("rate limited, retry in %s", rateLimit.RetryAfter)
	case errors.As(err, &unavailable):
		return "server unreachable, answer not recorded — try again"
	default:
		return err.Error()
	}
}

func (e *ExamScreen) View(width, height int) string {
	st := e.state

	left := e.questionPanel(width * 3 / 5)
	right := e.estimatePanel(width - width*3/5 - 4)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(body + "\n\n" + e.statusLine(st))
}

func (e *ExamScreen) questionPanel(width int) string {
	st := e.state
	var s strings.Builder

	if st.Current == nil {
		s.WriteString(theme.Hint.Render("finalizing results..."))
		return theme.Card.Width(width).Render(s.String())
	}

	s.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d", st.QuestionsAsked+1)))
	if st.Current.Topic != "" {
		s.WriteString(theme.Hint.Render("  · " + st.Current.Topic))
	}
	s.WriteString("\n\n")
	s.WriteString(theme.Body.Render(st.Current.Text))
	s.WriteString("\n\n")
	s.WriteString(e.picker.View())

	if n := len(st.Responses); n > 0 {
		last := st.Responses[n-1]
		s.WriteString("\n")
		if last.IsCorrect {
			s.WriteString(theme.Correct.Render("✓ previous answer correct"))
		} else {
			s.WriteString(theme.Incorrect.Render(
				fmt.Sprintf("✗ previous answer wrong (correct: %s)", last.CorrectOption)))
		}
	}

	return theme.Card.Width(width).Render(s.String())
}

func (e *ExamScreen) estimatePanel(width int) string {
	st := e.state
	var s strings.Builder

	s.WriteString(theme.Subtitle.Render("Ability estimate"))
	s.WriteString("\n\n")
	s.WriteString(theme.Body.Render(fmt.Sprintf("θ  %+.2f  ± %.2f", st.Theta, st.Sem)))
	s.WriteString("\n")
	s.WriteString(theme.Body.Render(fmt.Sprintf("accuracy  %d%%", int(st.Accuracy*100))))
	s.WriteString("\n")

	if st.EstimatedTier != "" {
		s.WriteString(theme.Body.Render("tier  " + st.EstimatedTier))
		if st.TierNote != "" {
			s.WriteString("\n" + theme.Hint.Render(st.TierNote))
		}
		s.WriteString("\n")
	}

	if st.PrecisionQuality.Stars > 0 {
		stars := strings.Repeat("★", st.PrecisionQuality.Stars) +
			strings.Repeat("☆", 5-st.PrecisionQuality.Stars)
		s.WriteString(theme.Body.Render("precision  "+stars) + "\n")
	}

	s.WriteString("\n")
	bar := components.NewProgressBar("target", st.ProgressToTarget, true, width-6)
	s.WriteString(bar.View())
	s.WriteString("\n\n")

	s.WriteString(theme.Subtitle.Render("Responses"))
	s.WriteString("\n")
	s.WriteString(charts.ScatterPlot(st.Scatter, width-8, 8, charts.DefaultStyles()))

	return theme.Card.Width(width).Render(s.String())
}

func (e *ExamScreen) statusLine(st *flow.State) string {
	switch {
	case st.Submitting:
		return theme.Hint.Render("  submitting answer...")
	case e.errText != "":
		return theme.StatusError.Render("  ✗ " + e.errText)
	default:
		return ""
	}
}

func (e *ExamScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓/A-D", Description: "Select"},
		{Key: "Enter", Description: "Submit"},
	}
}
