package flow

import (
	"github.com/rsehgal/adaptest/internal/analytics"
	"github.com/rsehgal/adaptest/internal/assessment"
)

// Phase is the current stage of the quiz-taking flow.
type Phase int

const (
	PhaseLoggedOut  Phase = iota // No authenticated user
	PhaseSelecting               // Choosing an item bank
	PhaseInProgress              // Answering questions
	PhaseComplete                // Final results available
)

// String returns the phase name for status lines and logs.
func (p Phase) String() string {
	switch p {
	case PhaseLoggedOut:
		return "logged out"
	case PhaseSelecting:
		return "selecting"
	case PhaseInProgress:
		return "in progress"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// State tracks one user's run through the flow. It is the single source
// of truth the screens render from; every mutation goes through the
// methods in flow.go so the sequence and loading guards cannot be
// bypassed.
type State struct {
	// Phase is the current flow phase.
	Phase Phase

	// Username is the authenticated user.
	Username string

	// Bank is the item bank being assessed.
	Bank assessment.ItemBank

	// SessionID is the server-assigned session identifier.
	SessionID string

	// Sequence is the last server-confirmed answer sequence number.
	// Updates arriving with a sequence at or below it are stale and are
	// rejected instead of silently reordering the response list.
	Sequence int

	// Live estimate, mirrored from the latest server state.
	Theta            float64
	Sem              float64
	Accuracy         float64
	QuestionsAsked   int
	Tier             string
	EstimatedTier    string
	TierNote         string
	PrecisionQuality assessment.PrecisionQuality
	ProgressToTarget float64
	TargetSem        float64

	// Responses are the graded answers in server-confirmed order.
	Responses []assessment.Response

	// Current is the question awaiting an answer (nil once completed).
	Current *assessment.Question

	// Submitting blocks a second submit while one is outstanding.
	Submitting bool

	// Chart series, re-derived after every applied answer.
	Progression []analytics.ProgressionPoint
	Scatter     []analytics.ScatterPoint

	// Final payloads, set on completion.
	Results *assessment.Results
	Metrics *analytics.ComparativeMetrics
	Radar   []analytics.RadarRow
}

// NewState returns a fresh flow in the logged-out phase.
func NewState() *State {
	return &State{Phase: PhaseLoggedOut}
}
