package flow

import (
	"errors"
	"fmt"

	"github.com/rsehgal/adaptest/internal/analytics"
	"github.com/rsehgal/adaptest/internal/assessment"
)

// ErrSubmitInFlight is returned when a submit is attempted while another
// one is still outstanding.
var ErrSubmitInFlight = errors.New("an answer submission is already in flight")

// ErrStaleUpdate is returned when a server state arrives out of order,
// carrying a sequence number at or below the last applied one. Applying
// it would reorder the response list, so it is dropped.
var ErrStaleUpdate = errors.New("stale session update")

// LoggedIn moves the flow past authentication.
func (s *State) LoggedIn(username string) {
	s.Username = username
	s.Phase = PhaseSelecting
}

// Begin installs the initial server state for a freshly started session
// and enters the in-progress phase.
func (s *State) Begin(bank assessment.ItemBank, state *assessment.SessionState) {
	s.Bank = bank
	s.SessionID = state.SessionID
	s.Sequence = state.Sequence
	s.Responses = nil
	s.Results = nil
	s.Metrics = nil
	s.Radar = nil
	s.Submitting = false
	s.Phase = PhaseInProgress

	s.mirror(state)
	s.rederive()
}

// BeginSubmit arms the loading guard. It fails when a previous submit has
// not come back yet.
func (s *State) BeginSubmit() error {
	if s.Phase != PhaseInProgress {
		return fmt.Errorf("cannot submit in phase %q", s.Phase)
	}
	if s.Submitting {
		return ErrSubmitInFlight
	}
	s.Submitting = true
	return nil
}

// FailSubmit releases the loading guard after a failed submission.
func (s *State) FailSubmit() {
	s.Submitting = false
}

// Apply installs a server-confirmed state after a submit. Responses are
// processed strictly by the server's sequence numbers: a reply that
// arrives late, after a newer one was already applied, is rejected with
// ErrStaleUpdate.
func (s *State) Apply(state *assessment.SessionState) error {
	s.Submitting = false

	if state.SessionID != s.SessionID {
		return fmt.Errorf("state for session %q applied to session %q", state.SessionID, s.SessionID)
	}
	if state.Sequence <= s.Sequence {
		return fmt.Errorf("%w: sequence %d, already at %d", ErrStaleUpdate, state.Sequence, s.Sequence)
	}

	s.Sequence = state.Sequence
	if state.LastResponse != nil {
		s.Responses = append(s.Responses, *state.LastResponse)
	}
	s.mirror(state)
	s.rederive()

	if state.Status == assessment.StatusCompleted {
		s.Phase = PhaseComplete
	}
	return nil
}

// Complete installs the final results payload and its comparative
// metrics. Tier and precision labels inside results are server-computed
// and pass through untouched.
func (s *State) Complete(results *assessment.Results, peers []assessment.Session) {
	s.Results = results
	s.Responses = results.Responses
	s.Theta = results.FinalTheta
	s.Sem = results.FinalSem
	s.Accuracy = results.Accuracy
	s.QuestionsAsked = results.QuestionsAsked
	s.Tier = results.Tier
	s.PrecisionQuality = results.PrecisionQuality
	s.Phase = PhaseComplete
	s.Current = nil
	s.rederive()

	metrics := analytics.Compare(assessment.Session{
		SessionID:      results.SessionID,
		Username:       s.Username,
		ItemBank:       s.Bank.ID,
		Status:         assessment.StatusCompleted,
		FinalTheta:     results.FinalTheta,
		FinalSem:       results.FinalSem,
		Accuracy:       results.Accuracy,
		QuestionsAsked: results.QuestionsAsked,
		Tier:           results.Tier,
		Responses:      results.Responses,
	}, assessment.PeerPool(peers, s.Bank.ID))
	s.Metrics = &metrics
	s.Radar = analytics.NormalizeRadar(results.TopicPerformance)
}

// Restart returns to bank selection for another run, keeping the login.
func (s *State) Restart() {
	username := s.Username
	*s = *NewState()
	s.Username = username
	s.Phase = PhaseSelecting
}

// mirror copies the live estimate fields from a server state.
func (s *State) mirror(state *assessment.SessionState) {
	s.Theta = state.Theta
	s.Sem = state.Sem
	s.Accuracy = state.Accuracy
	s.QuestionsAsked = state.QuestionsAsked
	s.Tier = state.Tier
	s.EstimatedTier = state.EstimatedTier
	s.TierNote = state.TierNote
	s.PrecisionQuality = state.PrecisionQuality
	s.ProgressToTarget = state.ProgressToTarget
	s.TargetSem = state.TargetSem
	s.Current = state.NextQuestion
}

// rederive rebuilds the chart series from the response list. Runs after
// every applied answer and on completion.
func (s *State) rederive() {
	s.Progression = analytics.BuildProgression(s.Responses)

	var pending *analytics.PendingProbe
	if s.Current != nil {
		pending = &analytics.PendingProbe{
			Difficulty: s.Current.Difficulty,
			Theta:      s.Theta,
		}
	}
	s.Scatter = analytics.BuildScatter(s.Responses, pending, s.Phase == PhaseComplete)
}
