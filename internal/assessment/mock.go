package assessment

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// Mock is a deterministic in-process Client for tests and the offline demo
// mode. It runs a crude adaptive walk: each correct answer raises theta
// and probes a harder item, each wrong answer does the opposite, and the
// session ends after MaxQuestions.
type Mock struct {
	// MaxQuestions ends the mock session after this many answers.
	MaxQuestions int
	// Seed makes the synthetic peer pool reproducible.
	Seed uint64

	mu       sync.Mutex
	sessions map[string]*mockSession
	// Calls records every Submit for assertions.
	Calls []string
}

type mockSession struct {
	itemBank  string
	sequence  int
	theta     float64
	correct   int
	responses []Response
	question  *Question
	done      bool
}

// NewMock creates a mock client.
func NewMock() *Mock {
	return &Mock{MaxQuestions: 10, Seed: 1, sessions: make(map[string]*mockSession)}
}

var _ Client = (*Mock)(nil)

func (m *Mock) Login(_ context.Context, username, _ string) error {
	if username == "" {
		return &ErrUnauthorized{}
	}
	return nil
}

func (m *Mock) Banks(_ context.Context) ([]ItemBank, error) {
	return []ItemBank{
		{ID: "algebra-1", Name: "Algebra I", ItemCount: 240, SessionsTaken: 57},
		{ID: "geometry-1", Name: "Geometry", ItemCount: 180, SessionsTaken: 34},
	}, nil
}

func (m *Mock) Start(_ context.Context, itemBank string) (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms := &mockSession{itemBank: itemBank}
	ms.question = m.nextQuestion(ms)
	id := uuid.NewString()
	m.sessions[id] = ms

	return m.state(id, ms), nil
}

func (m *Mock) Submit(_ context.Context, sessionID, questionID, option string) (*SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, sessionID+"/"+questionID)

	ms, ok := m.sessions[sessionID]
	if !ok || ms.done || ms.question == nil || ms.question.QuestionID != questionID {
		return nil, &ErrInvalidPayload{Err: fmt.Errorf("no such pending question %q", questionID)}
	}

	correct := option == "A" // the mock's answer key is always option A
	before := ms.theta
	if correct {
		ms.theta += 0.4 / float64(1+len(ms.responses)/3)
		ms.correct++
	} else {
		ms.theta -= 0.4 / float64(1+len(ms.responses)/3)
	}

	ms.responses = append(ms.responses, Response{
		QuestionID:     questionID,
		SelectedOption: option,
		CorrectOption:  "A",
		IsCorrect:      correct,
		Difficulty:     ms.question.Difficulty,
		ThetaBefore:    before,
		ThetaAfter:     ms.theta,
		Topic:          ms.question.Topic,
	})
	ms.sequence++

	if len(ms.responses) >= m.MaxQuestions {
		ms.done = true
		ms.question = nil
	} else {
		ms.question = m.nextQuestion(ms)
	}

	return m.state(sessionID, ms), nil
}

func (m *Mock) Results(_ context.Context, sessionID string) (*Results, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms, ok := m.sessions[sessionID]
	if !ok || !ms.done {
		return nil, &ErrInvalidPayload{Err: fmt.Errorf("session %q is not completed", sessionID)}
	}

	return &Results{
		SessionID:        sessionID,
		FinalTheta:       ms.theta,
		FinalSem:         0.31,
		Accuracy:         float64(ms.correct) / float64(len(ms.responses)),
		QuestionsAsked:   len(ms.responses),
		Tier:             "Intermediate",
		PrecisionQuality: PrecisionQuality{Label: "Good", Color: "green", Stars: 4},
		Responses:        append([]Response(nil), ms.responses...),
		TopicPerformance: m.topicPerformance(ms),
	}, nil
}

// PeerSessions synthesizes a reproducible peer population around a
// slightly-above-average ability.
func (m *Mock) PeerSessions(_ context.Context, itemBank string) ([]Session, error) {
	rng := rand.New(rand.NewPCG(m.Seed, m.Seed))
	peers := make([]Session, 0, 40)
	for i := 0; i < 40; i++ {
		theta := rng.NormFloat64() * 0.9
		asked := 8 + rng.IntN(20)
		peers = append(peers, Session{
			SessionID:      fmt.Sprintf("peer-%02d", i),
			ItemBank:       itemBank,
			Status:         StatusCompleted,
			FinalTheta:     theta,
			FinalSem:       0.25 + rng.Float64()*0.2,
			Accuracy:       clamp01(0.55 + theta*0.1 + rng.Float64()*0.2),
			QuestionsAsked: asked,
		})
	}
	return peers, nil
}

func (m *Mock) nextQuestion(ms *mockSession) *Question {
	topics := []string{"equations", "functions", "inequalities"}
	n := len(ms.responses)
	return &Question{
		QuestionID: fmt.Sprintf("q-%03d", n+1),
		Text:       fmt.Sprintf("Sample question %d", n+1),
		Options:    []string{"first option", "second option", "third option", "fourth option"},
		Difficulty: math.Round(ms.theta*100) / 100,
		Topic:      topics[n%len(topics)],
	}
}

func (m *Mock) state(id string, ms *mockSession) *SessionState {
	status := StatusActive
	if ms.done {
		status = StatusCompleted
	}
	var last *Response
	if n := len(ms.responses); n > 0 {
		r := ms.responses[n-1]
		last = &r
	}
	accuracy := 0.0
	if len(ms.responses) > 0 {
		accuracy = float64(ms.correct) / float64(len(ms.responses))
	}

	return &SessionState{
		SessionID:        id,
		Sequence:         ms.sequence,
		Theta:            ms.theta,
		Sem:              math.Max(0.3, 1.0-0.07*float64(len(ms.responses))),
		Accuracy:         accuracy,
		QuestionsAsked:   len(ms.responses),
		Status:           status,
		Tier:             "Intermediate",
		EstimatedTier:    "Intermediate",
		PrecisionQuality: PrecisionQuality{Label: "Good", Color: "green", Stars: 4},
		ProgressToTarget: clamp01(float64(len(ms.responses)) / float64(m.MaxQuestions)),
		TargetSem:        0.3,
		LastResponse:     last,
		NextQuestion:     ms.question,
	}
}

func (m *Mock) topicPerformance(ms *mockSession) []TopicPerformance {
	byTopic := make(map[string]*TopicPerformance)
	order := []string{}
	for _, r := range ms.responses {
		tp, ok := byTopic[r.Topic]
		if !ok {
			tp = &TopicPerformance{Topic: r.Topic, Theta: ms.theta}
			byTopic[r.Topic] = tp
			order = append(order, r.Topic)
		}
		tp.QuestionsAnswered++
		if r.IsCorrect {
			tp.CorrectCount++
		}
	}

	out := make([]TopicPerformance, 0, len(order))
	for _, topic := range order {
		tp := byTopic[topic]
		tp.Accuracy = float64(tp.CorrectCount) / float64(tp.QuestionsAnswered)
		switch {
		case tp.Accuracy >= 0.8:
			tp.StrengthLevel = "strong"
		case tp.Accuracy >= 0.5:
			tp.StrengthLevel = "developing"
		default:
			tp.StrengthLevel = "weak"
		}
		out = append(out, *tp)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
