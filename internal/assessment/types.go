package assessment

import "time"

// Status is the lifecycle state of an assessment session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Response is a single graded answer within a session, in submission order.
// The array index plus one is the question number shown to the user.
type Response struct {
	QuestionID     string    `json:"question_id"`
	SelectedOption string    `json:"selected_option"`
	CorrectOption  string    `json:"correct_option"`
	IsCorrect      bool      `json:"is_correct"`
	Difficulty     float64   `json:"difficulty"`
	ThetaBefore    float64   `json:"theta_before"`
	ThetaAfter     float64   `json:"theta_after"`
	Topic          string    `json:"topic,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// PrecisionQuality is the server's label for how precise the final theta
// estimate is. It is display metadata and is passed through unchanged.
type PrecisionQuality struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Stars int    `json:"stars"`
}

// Session is one examinee's run through an item bank. Ability estimation is
// server-side; theta and SEM here are already-computed values.
type Session struct {
	SessionID      string     `json:"session_id"`
	Username       string     `json:"username"`
	ItemBank       string     `json:"item_bank"`
	Status         Status     `json:"status"`
	FinalTheta     float64    `json:"final_theta"`
	FinalSem       float64    `json:"final_sem"`
	Accuracy       float64    `json:"accuracy"`
	QuestionsAsked int        `json:"questions_asked"`
	Tier           string     `json:"tier"`
	Responses      []Response `json:"responses"`
}

// TopicPerformance aggregates a session's results for one topic.
type TopicPerformance struct {
	Topic             string  `json:"topic"`
	Theta             float64 `json:"theta"`
	Accuracy          float64 `json:"accuracy"`
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectCount      int     `json:"correct_count"`
	StrengthLevel     string  `json:"strength_level"`
}

// Question is the item currently posed by the adaptive engine.
type Question struct {
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Difficulty float64  `json:"difficulty"`
	Topic      string   `json:"topic,omitempty"`
}

// SessionState is the server's view of an in-flight session after a submit:
// the updated estimate plus the next question (nil when the session ended).
type SessionState struct {
	SessionID        string           `json:"session_id"`
	Sequence         int              `json:"sequence"`
	Theta            float64          `json:"theta"`
	Sem              float64          `json:"sem"`
	Accuracy         float64          `json:"accuracy"`
	QuestionsAsked   int              `json:"questions_asked"`
	Status           Status           `json:"status"`
	Tier             string           `json:"tier"`
	EstimatedTier    string           `json:"estimated_tier"`
	TierNote         string           `json:"tier_note"`
	PrecisionQuality PrecisionQuality `json:"precision_quality"`
	ProgressToTarget float64          `json:"progress_to_target"`
	TargetSem        float64          `json:"target_sem"`
	LastResponse     *Response        `json:"last_response,omitempty"`
	NextQuestion     *Question        `json:"next_question,omitempty"`
}

// Results is the final payload for a completed session.
type Results struct {
	SessionID        string             `json:"session_id"`
	FinalTheta       float64            `json:"final_theta"`
	FinalSem         float64            `json:"final_sem"`
	Accuracy         float64            `json:"accuracy"`
	QuestionsAsked   int                `json:"questions_asked"`
	Tier             string             `json:"tier"`
	PrecisionQuality PrecisionQuality   `json:"precision_quality"`
	Responses        []Response         `json:"responses"`
	TopicPerformance []TopicPerformance `json:"topic_performance"`
	LearningRoadmap  []string           `json:"learning_roadmap,omitempty"`
}

// ItemBank is a selectable pool of calibrated items.
type ItemBank struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ItemCount     int    `json:"item_count"`
	SessionsTaken int    `json:"sessions_taken"`
}

// PeerPool filters sessions down to the comparison population for one item
// bank: completed sessions only. The population deliberately keeps the
// current user's own prior sessions.
func PeerPool(sessions []Session, itemBank string) []Session {
	peers := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.ItemBank == itemBank && s.Status == StatusCompleted {
			peers = append(peers, s)
		}
	}
	return peers
}
