package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSession_CoercesLooseFields(t *testing.T) {
	raw := []byte(`{
		"session_id": "s-1",
		"username": "ada",
		"item_bank": "algebra-1",
		"status": "completed",
		"theta": 1.25,
		"sem": 0.3,
		"accuracy": 0.8,
		"questions_asked": 12,
		"tier": "Advanced",
		"responses": [
			{"question_id": "q-1", "correct": true, "difficulty": 0.5, "theta_after": 0.6},
			{"question_id": "q-2", "is_correct": false, "theta_after": 0.4}
		]
	}`)

	s, err := DecodeSession(raw)
	require.NoError(t, err)

	assert.Equal(t, "s-1", s.SessionID)
	assert.Equal(t, StatusCompleted, s.Status)
	// "theta"/"sem" spellings coerce into the final fields.
	assert.Equal(t, 1.25, s.FinalTheta)
	assert.Equal(t, 0.3, s.FinalSem)

	require.Len(t, s.Responses, 2)
	// Both "correct" and "is_correct" spellings are accepted.
	assert.True(t, s.Responses[0].IsCorrect)
	assert.False(t, s.Responses[1].IsCorrect)
	// Missing difficulty defaults to zero, not NaN.
	assert.Equal(t, 0.0, s.Responses[1].Difficulty)
}

func TestDecodeSession_MissingNumericsDefaultToZero(t *testing.T) {
	s, err := DecodeSession([]byte(`{"session_id": "s-2"}`))
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.FinalTheta)
	assert.Equal(t, 0.0, s.FinalSem)
	assert.Equal(t, 0.0, s.Accuracy)
	assert.Equal(t, 0, s.QuestionsAsked)
	assert.Equal(t, StatusActive, s.Status)
}

func TestDecodeSession_RejectsWrongTypes(t *testing.T) {
	_, err := DecodeSession([]byte(`{"session_id": "s-3", "theta": "high"}`))
	require.Error(t, err)

	var payloadErr *ErrInvalidPayload
	assert.ErrorAs(t, err, &payloadErr)
}

func TestDecodeSession_RejectsMissingID(t *testing.T) {
	_, err := DecodeSession([]byte(`{"accuracy": 0.5}`))
	require.Error(t, err)
}

func TestDecodeSessions_Array(t *testing.T) {
	raw := []byte(`[
		{"session_id": "a", "status": "completed", "final_theta": 0.1},
		{"session_id": "b", "status": "active"}
	]`)
	sessions, err := DecodeSessions(raw)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, StatusCompleted, sessions[0].Status)
	assert.Equal(t, 0.1, sessions[0].FinalTheta)
}

func TestDecodeResults_FullPayload(t *testing.T) {
	raw := []byte(`{
		"session_id": "s-9",
		"final_theta": 0.7,
		"final_sem": 0.29,
		"accuracy": 0.75,
		"questions_asked": 8,
		"tier": "Intermediate",
		"precision_quality": {"label": "Good", "color": "green", "stars": 4},
		"responses": [
			{"question_id": "q-1", "is_correct": true, "difficulty": 0.2, "theta_after": 0.3, "topic": "algebra"}
		],
		"topic_performance": [
			{"topic": "algebra", "theta": 0.3, "accuracy": 1.0, "questions_answered": 1, "correct_count": 1, "strength_level": "strong"}
		],
		"learning_roadmap": ["review inequalities"]
	}`)

	results, err := DecodeResults(raw)
	require.NoError(t, err)

	assert.Equal(t, 0.7, results.FinalTheta)
	assert.Equal(t, "Good", results.PrecisionQuality.Label)
	require.Len(t, results.Responses, 1)
	assert.Equal(t, "algebra", results.Responses[0].Topic)
	require.Len(t, results.TopicPerformance, 1)
	assert.Equal(t, "strong", results.TopicPerformance[0].StrengthLevel)
}

func TestDecodeResults_RequiresResponses(t *testing.T) {
	_, err := DecodeResults([]byte(`{"session_id": "s-9"}`))
	require.Error(t, err)
}

func TestPeerPool_FiltersBankAndStatus(t *testing.T) {
	sessions := []Session{
		{SessionID: "a", ItemBank: "algebra-1", Status: StatusCompleted},
		{SessionID: "b", ItemBank: "algebra-1", Status: StatusActive},
		{SessionID: "c", ItemBank: "geometry-1", Status: StatusCompleted},
		{SessionID: "d", ItemBank: "algebra-1", Status: StatusCompleted},
	}

	peers := PeerPool(sessions, "algebra-1")
	require.Len(t, peers, 2)
	assert.Equal(t, "a", peers[0].SessionID)
	assert.Equal(t, "d", peers[1].SessionID)
}
