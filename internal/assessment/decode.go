package assessment

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// PayloadSchema pairs a name with a JSON Schema definition for one server
// payload shape.
type PayloadSchema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidatePayload validates raw JSON against the given schema. Returns nil
// when validation passes, *ErrInvalidPayload otherwise.
func ValidatePayload(schema *PayloadSchema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{Body: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &ErrInvalidPayload{Body: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidPayload{Body: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *PayloadSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// rawSession mirrors the loosely-shaped session objects the server emits.
// Field names drifted across server versions (theta vs final_theta,
// is_correct vs correct), so coercion accepts both spellings and defaults
// missing numerics to zero.
type rawSession struct {
	SessionID      string        `json:"session_id"`
	Username       string        `json:"username"`
	ItemBank       string        `json:"item_bank"`
	Status         string        `json:"status"`
	Theta          *float64      `json:"theta"`
	FinalTheta     *float64      `json:"final_theta"`
	Sem            *float64      `json:"sem"`
	FinalSem       *float64      `json:"final_sem"`
	Accuracy       float64       `json:"accuracy"`
	QuestionsAsked int           `json:"questions_asked"`
	Tier           string        `json:"tier"`
	Responses      []rawResponse `json:"responses"`
}

type rawResponse struct {
	QuestionID     string  `json:"question_id"`
	SelectedOption string  `json:"selected_option"`
	CorrectOption  string  `json:"correct_option"`
	IsCorrect      *bool   `json:"is_correct"`
	Correct        *bool   `json:"correct"`
	Difficulty     float64 `json:"difficulty"`
	ThetaBefore    float64 `json:"theta_before"`
	ThetaAfter     float64 `json:"theta_after"`
	Topic          string  `json:"topic"`
	Timestamp      string  `json:"timestamp"`
}

// DecodeSession validates and coerces a loose session payload into the
// typed record.
func DecodeSession(raw []byte) (Session, error) {
	if err := ValidatePayload(SessionSchema, raw); err != nil {
		return Session{}, err
	}

	var rs rawSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		return Session{}, &ErrInvalidPayload{Body: raw, Err: err}
	}
	return coerceSession(rs), nil
}

// DecodeSessions decodes an array of loose session payloads.
func DecodeSessions(raw []byte) ([]Session, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ErrInvalidPayload{Body: raw, Err: err}
	}
	sessions := make([]Session, 0, len(items))
	for _, item := range items {
		s, err := DecodeSession(item)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// DecodeResults validates and coerces a final results payload.
func DecodeResults(raw []byte) (Results, error) {
	if err := ValidatePayload(ResultsSchema, raw); err != nil {
		return Results{}, err
	}

	var rr struct {
		SessionID        string             `json:"session_id"`
		FinalTheta       float64            `json:"final_theta"`
		FinalSem         float64            `json:"final_sem"`
		Accuracy         float64            `json:"accuracy"`
		QuestionsAsked   int                `json:"questions_asked"`
		Tier             string             `json:"tier"`
		PrecisionQuality PrecisionQuality   `json:"precision_quality"`
		Responses        []rawResponse      `json:"responses"`
		TopicPerformance []TopicPerformance `json:"topic_performance"`
		LearningRoadmap  []string           `json:"learning_roadmap"`
	}
	if err := json.Unmarshal(raw, &rr); err != nil {
		return Results{}, &ErrInvalidPayload{Body: raw, Err: err}
	}

	responses := make([]Response, len(rr.Responses))
	for i, r := range rr.Responses {
		responses[i] = coerceResponse(r)
	}

	return Results{
		SessionID:        rr.SessionID,
		FinalTheta:       rr.FinalTheta,
		FinalSem:         rr.FinalSem,
		Accuracy:         rr.Accuracy,
		QuestionsAsked:   rr.QuestionsAsked,
		Tier:             rr.Tier,
		PrecisionQuality: rr.PrecisionQuality,
		Responses:        responses,
		TopicPerformance: rr.TopicPerformance,
		LearningRoadmap:  rr.LearningRoadmap,
	}, nil
}

func coerceSession(rs rawSession) Session {
	responses := make([]Response, len(rs.Responses))
	for i, r := range rs.Responses {
		responses[i] = coerceResponse(r)
	}

	return Session{
		SessionID:      rs.SessionID,
		Username:       rs.Username,
		ItemBank:       rs.ItemBank,
		Status:         coerceStatus(rs.Status),
		FinalTheta:     firstOf(rs.FinalTheta, rs.Theta),
		FinalSem:       firstOf(rs.FinalSem, rs.Sem),
		Accuracy:       rs.Accuracy,
		QuestionsAsked: rs.QuestionsAsked,
		Tier:           rs.Tier,
		Responses:      responses,
	}
}

func coerceResponse(r rawResponse) Response {
	correct := false
	switch {
	case r.IsCorrect != nil:
		correct = *r.IsCorrect
	case r.Correct != nil:
		correct = *r.Correct
	}

	ts, _ := time.Parse(time.RFC3339, r.Timestamp)

	return Response{
		QuestionID:     r.QuestionID,
		SelectedOption: r.SelectedOption,
		CorrectOption:  r.CorrectOption,
		IsCorrect:      correct,
		Difficulty:     r.Difficulty,
		ThetaBefore:    r.ThetaBefore,
		ThetaAfter:     r.ThetaAfter,
		Topic:          r.Topic,
		Timestamp:      ts,
	}
}

func coerceStatus(s string) Status {
	switch s {
	case "completed", "complete", "finished":
		return StatusCompleted
	default:
		return StatusActive
	}
}

// firstOf returns the first non-nil value, or 0 when both are missing.
func firstOf(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
