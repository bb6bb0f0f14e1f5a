package assessment

// Payload schemas for server responses. Payloads are validated before
// coercion so malformed bodies fail loudly at the boundary instead of
// leaking zero values into arithmetic downstream.

var responseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question_id":     map[string]any{"type": "string"},
		"selected_option": map[string]any{"type": "string"},
		"correct_option":  map[string]any{"type": "string"},
		"is_correct":      map[string]any{"type": "boolean"},
		"correct":         map[string]any{"type": "boolean"},
		"difficulty":      map[string]any{"type": "number"},
		"theta_before":    map[string]any{"type": "number"},
		"theta_after":     map[string]any{"type": "number"},
		"topic":           map[string]any{"type": "string"},
		"timestamp":       map[string]any{"type": "string"},
	},
	"required": []any{"question_id"},
}

var topicPerformanceSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic":              map[string]any{"type": "string"},
		"theta":              map[string]any{"type": "number"},
		"accuracy":           map[string]any{"type": "number"},
		"questions_answered": map[string]any{"type": "integer"},
		"correct_count":      map[string]any{"type": "integer"},
		"strength_level":     map[string]any{"type": "string"},
	},
	"required": []any{"topic"},
}

// SessionSchema describes the session payload returned by list and peer
// endpoints.
var SessionSchema = &PayloadSchema{
	Name: "session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_id":      map[string]any{"type": "string"},
			"username":        map[string]any{"type": "string"},
			"item_bank":       map[string]any{"type": "string"},
			"status":          map[string]any{"type": "string"},
			"theta":           map[string]any{"type": "number"},
			"final_theta":     map[string]any{"type": "number"},
			"sem":             map[string]any{"type": "number"},
			"final_sem":       map[string]any{"type": "number"},
			"accuracy":        map[string]any{"type": "number"},
			"questions_asked": map[string]any{"type": "integer"},
			"tier":            map[string]any{"type": "string"},
			"responses": map[string]any{
				"type":  "array",
				"items": responseSchema,
			},
		},
		"required": []any{"session_id"},
	},
}

// ResultsSchema describes the final results payload for a completed
// session.
var ResultsSchema = &PayloadSchema{
	Name: "results",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"session_id":      map[string]any{"type": "string"},
			"final_theta":     map[string]any{"type": "number"},
			"final_sem":       map[string]any{"type": "number"},
			"accuracy":        map[string]any{"type": "number"},
			"questions_asked": map[string]any{"type": "integer"},
			"tier":            map[string]any{"type": "string"},
			"precision_quality": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label": map[string]any{"type": "string"},
					"color": map[string]any{"type": "string"},
					"stars": map[string]any{"type": "integer"},
				},
			},
			"responses": map[string]any{
				"type":  "array",
				"items": responseSchema,
			},
			"topic_performance": map[string]any{
				"type":  "array",
				"items": topicPerformanceSchema,
			},
			"learning_roadmap": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"session_id", "responses"},
	},
}
