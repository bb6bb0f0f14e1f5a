package analytics

import "github.com/rsehgal/adaptest/internal/assessment"

// PointType distinguishes answered scatter points from the in-flight one.
type PointType string

const (
	PointAnswered PointType = "answered"
	PointCurrent  PointType = "current"
)

// ScatterPoint is one mark on the difficulty-vs-ability scatter.
type ScatterPoint struct {
	// X is the item difficulty.
	X float64
	// Y is the ability estimate after the answer (or the current estimate
	// for the pending point).
	Y float64
	// Correct is nil for the pending point.
	Correct *bool
	// Question is the 1-based question number.
	Question int
	Type     PointType
}

// PendingProbe describes the question the adaptive engine is about to ask:
// its difficulty and the ability estimate it was selected at.
type PendingProbe struct {
	Difficulty float64
	Theta      float64
}

// BuildScatter emits one answered point per response, in order. While the
// assessment is still running and a pending probe is known, exactly one
// trailing "current" point is appended. A completed assessment never
// carries the trailing point.
func BuildScatter(responses []assessment.Response, pending *PendingProbe, complete bool) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(responses)+1)
	for i, r := range responses {
		correct := r.IsCorrect
		points = append(points, ScatterPoint{
			X:        r.Difficulty,
			Y:        r.ThetaAfter,
			Correct:  &correct,
			Question: i + 1,
			Type:     PointAnswered,
		})
	}

	if !complete && pending != nil {
		points = append(points, ScatterPoint{
			X:        pending.Difficulty,
			Y:        pending.Theta,
			Question: len(responses) + 1,
			Type:     PointCurrent,
		})
	}

	return points
}
