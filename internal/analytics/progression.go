package analytics

import (
	"math"

	"github.com/rsehgal/adaptest/internal/assessment"
)

// ProgressionPoint is one step of the examinee's ability trajectory.
type ProgressionPoint struct {
	// Question is the 1-based question number.
	Question int
	// Theta is the ability estimate after the answer, rounded to two
	// decimal places for display.
	Theta float64
	// Correct records whether the answer was right.
	Correct bool
}

// BuildProgression maps responses, in submission order, to the per-question
// ability trajectory. The output always has one point per response.
func BuildProgression(responses []assessment.Response) []ProgressionPoint {
	points := make([]ProgressionPoint, len(responses))
	for i, r := range responses {
		points[i] = ProgressionPoint{
			Question: i + 1,
			Theta:    round2(r.ThetaAfter),
			Correct:  r.IsCorrect,
		}
	}
	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
