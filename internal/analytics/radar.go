package analytics

import (
	"sort"

	"github.com/rsehgal/adaptest/internal/assessment"
)

// RadarRow is one topic's spoke values, both on a 0-100 scale.
type RadarRow struct {
	Topic string
	// AccuracyPct is accuracy mapped from [0, 1] to [0, 100].
	AccuracyPct float64
	// ProficiencyPct is theta mapped from [-3, 3] to [0, 100].
	ProficiencyPct float64
}

// NormalizeRadar maps per-topic performance onto the common 0-100 radar
// scale, sorted by topic for stable display order.
//
// Thetas outside [-3, 3] normalize outside [0, 100]; callers that need a
// bounded value must clamp at the display layer, not here.
func NormalizeRadar(topics []assessment.TopicPerformance) []RadarRow {
	rows := make([]RadarRow, len(topics))
	for i, tp := range topics {
		rows[i] = RadarRow{
			Topic:          tp.Topic,
			AccuracyPct:    tp.Accuracy * 100,
			ProficiencyPct: ProficiencyFromTheta(tp.Theta),
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Topic < rows[j].Topic })
	return rows
}

// ProficiencyFromTheta maps ability on [-3, 3] to a 0-100 proficiency.
func ProficiencyFromTheta(theta float64) float64 {
	return (theta - ThetaMin) / (ThetaMax - ThetaMin) * 100
}

// ThetaFromProficiency inverts ProficiencyFromTheta, recovering the ability
// behind a radar value for tooltips and labels.
func ThetaFromProficiency(pct float64) float64 {
	return pct/100*(ThetaMax-ThetaMin) + ThetaMin
}
