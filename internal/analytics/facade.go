package analytics

import (
	"sort"

	"github.com/rsehgal/adaptest/internal/assessment"
)

// ComparativeMetrics bundles everything the results dashboard needs to
// place one completed session inside its peer population.
type ComparativeMetrics struct {
	// PeerCount is the size of the comparison population.
	PeerCount int

	// Percentiles. Efficiency uses the lower-is-better ranking: finishing
	// in fewer questions ranks higher.
	ThetaPercentile      int
	AccuracyPercentile   int
	EfficiencyPercentile int

	// Peer distributions with the user's bin flagged.
	ThetaHistogram    []HistogramBin
	AccuracyHistogram []HistogramBin
	QuestionHistogram []HistogramBin

	// Peer averages.
	AvgTheta     float64
	AvgAccuracy  float64
	AvgQuestions float64
}

// Compare ranks a completed session against its peer pool. It only
// composes the engines in this package; tier and precision-quality labels
// come from the server and are never recomputed here.
//
// An empty peer pool yields neutral percentiles, nil histograms, and zero
// averages.
func Compare(session assessment.Session, peers []assessment.Session) ComparativeMetrics {
	thetas := make([]float64, 0, len(peers))
	accuracies := make([]float64, 0, len(peers))
	questions := make([]float64, 0, len(peers))
	for _, p := range peers {
		thetas = append(thetas, p.FinalTheta)
		accuracies = append(accuracies, p.Accuracy)
		questions = append(questions, float64(p.QuestionsAsked))
	}
	sort.Float64s(thetas)
	sort.Float64s(accuracies)
	sort.Float64s(questions)

	asked := float64(session.QuestionsAsked)

	return ComparativeMetrics{
		PeerCount: len(peers),

		ThetaPercentile:      Percentile(session.FinalTheta, thetas),
		AccuracyPercentile:   Percentile(session.Accuracy, accuracies),
		EfficiencyPercentile: EfficiencyPercentile(asked, questions),

		ThetaHistogram:    BuildHistogram(thetas, session.FinalTheta, DefaultBinCount),
		AccuracyHistogram: BuildHistogram(accuracies, session.Accuracy, DefaultBinCount),
		QuestionHistogram: BuildHistogram(questions, asked, DefaultBinCount),

		AvgTheta:     mean(thetas),
		AvgAccuracy:  mean(accuracies),
		AvgQuestions: mean(questions),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
