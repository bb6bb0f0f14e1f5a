package analytics

import (
	"testing"

	"github.com/rsehgal/adaptest/internal/assessment"
)

func TestNormalizeRadar_Scales(t *testing.T) {
	rows := NormalizeRadar([]assessment.TopicPerformance{
		{Topic: "algebra", Theta: 0, Accuracy: 0.8},
		{Topic: "geometry", Theta: 3, Accuracy: 1.0},
		{Topic: "fractions", Theta: -3, Accuracy: 0.25},
	})

	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	// Sorted by topic.
	if rows[0].Topic != "algebra" || rows[1].Topic != "fractions" || rows[2].Topic != "geometry" {
		t.Fatalf("unexpected order: %+v", rows)
	}

	if !almostEqual(rows[0].ProficiencyPct, 50) {
		t.Errorf("theta 0 -> %f, want 50", rows[0].ProficiencyPct)
	}
	if !almostEqual(rows[0].AccuracyPct, 80) {
		t.Errorf("accuracy 0.8 -> %f, want 80", rows[0].AccuracyPct)
	}
	if !almostEqual(rows[1].ProficiencyPct, 0) {
		t.Errorf("theta -3 -> %f, want 0", rows[1].ProficiencyPct)
	}
	if !almostEqual(rows[2].ProficiencyPct, 100) {
		t.Errorf("theta 3 -> %f, want 100", rows[2].ProficiencyPct)
	}
}

func TestThetaFromProficiency_RoundTrips(t *testing.T) {
	for _, theta := range []float64{-3, -1, 0, 1, 3} {
		got := ThetaFromProficiency(ProficiencyFromTheta(theta))
		if !almostEqual(got, theta) {
			t.Errorf("round trip of %f = %f", theta, got)
		}
	}
}

func TestProficiencyFromTheta_OutOfRangeIsNotClamped(t *testing.T) {
	// Out-of-domain thetas map outside [0, 100]; clamping is a display
	// concern, not a normalization one.
	if p := ProficiencyFromTheta(4); p <= 100 {
		t.Errorf("theta 4 -> %f, want > 100", p)
	}
	if p := ProficiencyFromTheta(-4); p >= 0 {
		t.Errorf("theta -4 -> %f, want < 0", p)
	}
}
