package analytics

import (
	"math"
	"testing"
)

func TestICC_MidpointProperty(t *testing.T) {
	theta := 0.7
	points := ICC(theta, DefaultCurveOptions())
	if len(points) == 0 {
		t.Fatal("no curve points")
	}

	// Find the sample closest to theta; p there should be
	// guessing + (1-guessing)/2 = 0.625.
	closest := points[0]
	for _, pt := range points[1:] {
		if math.Abs(pt.X-theta) < math.Abs(closest.X-theta) {
			closest = pt
		}
	}
	if math.Abs(closest.P-0.625) > 0.02 {
		t.Errorf("p near theta = %f, want ~0.625", closest.P)
	}
}

func TestICC_MidpointExact(t *testing.T) {
	// theta on the sampling grid hits the midpoint exactly.
	points := ICC(0, DefaultCurveOptions())
	for _, pt := range points {
		if almostEqual(pt.X, 0) {
			if !almostEqual(pt.P, 0.625) {
				t.Errorf("p(theta) = %f, want 0.625", pt.P)
			}
			return
		}
	}
	t.Fatal("no sample at x = 0")
}

func TestICC_StrictlyIncreasing(t *testing.T) {
	points := ICC(-1.3, DefaultCurveOptions())
	for i := 1; i < len(points); i++ {
		if points[i].P <= points[i-1].P {
			t.Fatalf("p not increasing at x=%f: %f <= %f",
				points[i].X, points[i].P, points[i-1].P)
		}
	}
}

func TestICC_DomainAndOrder(t *testing.T) {
	points := ICC(0, DefaultCurveOptions())
	if len(points) != 61 {
		t.Errorf("len(points) = %d, want 61", len(points))
	}
	if !almostEqual(points[0].X, -3) {
		t.Errorf("first x = %f, want -3", points[0].X)
	}
	if !almostEqual(points[len(points)-1].X, 3) {
		t.Errorf("last x = %f, want 3", points[len(points)-1].X)
	}
	for _, pt := range points {
		if pt.P < DefaultGuessing || pt.P > 1 {
			t.Errorf("p(%f) = %f, outside [guessing, 1]", pt.X, pt.P)
		}
	}
}

func TestICC_InvalidOptions(t *testing.T) {
	if pts := ICC(0, CurveOptions{Step: 0}); pts != nil {
		t.Error("zero step should produce no points")
	}
	if pts := ICC(0, CurveOptions{XMin: 1, XMax: -1, Step: 0.1}); pts != nil {
		t.Error("inverted domain should produce no points")
	}
}
