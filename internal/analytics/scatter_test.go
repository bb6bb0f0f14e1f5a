package analytics

import (
	"testing"

	"github.com/rsehgal/adaptest/internal/assessment"
)

func scatterResponses() []assessment.Response {
	return []assessment.Response{
		{Difficulty: -0.5, ThetaAfter: 0.2, IsCorrect: true},
		{Difficulty: 0.4, ThetaAfter: -0.1, IsCorrect: false},
	}
}

func TestBuildScatter_AnsweredPoints(t *testing.T) {
	points := BuildScatter(scatterResponses(), nil, true)

	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	for i, p := range points {
		if p.Type != PointAnswered {
			t.Errorf("point %d type = %s, want answered", i, p.Type)
		}
		if p.Correct == nil {
			t.Errorf("point %d has no correctness tag", i)
		}
		if p.Question != i+1 {
			t.Errorf("point %d question = %d, want %d", i, p.Question, i+1)
		}
	}
	if !almostEqual(points[0].X, -0.5) || !almostEqual(points[0].Y, 0.2) {
		t.Errorf("point 0 = (%f, %f), want (-0.5, 0.2)", points[0].X, points[0].Y)
	}
}

func TestBuildScatter_PendingProbeWhileRunning(t *testing.T) {
	pending := &PendingProbe{Difficulty: 0.9, Theta: 0.1}
	points := BuildScatter(scatterResponses(), pending, false)

	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}
	last := points[2]
	if last.Type != PointCurrent {
		t.Errorf("trailing point type = %s, want current", last.Type)
	}
	if last.Correct != nil {
		t.Error("pending point must not carry a correctness tag")
	}
	if last.Question != 3 {
		t.Errorf("pending question = %d, want 3", last.Question)
	}
	if !almostEqual(last.X, 0.9) || !almostEqual(last.Y, 0.1) {
		t.Errorf("pending point = (%f, %f), want (0.9, 0.1)", last.X, last.Y)
	}
}

func TestBuildScatter_NoPendingPointOnceComplete(t *testing.T) {
	pending := &PendingProbe{Difficulty: 0.9, Theta: 0.1}
	points := BuildScatter(scatterResponses(), pending, true)

	for _, p := range points {
		if p.Type == PointCurrent {
			t.Fatal("completed assessment must not emit a current point")
		}
	}
}

func TestBuildScatter_NoPendingProbeKnown(t *testing.T) {
	points := BuildScatter(scatterResponses(), nil, false)
	if len(points) != 2 {
		t.Errorf("len(points) = %d, want 2", len(points))
	}
}
