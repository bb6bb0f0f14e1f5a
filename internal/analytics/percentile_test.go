package analytics

import "testing"

func TestPercentile_KnownRank(t *testing.T) {
	peers := []float64{-2, -1, 0, 1, 2, 3}
	// First index with peers[i] >= 0 is 2; floor(2/6*100) = 33.
	got := Percentile(0, peers)
	if got != 33 {
		t.Errorf("Percentile = %d, want 33", got)
	}
}

func TestPercentile_AboveAllPeers(t *testing.T) {
	got := Percentile(5, []float64{-1, 0, 1})
	if got != 100 {
		t.Errorf("Percentile = %d, want 100", got)
	}
}

func TestPercentile_BelowAllPeers(t *testing.T) {
	got := Percentile(-10, []float64{-1, 0, 1})
	if got != 0 {
		t.Errorf("Percentile = %d, want 0", got)
	}
}

func TestPercentile_EmptyPeersReturnsNeutral(t *testing.T) {
	got := Percentile(1.5, nil)
	if got != NeutralPercentile {
		t.Errorf("Percentile = %d, want %d", got, NeutralPercentile)
	}
}

func TestPercentile_BoundedAndMonotonic(t *testing.T) {
	peers := []float64{-2.5, -1, -1, 0, 0.5, 1.2, 2, 2, 3}
	prev := -1
	for v := -4.0; v <= 4.0; v += 0.25 {
		p := Percentile(v, peers)
		if p < 0 || p > 100 {
			t.Fatalf("Percentile(%f) = %d, out of [0, 100]", v, p)
		}
		if p < prev {
			t.Fatalf("Percentile(%f) = %d, decreased from %d", v, p, prev)
		}
		prev = p
	}
}

func TestEfficiencyPercentile_LowerIsBetter(t *testing.T) {
	counts := []float64{10, 15, 20, 25, 30, 40}
	fast := EfficiencyPercentile(10, counts)
	slow := EfficiencyPercentile(40, counts)
	if fast <= slow {
		t.Errorf("fast=%d should outrank slow=%d", fast, slow)
	}
	if fast != 100 {
		t.Errorf("EfficiencyPercentile(10) = %d, want 100", fast)
	}
}

func TestEfficiencyPercentile_EmptyPeers(t *testing.T) {
	got := EfficiencyPercentile(12, nil)
	if got != 50 {
		t.Errorf("EfficiencyPercentile = %d, want 50", got)
	}
}
