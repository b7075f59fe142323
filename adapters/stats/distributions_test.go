package stats

import (
	"math"
	"testing"
)

func TestTTestPValue_MatchesCriticalValue(t *testing.T) {
	// t=2.228 with df=10 is the textbook two-tailed 5% critical value.
	p := TTestPValue(2.228, 10)
	if math.Abs(p-0.05) > 0.001 {
		t.Fatalf("expected p near 0.05 at the critical value, got %.5f", p)
	}
	if TTestPValue(0, 10) != 1 {
		t.Fatalf("t=0 must give p=1, got %v", TTestPValue(0, 10))
	}
}

func TestFTestPValue_Bounds(t *testing.T) {
	if p := FTestPValue(0, 2, 10); p != 1 {
		t.Fatalf("F=0 must give p=1, got %v", p)
	}
	if p := FTestPValue(math.Inf(1), 2, 10); p != 0 {
		t.Fatalf("infinite F must give p=0, got %v", p)
	}
	p := FTestPValue(4.10, 2, 10)
	// F(2,10) upper 5% point is 4.10.
	if math.Abs(p-0.05) > 0.002 {
		t.Fatalf("expected p near 0.05 at the critical value, got %.5f", p)
	}
}

func TestChiSquarePValue_CriticalValue(t *testing.T) {
	// chi2(1) upper 5% point is 3.841.
	p := ChiSquarePValue(3.841, 1)
	if math.Abs(p-0.05) > 0.001 {
		t.Fatalf("expected p near 0.05 at the critical value, got %.5f", p)
	}
}

func TestStudentizedRangeCDF_MatchesTabledQuantile(t *testing.T) {
	// q_{0.95}(k=3, df=12) = 3.77 from standard tables.
	p := StudentizedRangeCDF(3.77, 3, 12)
	if math.Abs(p-0.95) > 0.01 {
		t.Fatalf("expected CDF near 0.95 at the tabled quantile, got %.5f", p)
	}
	if StudentizedRangeCDF(0, 3, 12) != 0 {
		t.Fatalf("CDF at zero must be 0")
	}
	if p := StudentizedRangeCDF(100, 3, 12); p < 0.9999 {
		t.Fatalf("CDF far in the tail must approach 1, got %.6f", p)
	}
}

func TestStudentizedRangeCDF_MonotoneInQ(t *testing.T) {
	prev := 0.0
	for q := 0.5; q <= 6; q += 0.5 {
		p := StudentizedRangeCDF(q, 4, 20)
		if p < prev {
			t.Fatalf("CDF not monotone at q=%.1f: %.6f < %.6f", q, p, prev)
		}
		prev = p
	}
}

func TestAverageRanks_Ties(t *testing.T) {
	ranks := averageRanks([]float64{10, 20, 20, 30})
	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if ranks[i] != want[i] {
			t.Fatalf("rank[%d]: expected %v, got %v (all: %v)", i, want[i], ranks[i], ranks)
		}
	}
}
