package evidence

import (
	"errors"
	"math"
	"testing"
)

// drawsWithP builds n draws of which exactly k are <= 0, all well away from
// zero so the mean is non-zero.
func drawsWithP(n, k int) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		if i < k {
			draws[i] = -5
		} else {
			draws[i] = 3
		}
	}
	return draws
}

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int // draws <= 0
		want Category
	}{
		{"AllPositive", 1000, 0, Strong},
		{"AllNegative", 1000, 1000, Strong},
		{"LowTailStrong", 1000, 24, Strong},      // p = 0.024
		{"LowTailModerate", 1000, 25, Moderate},  // p = 0.025, not < 0.025
		{"Moderate", 1000, 99, Moderate},         // p = 0.099
		{"WeakBoundary", 1000, 100, Weak},        // p = 0.100, not < 0.10
		{"Weak", 1000, 174, Weak},                // p = 0.174
		{"NoneBoundary", 1000, 175, None},        // p = 0.175, not < 0.175
		{"CoinToss", 1000, 500, None},            // p = 0.5
		{"UpperWeak", 1000, 826, Weak},           // p = 0.826
		{"UpperModerate", 1000, 901, Moderate},   // p = 0.901
		{"UpperStrong", 1000, 976, Strong},       // p = 0.976
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Classify(drawsWithP(tt.n, tt.k))
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if s.Category != tt.want {
				t.Errorf("Classify() category = %q, want %q", s.Category, tt.want)
			}
		})
	}
}

func TestClassifyMean(t *testing.T) {
	s, err := Classify([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", s.Mean)
	}
	if s.Category != Strong {
		t.Errorf("Category = %q, want strong (all draws positive)", s.Category)
	}
}

func TestClassifySymmetricAroundZero(t *testing.T) {
	// Uniform grid on [-1, 1]: p ~ 0.5, mass well inside every interval.
	n := 2001
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = -1 + 2*float64(i)/float64(n-1)
	}
	s, err := Classify(draws)
	if err != nil {
		t.Fatal(err)
	}
	if s.Category != None {
		t.Errorf("Category = %q, want none for a symmetric distribution", s.Category)
	}
	if math.Abs(s.Mean) > 1e-12 {
		t.Errorf("Mean = %v, want ~0", s.Mean)
	}
}

func TestClassifyZeroMeanGuard(t *testing.T) {
	// Identically-zero draws: p = 1 so the category would be strong, but the
	// mean is exactly zero. Must trip the fatal guard.
	_, err := Classify([]float64{0, 0, 0, 0})
	if !errors.Is(err, ErrInconsistentEvidence) {
		t.Errorf("Classify(zeros) error = %v, want ErrInconsistentEvidence", err)
	}
}

func TestClassifyBalancedZeroMeanIsFine(t *testing.T) {
	// A zero mean with category none is legitimate, not an inconsistency.
	s, err := Classify([]float64{-1, 1, -2, 2})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if s.Mean != 0 || s.Category != None {
		t.Errorf("got (%v, %q), want (0, none)", s.Mean, s.Category)
	}
}

func TestClassifyEmpty(t *testing.T) {
	if _, err := Classify(nil); err == nil {
		t.Error("Classify(nil) should error; absent cells must be skipped by the caller")
	}
}
