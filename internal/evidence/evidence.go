// Package evidence reduces per-cell draw distributions to a posterior mean
// plus a discrete evidence-strength category describing how clearly the
// distribution sits on one side of zero.
package evidence

import (
	"errors"
	"fmt"
)

// Category is the discretized confidence that a quantity's sign differs from
// zero, based on credible-interval coverage.
type Category string

const (
	Strong   Category = "strong"   // outside the 95% central interval
	Moderate Category = "moderate" // outside 80%
	Weak     Category = "weak"     // outside 65%
	None     Category = "none"     // zero is well inside the distribution
)

// ErrInconsistentEvidence marks an internal contradiction: a classified cell
// whose mean is exactly zero but whose category claims evidence of an effect.
// This is a logic bug, not bad input; the run must abort.
var ErrInconsistentEvidence = errors.New("inconsistent evidence classification")

// Summary is the reduction of one cell's draws.
type Summary struct {
	Mean     float64  `json:"mean"`
	Category Category `json:"category"`
}

// Classify reduces a draw vector to its mean and evidence category. p is the
// empirical CDF at zero (fraction of draws <= 0); thresholds are applied
// symmetrically to both tails.
func Classify(draws []float64) (Summary, error) {
	if len(draws) == 0 {
		return Summary{}, fmt.Errorf("evidence: classify called on an empty draw vector")
	}

	var sum float64
	atOrBelow := 0
	for _, v := range draws {
		sum += v
		if v <= 0 {
			atOrBelow++
		}
	}
	mean := sum / float64(len(draws))
	p := float64(atOrBelow) / float64(len(draws))

	var cat Category
	switch {
	case p < 0.025 || p > 0.975:
		cat = Strong
	case p < 0.10 || p > 0.90:
		cat = Moderate
	case p < 0.175 || p > 0.825:
		cat = Weak
	default:
		cat = None
	}

	// An exactly-zero mean with a claimed effect means the draws degenerated
	// (the identically-zero exposure case) or an upstream index is corrupt.
	if mean == 0 && cat != None {
		return Summary{}, fmt.Errorf("%w: mean is exactly 0 but category is %q", ErrInconsistentEvidence, cat)
	}

	return Summary{Mean: mean, Category: cat}, nil
}
