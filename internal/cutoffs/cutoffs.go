// Package cutoffs derives the categorical bins used downstream to size plot
// symbols: fixed log-scale magnitude edges for the modeled quantities, and
// per-indicator empirical quantile edges for exposure. Both share one Bin
// definition so the boundary semantics exist in exactly one place.
package cutoffs

import (
	"fmt"
	"math"
	"slices"

	"habvuln/internal/axes"
	"habvuln/internal/dataset"
)

// Edges are three ascending cut points defining four buckets.
type Edges [3]float64

// Bin assigns a bucket 1..4: bucket k+1 at the first edge with value <= edge,
// bucket 4 past the last edge.
func (e Edges) Bin(value float64) int {
	for k, edge := range e {
		if value <= edge {
			return k + 1
		}
	}
	return 4
}

// Magnitude holds the fixed effect-size edges on the log-trend scale,
// corresponding to 0.1%, 1% and 5% annual proportional change. Binning is on
// the absolute value: the buckets read implausibly small, small, moderate,
// large.
type Magnitude struct {
	Edges Edges `json:"edges"`
}

// NewMagnitude returns the fixed log-scale magnitude cutoffs.
func NewMagnitude() Magnitude {
	return Magnitude{Edges: Edges{
		math.Log(1.001),
		math.Log(1.01),
		math.Log(1.05),
	}}
}

// Bin buckets an effect size by absolute magnitude.
func (m Magnitude) Bin(value float64) int {
	return m.Edges.Bin(math.Abs(value))
}

// Exposure holds per-indicator empirical quantile edges derived from the
// watershed reference table.
type Exposure struct {
	ByIndicator map[string]Edges `json:"by_indicator"`
}

// DeriveExposure computes 25/50/75 percentile edges per indicator over the
// reference watersheds: excluded units are dropped, negatives clamped to
// zero, and only strictly positive values enter the quantile.
func DeriveExposure(sheds []dataset.Watershed, excluded map[string]bool, ax *axes.Set) (Exposure, error) {
	out := Exposure{ByIndicator: make(map[string]Edges, ax.Indicator.Len())}

	for h := 0; h < ax.Indicator.Len(); h++ {
		var values []float64
		for _, w := range sheds {
			if excluded[w.ID] {
				continue
			}
			v := w.Pressures[h]
			if v < 0 {
				v = 0
			}
			if v > 0 {
				values = append(values, v)
			}
		}
		name := ax.Indicator.Level(h)
		if len(values) == 0 {
			return Exposure{}, fmt.Errorf("cutoffs: indicator %q has no positive reference values", name)
		}
		slices.Sort(values)
		out.ByIndicator[name] = Edges{
			Quantile(values, 0.25),
			Quantile(values, 0.50),
			Quantile(values, 0.75),
		}
	}
	return out, nil
}

// Bin buckets an exposure value against its indicator's edges.
func (e Exposure) Bin(indicator string, value float64) (int, error) {
	edges, ok := e.ByIndicator[indicator]
	if !ok {
		return 0, fmt.Errorf("cutoffs: no exposure edges for indicator %q", indicator)
	}
	return edges.Bin(value), nil
}

// Quantile returns the empirical quantile of an ascending-sorted slice using
// linear interpolation between order statistics at h = (n-1)p + 1.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
