// Package resample draws the joint posterior/data resampling indices that
// every downstream metric is computed against. One Resampler owns the run's
// single random stream; callers consume it in a fixed order so that a fixed
// seed reproduces the published figures bit-for-bit.
package resample

import "math/rand"

// PosteriorDraws holds n (chain, iteration) pairs drawn uniformly with
// replacement from the full chain x iteration grid. The same draws are shared
// by every (species, zone) cell so cells stay comparable.
type PosteriorDraws struct {
	Chain []int
	Iter  []int
}

// Len returns the number of draws.
func (d PosteriorDraws) Len() int { return len(d.Chain) }

// Resampler produces deterministic index sequences from a single seeded
// generator. Not safe for concurrent use; the pipeline consumes it
// sequentially before any parallel work starts.
type Resampler struct {
	rng    *rand.Rand
	chains int
	iters  int
}

// New creates a Resampler over a chains x iters posterior grid.
func New(seed int64, chains, iters int) *Resampler {
	return &Resampler{
		rng:    rand.New(rand.NewSource(seed)),
		chains: chains,
		iters:  iters,
	}
}

// Posterior draws n (chain, iteration) pairs. One Intn over the flattened
// grid per draw: chain = idx/iters, iter = idx%iters. This convention is part
// of the determinism contract; changing it changes every downstream figure.
func (r *Resampler) Posterior(n int) PosteriorDraws {
	d := PosteriorDraws{
		Chain: make([]int, n),
		Iter:  make([]int, n),
	}
	grid := r.chains * r.iters
	for j := 0; j < n; j++ {
		idx := r.rng.Intn(grid)
		d.Chain[j] = idx / r.iters
		d.Iter[j] = idx % r.iters
	}
	return d
}

// Rows draws n indices in [0, k) uniformly with replacement. ok is false when
// k is zero: the cell has no supporting rows and must be skipped entirely
// rather than given a degenerate sample. No randomness is consumed in that
// case.
func (r *Resampler) Rows(n, k int) (rows []int, ok bool) {
	if k == 0 {
		return nil, false
	}
	rows = make([]int, n)
	for j := 0; j < n; j++ {
		rows[j] = r.rng.Intn(k)
	}
	return rows, true
}
