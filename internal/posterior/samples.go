// Package posterior provides read-only access to the raw MCMC output: the
// 3-D sample array and the mapping from parameter names to sample columns.
package posterior

import "fmt"

// Samples is the full MCMC output, indexed by (chain, iteration, parameter).
// The backing slice is chain-major and is never copied after construction.
type Samples struct {
	chains int
	iters  int
	params int
	data   []float64
}

// NewSamples wraps a flat chain-major sample block, validating its shape.
func NewSamples(chains, iters, params int, data []float64) (*Samples, error) {
	if chains <= 0 || iters <= 0 || params <= 0 {
		return nil, fmt.Errorf("posterior: non-positive dimensions (%d chains, %d iterations, %d parameters)", chains, iters, params)
	}
	want := chains * iters * params
	if len(data) != want {
		return nil, fmt.Errorf("posterior: sample block has %d values, want %d (%d x %d x %d)", len(data), want, chains, iters, params)
	}
	return &Samples{chains: chains, iters: iters, params: params, data: data}, nil
}

// At returns the sampled value for one (chain, iteration, parameter) cell.
func (s *Samples) At(chain, iter, param int) float64 {
	return s.data[(chain*s.iters+iter)*s.params+param]
}

// Chains returns the number of chains.
func (s *Samples) Chains() int { return s.chains }

// Iters returns the number of retained iterations per chain.
func (s *Samples) Iters() int { return s.iters }

// Params returns the number of parameter columns.
func (s *Samples) Params() int { return s.params }
