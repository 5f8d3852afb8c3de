package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"habvuln/internal/posterior"
)

// posteriorFile is the on-disk form of the sampler output: dimensions, the
// ordered parameter-name table, and the flat chain-major sample block.
type posteriorFile struct {
	Chains     int       `json:"chains"`
	Iterations int       `json:"iterations"`
	Parameters []string  `json:"parameters"`
	Samples    []float64 `json:"samples"`
}

// ParsePosterior decodes the sampler output and validates its shape.
func ParsePosterior(r io.Reader) (*posterior.Samples, *posterior.Index, error) {
	var pf posteriorFile
	if err := json.NewDecoder(r).Decode(&pf); err != nil {
		return nil, nil, fmt.Errorf("posterior file: %w", err)
	}

	ix, err := posterior.NewIndex(pf.Parameters)
	if err != nil {
		return nil, nil, err
	}
	samples, err := posterior.NewSamples(pf.Chains, pf.Iterations, len(pf.Parameters), pf.Samples)
	if err != nil {
		return nil, nil, err
	}
	return samples, ix, nil
}

// LoadPosterior reads posterior.json from disk.
func LoadPosterior(path string) (*posterior.Samples, *posterior.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ParsePosterior(f)
}
