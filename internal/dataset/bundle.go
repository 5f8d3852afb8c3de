package dataset

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"habvuln/internal/axes"
	"habvuln/internal/posterior"
)

// Bundle is everything the pipeline needs, fully loaded and validated.
type Bundle struct {
	Axes        *axes.Set
	Populations *PopulationTable
	Watersheds  []Watershed
	Excluded    map[string]bool
	Samples     *posterior.Samples
	Index       *posterior.Index
}

// LoadBundle loads all inputs from a data directory. Any malformed input is
// fatal here, before metric computation starts.
func LoadBundle(dir string) (*Bundle, error) {
	ax, excluded, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	pops, err := LoadPopulations(filepath.Join(dir, "populations.csv"), ax)
	if err != nil {
		return nil, err
	}

	sheds, err := LoadWatersheds(filepath.Join(dir, "watersheds.csv"), ax)
	if err != nil {
		return nil, err
	}

	samples, ix, err := LoadPosterior(filepath.Join(dir, "posterior.json"))
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("populations", pops.Len()).
		Int("watersheds", len(sheds)).
		Int("chains", samples.Chains()).
		Int("iterations", samples.Iters()).
		Int("parameters", samples.Params()).
		Msg("Dataset loaded")

	return &Bundle{
		Axes:        ax,
		Populations: pops,
		Watersheds:  sheds,
		Excluded:    excluded,
		Samples:     samples,
		Index:       ix,
	}, nil
}
