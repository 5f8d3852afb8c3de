package dataset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"habvuln/internal/axes"
)

// Manifest is the YAML run manifest: the shared axis vocabularies plus the
// watershed ids excluded from exposure-cutoff derivation for data quality.
type Manifest struct {
	Species            []string `yaml:"species"`
	FAZ                []string `yaml:"fazs"`
	MAZ                []string `yaml:"mazs"`
	Indicators         []string `yaml:"indicators"`
	SpawnEcotypes      []string `yaml:"spawn_ecotypes"`
	RearEcotypes       []string `yaml:"rear_ecotypes"`
	ExcludedWatersheds []string `yaml:"excluded_watersheds"`
}

// ParseManifest decodes and validates a manifest stream.
func ParseManifest(r io.Reader) (*axes.Set, map[string]bool, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("manifest: %w", err)
	}

	ax, err := axes.NewSet(m.Species, m.FAZ, m.MAZ, m.Indicators, m.SpawnEcotypes, m.RearEcotypes)
	if err != nil {
		return nil, nil, fmt.Errorf("manifest: %w", err)
	}

	excluded := make(map[string]bool, len(m.ExcludedWatersheds))
	for _, id := range m.ExcludedWatersheds {
		if id == "" {
			return nil, nil, fmt.Errorf("manifest: blank excluded watershed id")
		}
		excluded[id] = true
	}
	return ax, excluded, nil
}

// LoadManifest reads manifest.yaml from disk.
func LoadManifest(path string) (*axes.Set, map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ParseManifest(f)
}
