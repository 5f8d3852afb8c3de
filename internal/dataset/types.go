// Package dataset loads the static reference inputs: the run manifest (axis
// vocabularies and watershed exclusions), the population table, the watershed
// reference table, and the posterior sample file. All shape and vocabulary
// validation happens here, before any metric computation starts.
package dataset

import "habvuln/internal/axes"

// Population is one monitored population row. Pressures is ordered by the
// indicator axis and clamped non-negative at load.
type Population struct {
	Name                string
	Species             string
	SpawnEcotype        string
	RearEcotype         string
	FAZ                 string
	MAZ                 string
	StreamOrder         float64 // raw stream order, reporting only
	StreamOrderCentered float64 // re-centered value the model was fit against
	Pressures           []float64
}

// PopulationTable is the read-only population reference data.
type PopulationTable struct {
	ax   *axes.Set
	rows []Population
}

// Len returns the number of population rows.
func (t *PopulationTable) Len() int { return len(t.rows) }

// Row returns the population at index i.
func (t *PopulationTable) Row(i int) Population { return t.rows[i] }

// Filter returns the row indices matching a (species, zone) cell, in table order.
func (t *PopulationTable) Filter(species, faz string) []int {
	var idx []int
	for i, r := range t.rows {
		if r.Species == species && r.FAZ == faz {
			idx = append(idx, i)
		}
	}
	return idx
}

// Watershed is one reference spatial unit with per-indicator pressure values,
// ordered by the indicator axis. Raw values, not clamped: the exposure-cutoff
// derivation owns its own clamping rule.
type Watershed struct {
	ID        string
	Pressures []float64
}
