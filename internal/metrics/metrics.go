// Package metrics computes the six derived quantities (sensitivity, exposure,
// threat, status, threat total, vulnerability) as draw-level arrays per
// (species, zone) cell. A cell with no supporting population rows is absent
// from every output map; absence is never encoded as zero.
package metrics

import (
	"fmt"

	"habvuln/internal/axes"
	"habvuln/internal/dataset"
	"habvuln/internal/posterior"
	"habvuln/internal/resample"
)

// Key2 addresses a (species, zone) cell.
type Key2 struct {
	Species string
	Zone    string
}

// Key3 addresses a (species, zone, indicator) cell.
type Key3 struct {
	Species   string
	Zone      string
	Indicator string
}

// CellSet holds the draw arrays for every non-absent cell. A missing key is
// the absent marker for that cell.
type CellSet struct {
	Sensitivity   map[Key3][]float64
	Exposure      map[Key3][]float64
	Threat        map[Key3][]float64
	Status        map[Key2][]float64
	ThreatTotal   map[Key2][]float64
	Vulnerability map[Key2][]float64
}

// NewCellSet allocates an empty CellSet.
func NewCellSet() *CellSet {
	return &CellSet{
		Sensitivity:   make(map[Key3][]float64),
		Exposure:      make(map[Key3][]float64),
		Threat:        make(map[Key3][]float64),
		Status:        make(map[Key2][]float64),
		ThreatTotal:   make(map[Key2][]float64),
		Vulnerability: make(map[Key2][]float64),
	}
}

// CellResult is the draw arrays for one cell: per-indicator quantities indexed
// [indicator][draw], aggregates indexed [draw].
type CellResult struct {
	Sensitivity   [][]float64
	Exposure      [][]float64
	Threat        [][]float64
	Status        []float64
	ThreatTotal   []float64
	Vulnerability []float64
}

// Engine evaluates the fitted-model quantities at resampled posterior draws
// and population rows. All parameter offsets are resolved once at
// construction, so an incomplete name table fails before any computation.
type Engine struct {
	samples *posterior.Samples
	pops    *dataset.PopulationTable
	ax      *axes.Set

	offBeta0    int
	offBeta1    [][]int // [spawn ecotype][indicator]
	offPhi      []int   // [indicator]
	offThetaFAZ [][]int // [faz][indicator]
	offThetaMAZ [][]int // [maz][rear ecotype]
}

// NewEngine resolves every parameter offset the model requires.
func NewEngine(samples *posterior.Samples, ix *posterior.Index, pops *dataset.PopulationTable, ax *axes.Set) (*Engine, error) {
	e := &Engine{samples: samples, pops: pops, ax: ax}

	var err error
	if e.offBeta0, err = ix.Offset("beta0"); err != nil {
		return nil, err
	}
	if e.offBeta1, err = resolveGrid(ix, "beta1", ax.SpawnEcotype.Len(), ax.Indicator.Len()); err != nil {
		return nil, err
	}
	if e.offPhi, err = resolveVector(ix, "phi", ax.Indicator.Len()); err != nil {
		return nil, err
	}
	if e.offThetaFAZ, err = resolveGrid(ix, "thetaFAZ", ax.FAZ.Len(), ax.Indicator.Len()); err != nil {
		return nil, err
	}
	if e.offThetaMAZ, err = resolveGrid(ix, "thetaMAZ", ax.MAZ.Len(), ax.RearEcotype.Len()); err != nil {
		return nil, err
	}

	return e, nil
}

func resolveVector(ix *posterior.Index, name string, n int) ([]int, error) {
	offs := make([]int, n)
	for i := 0; i < n; i++ {
		off, err := ix.Offset(name, i)
		if err != nil {
			return nil, err
		}
		offs[i] = off
	}
	return offs, nil
}

func resolveGrid(ix *posterior.Index, name string, rows, cols int) ([][]int, error) {
	offs := make([][]int, rows)
	for i := 0; i < rows; i++ {
		offs[i] = make([]int, cols)
		for j := 0; j < cols; j++ {
			off, err := ix.Offset(name, i, j)
			if err != nil {
				return nil, err
			}
			offs[i][j] = off
		}
	}
	return offs, nil
}

// ComputeCell evaluates one (species, zone) cell. rows holds the resolved
// population-row index for each draw; pd holds the shared posterior draws.
// Both must have the same length.
func (e *Engine) ComputeCell(rows []int, pd resample.PosteriorDraws) (CellResult, error) {
	n := pd.Len()
	if len(rows) != n {
		return CellResult{}, fmt.Errorf("metrics: %d row draws vs %d posterior draws", len(rows), n)
	}

	nh := e.ax.Indicator.Len()
	res := CellResult{
		Sensitivity:   newGrid(nh, n),
		Exposure:      newGrid(nh, n),
		Threat:        newGrid(nh, n),
		Status:        make([]float64, n),
		ThreatTotal:   make([]float64, n),
		Vulnerability: make([]float64, n),
	}

	for j := 0; j < n; j++ {
		row := e.pops.Row(rows[j])
		chain, iter := pd.Chain[j], pd.Iter[j]

		spawn := e.ax.SpawnEcotype.MustIndex(row.SpawnEcotype)
		rear := e.ax.RearEcotype.MustIndex(row.RearEcotype)
		faz := e.ax.FAZ.MustIndex(row.FAZ)
		maz := e.ax.MAZ.MustIndex(row.MAZ)

		var total float64
		for h := 0; h < nh; h++ {
			// Slope per spawning ecotype, a linear stream-order adjustment
			// (on the model's re-centered scale), and the zone random offset.
			sens := e.samples.At(chain, iter, e.offBeta1[spawn][h]) +
				e.samples.At(chain, iter, e.offPhi[h])*row.StreamOrderCentered +
				e.samples.At(chain, iter, e.offThetaFAZ[faz][h])
			expo := row.Pressures[h]
			threat := sens * expo

			res.Sensitivity[h][j] = sens
			res.Exposure[h][j] = expo
			res.Threat[h][j] = threat
			total += threat
		}

		status := e.samples.At(chain, iter, e.offBeta0) +
			e.samples.At(chain, iter, e.offThetaMAZ[maz][rear])

		res.Status[j] = status
		res.ThreatTotal[j] = total
		res.Vulnerability[j] = status + total
	}
	return res, nil
}

// Store records a cell's draw arrays into the set under its keys.
func (cs *CellSet) Store(species, zone string, ax *axes.Set, res CellResult) {
	k2 := Key2{Species: species, Zone: zone}
	for h := 0; h < ax.Indicator.Len(); h++ {
		k3 := Key3{Species: species, Zone: zone, Indicator: ax.Indicator.Level(h)}
		cs.Sensitivity[k3] = res.Sensitivity[h]
		cs.Exposure[k3] = res.Exposure[h]
		cs.Threat[k3] = res.Threat[h]
	}
	cs.Status[k2] = res.Status
	cs.ThreatTotal[k2] = res.ThreatTotal
	cs.Vulnerability[k2] = res.Vulnerability
}

func newGrid(rows, cols int) [][]float64 {
	g := make([][]float64, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}
