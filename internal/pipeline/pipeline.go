// Package pipeline wires the core together: resample, compute every
// (species, zone) cell, classify the evidence, and derive the cutoff tables.
// Randomness is consumed sequentially in a frozen order; only the pure
// per-cell computation runs in parallel, so output is independent of the
// worker count.
package pipeline

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"habvuln/internal/axes"
	"habvuln/internal/cutoffs"
	"habvuln/internal/dataset"
	"habvuln/internal/metrics"
	"habvuln/internal/resample"
)

// Config are the run parameters.
type Config struct {
	Draws   int   // resampled draws per cell
	Seed    int64 // seed for the run's single random stream
	Workers int   // parallel cell workers; 0 means GOMAXPROCS
}

// Outputs is everything the plotting layer consumes.
type Outputs struct {
	Cells     *metrics.CellSet
	Summaries *SummaryTables
	Magnitude cutoffs.Magnitude
	Exposure  cutoffs.Exposure
}

type cellJob struct {
	species string
	zone    string
	rows    []int // resolved population-row index per draw
}

// Run executes the full pipeline over a loaded bundle.
func Run(b *dataset.Bundle, cfg Config) (*Outputs, error) {
	if cfg.Draws <= 0 {
		return nil, fmt.Errorf("pipeline: draw count must be positive, got %d", cfg.Draws)
	}

	engine, err := metrics.NewEngine(b.Samples, b.Index, b.Populations, b.Axes)
	if err != nil {
		return nil, err
	}

	// 1. Draw all indices sequentially: shared posterior draws first, then
	// row draws species-outer / zone-inner. This order is frozen; it is what
	// makes a seed reproduce published figures exactly.
	r := resample.New(cfg.Seed, b.Samples.Chains(), b.Samples.Iters())
	pd := r.Posterior(cfg.Draws)

	var jobs []cellJob
	skipped := 0
	for _, species := range b.Axes.Species.Levels() {
		for _, zone := range b.Axes.FAZ.Levels() {
			subset := b.Populations.Filter(species, zone)
			local, ok := r.Rows(cfg.Draws, len(subset))
			if !ok {
				// NoData: the cell stays absent everywhere downstream.
				log.Debug().Str("species", species).Str("zone", zone).Msg("No population rows; skipping cell")
				skipped++
				continue
			}
			rows := make([]int, cfg.Draws)
			for j, l := range local {
				rows[j] = subset[l]
			}
			jobs = append(jobs, cellJob{species: species, zone: zone, rows: rows})
		}
	}
	log.Info().Int("cells", len(jobs)).Int("skipped", skipped).Int("draws", cfg.Draws).Msg("Resampling complete")

	// 2. Compute cells in parallel; each job writes only its own slot.
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]metrics.CellResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := engine.ComputeCell(job.rows, pd)
			if err != nil {
				return fmt.Errorf("cell (%s, %s): %w", job.species, job.zone, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cells := metrics.NewCellSet()
	for i, job := range jobs {
		cells.Store(job.species, job.zone, b.Axes, results[i])
	}

	// 3. Reduce and derive cutoffs.
	summaries, err := Summarize(cells, b.Axes)
	if err != nil {
		return nil, err
	}

	exposure, err := cutoffs.DeriveExposure(b.Watersheds, b.Excluded, b.Axes)
	if err != nil {
		return nil, err
	}

	return &Outputs{
		Cells:     cells,
		Summaries: summaries,
		Magnitude: cutoffs.NewMagnitude(),
		Exposure:  exposure,
	}, nil
}

// AnnotatedRows flattens the summaries and stamps each row with its
// point-size bucket: exposure means bin against the per-indicator quantile
// edges, everything else against the log-scale magnitude edges.
func (o *Outputs) AnnotatedRows(ax *axes.Set) ([]SummaryRow, error) {
	rows := o.Summaries.Rows(ax)
	for i := range rows {
		if rows[i].Quantity == "exposure" {
			bin, err := o.Exposure.Bin(rows[i].Indicator, rows[i].Mean)
			if err != nil {
				return nil, err
			}
			rows[i].SizeBin = bin
			continue
		}
		rows[i].SizeBin = o.Magnitude.Bin(rows[i].Mean)
	}
	return rows, nil
}
