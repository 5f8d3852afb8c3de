package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"habvuln/internal/axes"
)

// populationColumns are the fixed leading columns of populations.csv; the
// per-indicator pressure columns follow in indicator-axis order.
var populationColumns = []string{
	"name", "species", "spawn_ecotype", "rear_ecotype", "faz", "maz",
	"stream_order", "stream_order_centered",
}

// ParsePopulations reads the population table, validating every categorical
// field against the shared vocabularies and clamping pressures at zero.
func ParsePopulations(r io.Reader, ax *axes.Set) (*PopulationTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("populations: reading header: %w", err)
	}
	if err := checkHeader(header, populationColumns, ax.Indicator); err != nil {
		return nil, fmt.Errorf("populations: %w", err)
	}

	nFixed := len(populationColumns)
	table := &PopulationTable{ax: ax}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("populations: %w", err)
		}
		line++

		p := Population{
			Name:         rec[0],
			Species:      rec[1],
			SpawnEcotype: rec[2],
			RearEcotype:  rec[3],
			FAZ:          rec[4],
			MAZ:          rec[5],
		}
		for _, c := range []struct {
			axis  *axes.Axis
			value string
		}{
			{ax.Species, p.Species},
			{ax.SpawnEcotype, p.SpawnEcotype},
			{ax.RearEcotype, p.RearEcotype},
			{ax.FAZ, p.FAZ},
			{ax.MAZ, p.MAZ},
		} {
			if _, ok := c.axis.Index(c.value); !ok {
				return nil, fmt.Errorf("populations: line %d: unknown %s %q", line, c.axis.Name(), c.value)
			}
		}

		if p.StreamOrder, err = strconv.ParseFloat(rec[6], 64); err != nil {
			return nil, fmt.Errorf("populations: line %d: stream_order: %w", line, err)
		}
		if p.StreamOrderCentered, err = strconv.ParseFloat(rec[7], 64); err != nil {
			return nil, fmt.Errorf("populations: line %d: stream_order_centered: %w", line, err)
		}

		p.Pressures = make([]float64, ax.Indicator.Len())
		for h := range p.Pressures {
			v, err := strconv.ParseFloat(rec[nFixed+h], 64)
			if err != nil {
				return nil, fmt.Errorf("populations: line %d: %s: %w", line, ax.Indicator.Level(h), err)
			}
			if v < 0 {
				v = 0
			}
			p.Pressures[h] = v
		}
		table.rows = append(table.rows, p)
	}
	return table, nil
}

// ParseWatersheds reads the reference spatial-unit table. Values are kept raw;
// the exposure-cutoff derivation applies its own clamp-and-filter rule.
func ParseWatersheds(r io.Reader, ax *axes.Set) ([]Watershed, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("watersheds: reading header: %w", err)
	}
	if err := checkHeader(header, []string{"watershed_id"}, ax.Indicator); err != nil {
		return nil, fmt.Errorf("watersheds: %w", err)
	}

	var units []Watershed
	seen := make(map[string]bool)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("watersheds: %w", err)
		}
		line++

		w := Watershed{ID: rec[0], Pressures: make([]float64, ax.Indicator.Len())}
		if w.ID == "" {
			return nil, fmt.Errorf("watersheds: line %d: blank id", line)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("watersheds: line %d: duplicate id %q", line, w.ID)
		}
		seen[w.ID] = true

		for h := range w.Pressures {
			if w.Pressures[h], err = strconv.ParseFloat(rec[1+h], 64); err != nil {
				return nil, fmt.Errorf("watersheds: line %d: %s: %w", line, ax.Indicator.Level(h), err)
			}
		}
		units = append(units, w)
	}
	return units, nil
}

// checkHeader verifies fixed columns followed by the indicator axis, in order.
// Column-order drift between files and vocabularies is a silent-corruption
// hazard, so any mismatch is fatal.
func checkHeader(header, fixed []string, indicator *axes.Axis) error {
	want := len(fixed) + indicator.Len()
	if len(header) != want {
		return fmt.Errorf("header has %d columns, want %d", len(header), want)
	}
	for i, name := range fixed {
		if header[i] != name {
			return fmt.Errorf("header column %d is %q, want %q", i, header[i], name)
		}
	}
	for h := 0; h < indicator.Len(); h++ {
		if header[len(fixed)+h] != indicator.Level(h) {
			return fmt.Errorf("indicator column %d is %q, want %q", h, header[len(fixed)+h], indicator.Level(h))
		}
	}
	return nil
}

// LoadPopulations reads populations.csv from disk.
func LoadPopulations(path string, ax *axes.Set) (*PopulationTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePopulations(f, ax)
}

// LoadWatersheds reads watersheds.csv from disk.
func LoadWatersheds(path string, ax *axes.Set) ([]Watershed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWatersheds(f, ax)
}
