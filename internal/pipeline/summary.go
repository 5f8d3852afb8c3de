package pipeline

import (
	"fmt"

	"habvuln/internal/axes"
	"habvuln/internal/evidence"
	"habvuln/internal/metrics"
)

// SummaryTables holds one (mean, category) reduction per non-absent cell for
// each of the six derived quantities. Absent cells are absent here too.
type SummaryTables struct {
	Sensitivity   map[metrics.Key3]evidence.Summary
	Exposure      map[metrics.Key3]evidence.Summary
	Threat        map[metrics.Key3]evidence.Summary
	Status        map[metrics.Key2]evidence.Summary
	ThreatTotal   map[metrics.Key2]evidence.Summary
	Vulnerability map[metrics.Key2]evidence.Summary
}

// Summarize classifies every cell of every quantity. A classification error
// is wrapped with the offending cell and quantity and aborts the run.
func Summarize(cells *metrics.CellSet, ax *axes.Set) (*SummaryTables, error) {
	st := &SummaryTables{
		Sensitivity:   make(map[metrics.Key3]evidence.Summary, len(cells.Sensitivity)),
		Exposure:      make(map[metrics.Key3]evidence.Summary, len(cells.Exposure)),
		Threat:        make(map[metrics.Key3]evidence.Summary, len(cells.Threat)),
		Status:        make(map[metrics.Key2]evidence.Summary, len(cells.Status)),
		ThreatTotal:   make(map[metrics.Key2]evidence.Summary, len(cells.ThreatTotal)),
		Vulnerability: make(map[metrics.Key2]evidence.Summary, len(cells.Vulnerability)),
	}

	for name, pair := range map[string]struct {
		src map[metrics.Key3][]float64
		dst map[metrics.Key3]evidence.Summary
	}{
		"sensitivity": {cells.Sensitivity, st.Sensitivity},
		"exposure":    {cells.Exposure, st.Exposure},
		"threat":      {cells.Threat, st.Threat},
	} {
		for key, draws := range pair.src {
			s, err := evidence.Classify(draws)
			if err != nil {
				return nil, fmt.Errorf("%s (%s, %s, %s): %w", name, key.Species, key.Zone, key.Indicator, err)
			}
			pair.dst[key] = s
		}
	}

	for name, pair := range map[string]struct {
		src map[metrics.Key2][]float64
		dst map[metrics.Key2]evidence.Summary
	}{
		"status":        {cells.Status, st.Status},
		"threatTotal":   {cells.ThreatTotal, st.ThreatTotal},
		"vulnerability": {cells.Vulnerability, st.Vulnerability},
	} {
		for key, draws := range pair.src {
			s, err := evidence.Classify(draws)
			if err != nil {
				return nil, fmt.Errorf("%s (%s, %s): %w", name, key.Species, key.Zone, err)
			}
			pair.dst[key] = s
		}
	}

	return st, nil
}

// SummaryRow is one flattened summary record, ordered for stable output.
// SizeBin is the categorical point-size bucket (1..4) the plotting layer maps
// to symbol sizes; 0 until annotated.
type SummaryRow struct {
	Quantity  string            `json:"quantity"`
	Species   string            `json:"species"`
	Zone      string            `json:"zone"`
	Indicator string            `json:"indicator,omitempty"`
	Mean      float64           `json:"mean"`
	Category  evidence.Category `json:"category"`
	SizeBin   int               `json:"size_bin,omitempty"`
}

// Rows flattens the tables in a deterministic order: quantity, then species,
// zone and indicator in axis order. Absent cells produce no row.
func (st *SummaryTables) Rows(ax *axes.Set) []SummaryRow {
	var rows []SummaryRow

	appendK3 := func(quantity string, src map[metrics.Key3]evidence.Summary) {
		for _, species := range ax.Species.Levels() {
			for _, zone := range ax.FAZ.Levels() {
				for _, ind := range ax.Indicator.Levels() {
					key := metrics.Key3{Species: species, Zone: zone, Indicator: ind}
					if s, ok := src[key]; ok {
						rows = append(rows, SummaryRow{
							Quantity: quantity, Species: species, Zone: zone,
							Indicator: ind, Mean: s.Mean, Category: s.Category,
						})
					}
				}
			}
		}
	}
	appendK2 := func(quantity string, src map[metrics.Key2]evidence.Summary) {
		for _, species := range ax.Species.Levels() {
			for _, zone := range ax.FAZ.Levels() {
				key := metrics.Key2{Species: species, Zone: zone}
				if s, ok := src[key]; ok {
					rows = append(rows, SummaryRow{
						Quantity: quantity, Species: species, Zone: zone,
						Mean: s.Mean, Category: s.Category,
					})
				}
			}
		}
	}

	appendK3("sensitivity", st.Sensitivity)
	appendK3("exposure", st.Exposure)
	appendK3("threat", st.Threat)
	appendK2("status", st.Status)
	appendK2("threatTotal", st.ThreatTotal)
	appendK2("vulnerability", st.Vulnerability)
	return rows
}
