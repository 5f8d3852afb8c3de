// Package axes holds the ordered grouping vocabularies shared by every table
// and sample array in the pipeline. All name-to-position lookups go through an
// Axis so that no two consumers can disagree about level ordering.
package axes

import "fmt"

// Axis is an ordered, immutable list of level names with O(1) name lookup.
type Axis struct {
	name   string
	levels []string
	index  map[string]int
}

// New builds an axis from an ordered level list.
func New(name string, levels []string) (*Axis, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("axis %q: empty level list", name)
	}
	index := make(map[string]int, len(levels))
	for i, l := range levels {
		if l == "" {
			return nil, fmt.Errorf("axis %q: empty level name at position %d", name, i)
		}
		if _, dup := index[l]; dup {
			return nil, fmt.Errorf("axis %q: duplicate level %q", name, l)
		}
		index[l] = i
	}
	return &Axis{name: name, levels: levels, index: index}, nil
}

// Name returns the axis name (e.g. "species", "faz").
func (a *Axis) Name() string { return a.name }

// Len returns the number of levels.
func (a *Axis) Len() int { return len(a.levels) }

// Levels returns a copy of the ordered level names.
func (a *Axis) Levels() []string {
	out := make([]string, len(a.levels))
	copy(out, a.levels)
	return out
}

// Level returns the name at position i.
func (a *Axis) Level(i int) string { return a.levels[i] }

// Index returns the position of a level name.
func (a *Axis) Index(level string) (int, bool) {
	i, ok := a.index[level]
	return i, ok
}

// MustIndex is Index for names that were validated at load time.
func (a *Axis) MustIndex(level string) int {
	i, ok := a.index[level]
	if !ok {
		panic(fmt.Sprintf("axis %q: unknown level %q", a.name, level))
	}
	return i
}

// Set bundles the six vocabularies used by the regression and its outputs.
type Set struct {
	Species      *Axis // species under assessment
	FAZ          *Axis // Freshwater Adaptive Zones
	MAZ          *Axis // Macro Adaptive Zones
	Indicator    *Axis // habitat-pressure indicators
	SpawnEcotype *Axis // spawning life-history ecotypes
	RearEcotype  *Axis // rearing life-history ecotypes
}

// NewSet validates and assembles the shared vocabularies.
func NewSet(species, faz, maz, indicator, spawn, rear []string) (*Set, error) {
	s := &Set{}
	var err error
	if s.Species, err = New("species", species); err != nil {
		return nil, err
	}
	if s.FAZ, err = New("faz", faz); err != nil {
		return nil, err
	}
	if s.MAZ, err = New("maz", maz); err != nil {
		return nil, err
	}
	if s.Indicator, err = New("indicator", indicator); err != nil {
		return nil, err
	}
	if s.SpawnEcotype, err = New("spawn_ecotype", spawn); err != nil {
		return nil, err
	}
	if s.RearEcotype, err = New("rear_ecotype", rear); err != nil {
		return nil, err
	}
	return s, nil
}
