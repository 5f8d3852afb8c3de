package dataset

import (
	"strings"
	"testing"

	"habvuln/internal/axes"
)

const manifestYAML = `
species: [chinook, coho]
fazs: [LFR, MFR]
mazs: [FraserLower, FraserMid]
indicators: [forestry, agriculture]
spawn_ecotypes: [stream, ocean]
rear_ecotypes: [stream, lake]
excluded_watersheds: [ws-9]
`

func testAxes(t *testing.T) *axes.Set {
	t.Helper()
	ax, _, err := ParseManifest(strings.NewReader(manifestYAML))
	if err != nil {
		t.Fatal(err)
	}
	return ax
}

func TestParseManifest(t *testing.T) {
	ax, excluded, err := ParseManifest(strings.NewReader(manifestYAML))
	if err != nil {
		t.Fatal(err)
	}
	if ax.Species.Len() != 2 || ax.Indicator.Len() != 2 {
		t.Errorf("unexpected axis sizes: species=%d indicators=%d", ax.Species.Len(), ax.Indicator.Len())
	}
	if !excluded["ws-9"] || len(excluded) != 1 {
		t.Errorf("excluded = %v, want only ws-9", excluded)
	}
}

func TestParseManifestRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"UnknownField", "species: [a]\nfazs: [b]\nmazs: [c]\nindicators: [d]\nspawn_ecotypes: [e]\nrear_ecotypes: [f]\nbogus: 1"},
		{"EmptyAxis", "species: []\nfazs: [b]\nmazs: [c]\nindicators: [d]\nspawn_ecotypes: [e]\nrear_ecotypes: [f]"},
		{"DuplicateLevel", "species: [a, a]\nfazs: [b]\nmazs: [c]\nindicators: [d]\nspawn_ecotypes: [e]\nrear_ecotypes: [f]"},
		{"BlankExclusion", "species: [a]\nfazs: [b]\nmazs: [c]\nindicators: [d]\nspawn_ecotypes: [e]\nrear_ecotypes: [f]\nexcluded_watersheds: ['']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseManifest(strings.NewReader(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

const populationsCSV = `name,species,spawn_ecotype,rear_ecotype,faz,maz,stream_order,stream_order_centered,forestry,agriculture
PopA,chinook,stream,stream,LFR,FraserLower,5,1,0.4,-0.2
PopB,coho,ocean,lake,MFR,FraserMid,3,-1,0,2.5
`

func TestParsePopulations(t *testing.T) {
	ax := testAxes(t)
	table, err := ParsePopulations(strings.NewReader(populationsCSV), ax)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	a := table.Row(0)
	if a.Species != "chinook" || a.FAZ != "LFR" || a.StreamOrderCentered != 1 {
		t.Errorf("unexpected first row: %+v", a)
	}
	// Negative pressure is clamped, genuine zero survives.
	if a.Pressures[1] != 0 {
		t.Errorf("negative pressure not clamped: %v", a.Pressures[1])
	}
	b := table.Row(1)
	if b.Pressures[0] != 0 || b.Pressures[1] != 2.5 {
		t.Errorf("unexpected pressures: %v", b.Pressures)
	}
}

func TestParsePopulationsRejects(t *testing.T) {
	ax := testAxes(t)
	tests := []struct {
		name string
		csv  string
	}{
		{"UnknownSpecies", "name,species,spawn_ecotype,rear_ecotype,faz,maz,stream_order,stream_order_centered,forestry,agriculture\nP,pink,stream,stream,LFR,FraserLower,5,1,0,0\n"},
		{"UnknownFAZ", "name,species,spawn_ecotype,rear_ecotype,faz,maz,stream_order,stream_order_centered,forestry,agriculture\nP,chinook,stream,stream,UFR,FraserLower,5,1,0,0\n"},
		{"ReorderedIndicators", "name,species,spawn_ecotype,rear_ecotype,faz,maz,stream_order,stream_order_centered,agriculture,forestry\n"},
		{"MissingColumn", "name,species,spawn_ecotype,rear_ecotype,faz,maz,stream_order,stream_order_centered,forestry\n"},
		{"BadNumber", "name,species,spawn_ecotype,rear_ecotype,faz,maz,stream_order,stream_order_centered,forestry,agriculture\nP,chinook,stream,stream,LFR,FraserLower,five,1,0,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePopulations(strings.NewReader(tt.csv), ax); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPopulationFilter(t *testing.T) {
	ax := testAxes(t)
	table, err := ParsePopulations(strings.NewReader(populationsCSV), ax)
	if err != nil {
		t.Fatal(err)
	}

	if got := table.Filter("chinook", "LFR"); len(got) != 1 || got[0] != 0 {
		t.Errorf("Filter(chinook, LFR) = %v, want [0]", got)
	}
	if got := table.Filter("chinook", "MFR"); got != nil {
		t.Errorf("Filter(chinook, MFR) = %v, want nil", got)
	}
}

func TestParseWatersheds(t *testing.T) {
	ax := testAxes(t)
	csv := "watershed_id,forestry,agriculture\nws-1,3,-2\nws-2,0,5\n"
	sheds, err := ParseWatersheds(strings.NewReader(csv), ax)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheds) != 2 {
		t.Fatalf("len = %d, want 2", len(sheds))
	}
	// Raw values preserved; the cutoff derivation clamps later.
	if sheds[0].Pressures[1] != -2 {
		t.Errorf("raw value altered: %v", sheds[0].Pressures[1])
	}

	if _, err := ParseWatersheds(strings.NewReader("watershed_id,forestry,agriculture\nws-1,1,1\nws-1,2,2\n"), ax); err == nil {
		t.Error("duplicate id should be rejected")
	}
}

func TestParsePosterior(t *testing.T) {
	good := `{"chains":2,"iterations":2,"parameters":["beta0","sigma"],"samples":[1,2,3,4,5,6,7,8]}`
	samples, ix, err := ParsePosterior(strings.NewReader(good))
	if err != nil {
		t.Fatal(err)
	}
	if samples.Chains() != 2 || samples.Params() != 2 {
		t.Errorf("unexpected shape: %d chains, %d params", samples.Chains(), samples.Params())
	}
	if off, err := ix.Offset("sigma"); err != nil || off != 1 {
		t.Errorf("Offset(sigma) = %d, %v", off, err)
	}
	if samples.At(1, 0, 1) != 6 {
		t.Errorf("At(1,0,1) = %v, want 6", samples.At(1, 0, 1))
	}

	short := `{"chains":2,"iterations":2,"parameters":["beta0","sigma"],"samples":[1,2,3]}`
	if _, _, err := ParsePosterior(strings.NewReader(short)); err == nil {
		t.Error("short sample block should be rejected")
	}
}
