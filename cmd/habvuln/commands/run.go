package commands

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"habvuln/internal/cutoffs"
	"habvuln/internal/dataset"
	"habvuln/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the full resampling and classification pipeline",
	Run: func(cmd *cobra.Command, args []string) {
		bundle, err := dataset.LoadBundle(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to load dataset")
		}

		out, err := pipeline.Run(bundle, pipeline.Config{
			Draws:   cfg.Draws,
			Seed:    cfg.Seed,
			Workers: cfg.Workers,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Pipeline failed")
		}

		rows, err := out.AnnotatedRows(bundle.Axes)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to annotate summaries")
		}
		if err := writeJSON(filepath.Join(cfg.OutDir, "summaries.json"), rows); err != nil {
			log.Fatal().Err(err).Msg("Failed to write summaries")
		}

		type cutoffFile struct {
			Magnitude cutoffs.Magnitude `json:"magnitude"`
			Exposure  cutoffs.Exposure  `json:"exposure"`
		}
		if err := writeJSON(filepath.Join(cfg.OutDir, "cutoffs.json"), cutoffFile{
			Magnitude: out.Magnitude,
			Exposure:  out.Exposure,
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to write cutoffs")
		}

		log.Info().
			Int("summaries", len(rows)).
			Int64("seed", cfg.Seed).
			Int("draws", cfg.Draws).
			Str("out", cfg.OutDir).
			Msg("Pipeline complete")
	},
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
