package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataDir string // directory holding manifest.yaml, populations.csv, watersheds.csv, posterior.json
	OutDir  string // directory for summaries.json / cutoffs.json
	Draws   int    // resampled draws per cell
	Seed    int64  // seed for the run's single random stream
	Workers int    // parallel cell workers; 0 means GOMAXPROCS
}

// Load loads the configuration from a .env file and environment variables.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	dataDir := getEnv("HABVULN_DATA_DIR", ".")
	outDir := getEnv("HABVULN_OUT_DIR", filepath.Join(dataDir, "out"))

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", outDir).Msg("Failed to create output directory")
	}

	cfg := &AppConfig{
		DataDir: dataDir,
		OutDir:  outDir,
		Draws:   getEnvInt("HABVULN_DRAWS", 10000),
		Seed:    int64(getEnvInt("HABVULN_SEED", 1)),
		Workers: getEnvInt("HABVULN_WORKERS", 0),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}
