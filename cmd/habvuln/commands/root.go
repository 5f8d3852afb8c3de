package commands

import (
	"habvuln/internal/config"
	"habvuln/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "habvuln",
	Short: "habvuln derives salmon habitat-vulnerability metrics from MCMC posterior samples",
	Long: `A batch pipeline that resamples posterior draws from a Bayesian hierarchical
regression of salmon population trends on freshwater habitat pressures, derives
per-(species, Freshwater Adaptive Zone) sensitivity, exposure, threat, status
and vulnerability, and classifies the evidence strength of each.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("habvuln starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(runCmd)
}
