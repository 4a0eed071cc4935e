package commands

import (
	"log/slog"

	"github.com/mubendiran/cloudinsight/internal/config"
	"github.com/mubendiran/cloudinsight/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	profile    string
	version    string
	commit     string
	date       string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cloudinsight",
	Short: "cloudinsight — cloud cost and log health analyzer",
	Long: `cloudinsight ingests cost records and application logs, aggregates them into
per-service cost trends and log health metrics, evaluates alert thresholds,
and produces a text report plus a JSON payload for a dashboard. Reports can
be uploaded to S3 and delivered via email or Slack.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(configPath)
		if err != nil {
			slog.Warn("Failed to load config file, using defaults", "error", err)
			cfg = config.Default()
		} else {
			cfg = loaded
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile name")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
