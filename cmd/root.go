package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/config"
)

var cfg *config.Config

// freshLogAnnotation marks commands that start a new log file instead of
// appending to the previous run's.
const freshLogAnnotation = "fleet-cli/fresh-log"

func freshLog(cmd *cobra.Command) bool {
	return cmd.Annotations[freshLogAnnotation] == "true"
}

var rootCmd = &cobra.Command{
	Use:          "fleet-cli",
	Short:        "Fleet tracking ETL and map renderer",
	Long:         "Loads per-city fleet tracking spreadsheets, derives trip, zone and crossover fields, merges facility locations, and renders marker and heat maps.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log, freshLog(cmd)); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("fleet-cli: command failed", zap.Error(err))
		_ = zap.L().Sync()
		os.Exit(1)
	}
}
