package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/pipeline"
	"github.com/sells-group/fleet-cli/internal/runlog"
)

var (
	ingestWorkers int
	ingestOutput  string
)

var ingestCmd = &cobra.Command{
	Use:         "ingest",
	Short:       "Build the Output Table CSV from fleet spreadsheets",
	Annotations: map[string]string{freshLogAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := pipeline.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}
		if ingestWorkers > 0 {
			opts.Workers = ingestWorkers
		}
		if ingestOutput != "" {
			opts.OutputCSV = ingestOutput
		}

		run := runlog.New(zap.L())
		log := run.Logger()
		log.Info("ingest: starting",
			zap.Int("sources", len(opts.Sources)),
			zap.Int("facilities", len(opts.Facilities)),
			zap.String("output", opts.OutputCSV),
		)

		tbl, err := pipeline.New(opts).Run(cmd.Context(), run)
		if err != nil {
			fields := []zap.Field{zap.Error(err)}
			if last, ok := run.Last(); ok {
				fields = append(fields, zap.String("last_stage", last.Name))
			}
			log.Error("ingest: failed", fields...)
			return err
		}

		log.Info("ingest: complete",
			zap.Int("rows", tbl.Len()),
			zap.Duration("elapsed", run.Elapsed()),
		)
		return nil
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "parallel workers per stage (default from config, 0 = CPU count)")
	ingestCmd.Flags().StringVar(&ingestOutput, "output", "", "output CSV path (default from config)")
	rootCmd.AddCommand(ingestCmd)
}
