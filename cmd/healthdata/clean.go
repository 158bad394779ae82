package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/healthdata/internal/clean"
	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/exitcode"
	"github.com/gyeh/healthdata/internal/logging"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a messy patient dataset",
	RunE:  runClean,
}

func init() {
	f := cleanCmd.Flags()
	f.StringVar(&cfg.InputPath, "input", config.DefaultCleanInput, "Messy input table")
	f.StringVar(&cfg.OutputPath, "output", config.DefaultCleanOutput, "Cleaned output table")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateClean(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	rules := loadRules(log)

	_, summary, err := clean.Run(log, clean.Options{
		Input:  cfg.InputPath,
		Output: cfg.OutputPath,
		Rules:  rules,
	})
	if err != nil {
		var pe *clean.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("clean failed")
			os.Exit(pipelineExitCode(pe))
		}
		log.Error().Err(err).Msg("clean failed")
		os.Exit(exitcode.TransformError)
	}

	fmt.Printf("Clean complete: %d rows read, %d rows written, %d duplicates removed, %d cells imputed, %d cells clipped (%.1fs)\n",
		summary.RowsRead, summary.RowsWritten, summary.DuplicatesRemoved+summary.FinalDuplicatesRemoved,
		summary.TotalImputed(), summary.TotalClipped(), summary.Duration.Seconds())
	return nil
}
