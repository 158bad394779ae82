package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/exitcode"
	"github.com/gyeh/healthdata/internal/logging"
	"github.com/gyeh/healthdata/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a data quality report (no writes)",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&cfg.InputPath, "input", config.DefaultReportInput, "Table to evaluate")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateReport(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	rules := loadRules(log)

	if _, err := report.Run(log, report.Options{Input: cfg.InputPath, Rules: rules}, os.Stdout); err != nil {
		log.Error().Err(err).Msg("report failed")
		os.Exit(readExitCode(err))
	}
	return nil
}
