package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/exitcode"
	"github.com/gyeh/healthdata/internal/generate"
	"github.com/gyeh/healthdata/internal/logging"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic patient dataset",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&cfg.Rows, "rows", config.DefaultRows, "Number of patient records to generate")
	f.StringVar(&cfg.OutputPath, "output", config.DefaultGenerateOut, "Output table path (.csv, .parquet or .xlsx)")
	f.Int64Var(&cfg.Seed, "seed", 0, "Random seed for reproducible output (default: random)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	cfg.SeedSet = cmd.Flags().Changed("seed")

	if err := cfg.ValidateGenerate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	rules := loadRules(log)

	_, summary, err := generate.Run(log, generate.Options{
		Rows:   cfg.Rows,
		Output: cfg.OutputPath,
		Seed:   cfg.SeedPtr(),
		Rules:  rules,
	})
	if err != nil {
		log.Error().Err(err).Msg("generate failed")
		if errors.Is(err, config.ErrInvalidRows) {
			os.Exit(exitcode.UsageError)
		}
		os.Exit(exitcode.WriteError)
	}

	fmt.Printf("Generate complete: %d rows written to %s (%.1fs)\n",
		summary.Rows, summary.OutputPath, summary.Duration.Seconds())
	return nil
}
