package main

import (
	"cmp"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/healthdata/internal/clean"
	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/exitcode"
	"github.com/gyeh/healthdata/internal/tableio"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "healthdata",
	Short: "Synthetic patient data generator, cleaner and quality reporter",
	Long: "Generates synthetic hospital patient records, repairs messy copies of them, " +
		"and reports on data quality. Tables are read and written as CSV, Parquet or XLSX by extension.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format",
		cmp.Or(os.Getenv(config.LogFormatEnvironment), config.DefaultLogFormat),
		"Log format: text or json (or set "+config.LogFormatEnvironment+")")
	pf.StringVar(&cfg.RulesPath, "rules", "", "YAML file overriding the built-in ranges, categories and defaults")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}

// loadRules exits with a usage error when the rules file is unreadable or invalid.
func loadRules(log zerolog.Logger) *config.Rules {
	rules, err := cfg.Rules()
	if err != nil {
		log.Error().Err(err).Str("rules", cfg.RulesPath).Msg("rules load failed")
		os.Exit(exitcode.UsageError)
	}
	return rules
}

// readExitCode separates I/O failures from unparseable or invalid tables.
func readExitCode(err error) int {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return exitcode.ReadError
	}
	return exitcode.ValidationError
}

// pipelineExitCode maps a failed clean phase to an exit code.
func pipelineExitCode(pe *clean.PipelineError) int {
	switch pe.Phase {
	case clean.PhaseRead:
		return readExitCode(pe.Err)
	case clean.PhasePreflight:
		return exitcode.ValidationError
	case clean.PhaseWrite:
		return exitcode.WriteError
	default:
		if errors.Is(pe.Err, tableio.ErrMissingColumn) {
			return exitcode.ValidationError
		}
		return exitcode.TransformError
	}
}
