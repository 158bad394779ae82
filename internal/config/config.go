package config

import (
	"errors"
	"fmt"
	"os"
)

// Default paths and sizes for each stage.
const (
	DefaultRows          = 200
	DefaultGenerateOut   = "data/healthcare_dataset.csv"
	DefaultCleanInput    = "data/sample_data_messy.csv"
	DefaultCleanOutput   = "data/healthcare_dataset_clean.csv"
	DefaultReportInput   = "data/healthcare_dataset_clean.csv"
	DefaultLogFormat     = "text"
	LogFormatEnvironment = "HEALTHDATA_LOG_FORMAT"
)

// ErrInvalidRows is returned when the requested row count is not positive.
var ErrInvalidRows = errors.New("--rows must be a positive integer")

// Config holds all runtime configuration for a healthdata run.
type Config struct {
	LogFormat string // "text" or "json"
	RulesPath string // optional YAML overrides for Rules

	// generate
	Rows    int
	Seed    int64
	SeedSet bool

	InputPath  string
	OutputPath string
}

// SeedPtr returns the seed when one was supplied, nil otherwise.
func (c *Config) SeedPtr() *int64 {
	if !c.SeedSet {
		return nil
	}
	s := c.Seed
	return &s
}

// Rules loads the rule set: built-in defaults merged with RulesPath if set.
func (c *Config) Rules() (*Rules, error) {
	r := DefaultRules()
	if c.RulesPath == "" {
		return r, nil
	}
	if err := r.LoadFromFile(c.RulesPath); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateGenerate checks generator arguments before any I/O happens.
func (c *Config) ValidateGenerate() error {
	if c.Rows < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidRows, c.Rows)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("--output is required")
	}
	return nil
}

// ValidateClean checks cleaner arguments.
func (c *Config) ValidateClean() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if c.OutputPath == "" {
		return fmt.Errorf("--output is required")
	}
	return nil
}

// ValidateReport checks reporter arguments.
func (c *Config) ValidateReport() error {
	return c.validateInput()
}

func (c *Config) validateInput() error {
	if c.InputPath == "" {
		return fmt.Errorf("--input is required")
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("input file not accessible: %w", err)
	}
	return nil
}
