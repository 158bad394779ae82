package clean

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/logging"
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/tableio"
)

// Phases outside the transform steps.
const (
	PhaseRead      = "read"
	PhasePreflight = "preflight"
	PhaseWrite     = "write"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Options mirrors the clean command's flags.
type Options struct {
	Input  string
	Output string
	Rules  *config.Rules // nil: config.DefaultRules()
}

// cleaner carries the table through the steps.
type cleaner struct {
	t     *model.Table
	rules *config.Rules
	sum   *model.CleanSummary
	log   zerolog.Logger
}

type step struct {
	name string
	fn   func(c *cleaner) error
}

// steps is the fixed transform order. Enum conformance and the final
// deduplication must stay last.
var steps = []step{
	{"deduplicate", (*cleaner).deduplicate},
	{"coerce_types", (*cleaner).coerceTypes},
	{"parse_dates", (*cleaner).parseDates},
	{"split_blood_pressure", (*cleaner).splitBloodPressure},
	{"impute", (*cleaner).impute},
	{"clip", (*cleaner).clip},
	{"canonicalize", (*cleaner).canonicalize},
	{"conform_enums", (*cleaner).conformEnums},
	{"final_deduplicate", (*cleaner).finalDeduplicate},
}

// Run executes the full clean pipeline: read → preflight → transform steps →
// write. The input file is never modified.
func Run(log zerolog.Logger, opts Options) (*model.Table, *model.CleanSummary, error) {
	totalStart := time.Now()
	log, runID := logging.ForRun(log, "clean")

	rules := opts.Rules
	if rules == nil {
		rules = config.DefaultRules()
	}

	log.Info().Str("input", opts.Input).Msg("loading table")
	in, err := tableio.Read(opts.Input)
	if err != nil {
		return nil, nil, &PipelineError{Phase: PhaseRead, Err: err}
	}
	log.Info().
		Int("rows", in.Len()).
		Int("columns", len(in.Columns)).
		Msg("table loaded")

	out, summary, err := Clean(log, in, rules)
	if err != nil {
		return nil, nil, err
	}

	if err := tableio.Write(opts.Output, out); err != nil {
		return nil, nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}

	summary.RunID = runID
	summary.InputPath = opts.Input
	summary.OutputPath = opts.Output
	summary.Duration = time.Since(totalStart)

	log.Info().
		Str("output", opts.Output).
		Int("rows_read", summary.RowsRead).
		Int("rows_written", summary.RowsWritten).
		Int("columns", len(out.Columns)).
		Int("changes", summary.Changes()).
		Dur("duration", summary.Duration).
		Msg("clean pipeline complete")

	return out, summary, nil
}

// Clean applies the transform steps to a copy of in and returns the cleaned
// table. in is left untouched. A nil rules uses config.DefaultRules().
func Clean(log zerolog.Logger, in *model.Table, rules *config.Rules) (*model.Table, *model.CleanSummary, error) {
	if rules == nil {
		rules = config.DefaultRules()
	}
	if err := tableio.ValidateRawSchema(in); err != nil {
		return nil, nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	// AppendRow copies each row and normalizes missing tokens, so tables built
	// in memory get the same treatment as tables read from disk.
	t := model.NewTable(in.Columns)
	for i, row := range in.Rows {
		if err := t.AppendRow(row); err != nil {
			return nil, nil, &PipelineError{Phase: PhasePreflight, Err: fmt.Errorf("row %d: %w", i+1, err)}
		}
	}

	c := &cleaner{
		t:     t,
		rules: rules,
		sum: &model.CleanSummary{
			RowsRead:     in.Len(),
			CellsImputed: make(map[string]int),
			CellsClipped: make(map[string]int),
		},
		log: log,
	}

	for i, st := range steps {
		start := time.Now()
		if err := st.fn(c); err != nil {
			return nil, nil, &PipelineError{Phase: st.name, Err: err}
		}
		log.Debug().
			Int("step", i+1).
			Str("name", st.name).
			Int("rows", c.t.Len()).
			Dur("duration", time.Since(start)).
			Msg("step complete")
	}

	c.sum.RowsWritten = c.t.Len()
	return c.t, c.sum, nil
}
