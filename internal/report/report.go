package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/logging"
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
	"github.com/gyeh/healthdata/internal/tableio"
)

// Check names in scorecard order.
const (
	CheckMissing     = "Missing values"
	CheckDuplicates  = "Duplicate rows"
	CheckRanges      = "Range violations"
	CheckCategorical = "Categorical consistency"
)

// Overall ratings by number of failing checks.
const (
	Excellent = "Excellent"
	Good      = "Good"
	Fair      = "Fair"
	Poor      = "Poor"
)

// Score maps the number of failing checks to an overall rating.
func Score(failed int) string {
	switch {
	case failed <= 0:
		return Excellent
	case failed == 1:
		return Good
	case failed == 2:
		return Fair
	default:
		return Poor
	}
}

// ColumnCount is a per-column tally.
type ColumnCount struct {
	Column string
	Count  int
}

// RangeResult is the range check outcome for one column.
type RangeResult struct {
	Column     string
	Range      config.Range
	Violations int
}

// CategoryResult is the consistency check outcome for one enum column.
type CategoryResult struct {
	Column     string
	Allowed    []string
	Violations int
	Unexpected []string // distinct offending values, sorted
}

// Report holds the results of every check.
type Report struct {
	Path    string
	SHA256  string
	Size    int64
	Rows    int
	Columns int

	Missing     []ColumnCount
	Duplicates  int
	Ranges      []RangeResult
	Categorical []CategoryResult
}

// Options mirrors the report command's flags.
type Options struct {
	Input string
	Rules *config.Rules // nil: config.DefaultRules()
}

// TotalMissing sums missing cells across columns.
func (r *Report) TotalMissing() int {
	n := 0
	for _, m := range r.Missing {
		n += m.Count
	}
	return n
}

// TotalRangeViolations sums range violations across columns.
func (r *Report) TotalRangeViolations() int {
	n := 0
	for _, rr := range r.Ranges {
		n += rr.Violations
	}
	return n
}

// TotalCategoryViolations sums enum violations across columns.
func (r *Report) TotalCategoryViolations() int {
	n := 0
	for _, c := range r.Categorical {
		n += c.Violations
	}
	return n
}

// Passed returns each check's pass/fail, keyed by check name.
func (r *Report) Passed() map[string]bool {
	return map[string]bool{
		CheckMissing:     r.TotalMissing() == 0,
		CheckDuplicates:  r.Duplicates == 0,
		CheckRanges:      r.TotalRangeViolations() == 0,
		CheckCategorical: r.TotalCategoryViolations() == 0,
	}
}

// Failed counts failing checks.
func (r *Report) Failed() int {
	n := 0
	for _, ok := range r.Passed() {
		if !ok {
			n++
		}
	}
	return n
}

// Score returns the overall rating.
func (r *Report) Score() string {
	return Score(r.Failed())
}

// Evaluate runs all checks against t. Columns a check needs but t lacks are skipped.
func Evaluate(t *model.Table, rules *config.Rules) *Report {
	if rules == nil {
		rules = config.DefaultRules()
	}
	r := &Report{
		Rows:       t.Len(),
		Columns:    len(t.Columns),
		Duplicates: len(t.DuplicateRows()),
	}

	for i, n := range t.MissingCount() {
		r.Missing = append(r.Missing, ColumnCount{Column: t.Columns[i], Count: n})
	}

	for _, col := range t.Columns {
		rg, ok := rules.RangeFor(col)
		if !ok || !model.KindOf(col).Numeric() {
			continue
		}
		res := RangeResult{Column: col, Range: rg}
		for _, v := range t.Values(col) {
			if v == "" {
				continue
			}
			num, ok := normalize.ParseNumber(v)
			if !ok || !rg.Contains(num) {
				res.Violations++
			}
		}
		r.Ranges = append(r.Ranges, res)
	}

	for _, col := range t.Columns {
		allowed, ok := rules.Categories[col]
		if !ok {
			continue
		}
		res := CategoryResult{Column: col, Allowed: allowed}
		seen := make(map[string]bool)
		for _, v := range t.Values(col) {
			if v == "" || rules.Valid(col, v) {
				continue
			}
			res.Violations++
			if !seen[v] {
				seen[v] = true
				res.Unexpected = append(res.Unexpected, v)
			}
		}
		sort.Strings(res.Unexpected)
		r.Categorical = append(r.Categorical, res)
	}

	return r
}

// Run reads the input table, evaluates it and renders the report to w.
func Run(log zerolog.Logger, opts Options, w io.Writer) (*Report, error) {
	start := time.Now()
	log, _ = logging.ForRun(log, "report")

	rules := opts.Rules
	if rules == nil {
		rules = config.DefaultRules()
	}

	log.Info().Str("input", opts.Input).Msg("loading table")
	t, err := tableio.Read(opts.Input)
	if err != nil {
		return nil, err
	}

	sha, err := normalize.FileHash(opts.Input)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	r := Evaluate(t, rules)
	r.Path = opts.Input
	r.SHA256 = sha
	r.Size = st.Size()

	if err := r.Render(w); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	log.Info().
		Int("rows", r.Rows).
		Int("failed_checks", r.Failed()).
		Str("score", r.Score()).
		Dur("duration", time.Since(start)).
		Msg("report complete")
	return r, nil
}
