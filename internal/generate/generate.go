package generate

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"

	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/logging"
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
	"github.com/gyeh/healthdata/internal/tableio"
)

// FirstPatientID is the id of the first generated row; ids are sequential.
const FirstPatientID = 1000

// Admission dates are drawn uniformly from this inclusive window.
var (
	DateStart = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	DateEnd   = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Options mirrors the generate command's flags.
type Options struct {
	Rows   int
	Output string
	Seed   *int64        // nil: different data every run
	Rules  *config.Rules // nil: config.DefaultRules()
}

// Run generates a table and writes it to opts.Output.
func Run(log zerolog.Logger, opts Options) (*model.Table, *model.GenerateSummary, error) {
	start := time.Now()
	log, runID := logging.ForRun(log, "generate")

	rules := opts.Rules
	if rules == nil {
		rules = config.DefaultRules()
	}

	ev := log.Info().Int("rows", opts.Rows).Str("output", opts.Output)
	if opts.Seed != nil {
		ev = ev.Int64("seed", *opts.Seed)
	}
	ev.Msg("generating dataset")

	t, err := Generate(opts.Rows, opts.Seed, rules)
	if err != nil {
		return nil, nil, err
	}

	if err := tableio.Write(opts.Output, t); err != nil {
		return nil, nil, err
	}

	sha, err := normalize.FileHash(opts.Output)
	if err != nil {
		return nil, nil, err
	}

	summary := &model.GenerateSummary{
		RunID:      runID,
		OutputPath: opts.Output,
		OutputSHA:  sha,
		Rows:       t.Len(),
		Seed:       opts.Seed,
		Duration:   time.Since(start),
	}

	log.Info().
		Int("rows", summary.Rows).
		Int("columns", len(t.Columns)).
		Str("sha256", sha).
		Dur("duration", summary.Duration).
		Msg("dataset generated")

	return t, summary, nil
}

// Generate builds rows synthetic patient records. Every field is drawn
// independently; there is no cross-field correlation. The same seed and row
// count always produce the same table. A nil rules uses config.DefaultRules().
func Generate(rows int, seed *int64, rules *config.Rules) (*model.Table, error) {
	if rows < 1 {
		return nil, fmt.Errorf("%w (got %d)", config.ErrInvalidRows, rows)
	}
	if rules == nil {
		rules = config.DefaultRules()
	}
	for _, col := range []string{model.ColGender, model.ColInsurance} {
		if len(rules.Categories[col]) == 0 {
			return nil, fmt.Errorf("no categories configured for %s", col)
		}
	}
	if len(rules.Diagnoses) == 0 {
		return nil, fmt.Errorf("no diagnoses configured")
	}

	f := newFaker(seed)
	cols := model.RawColumns()
	t := model.NewTable(cols)
	spanDays := int(DateEnd.Sub(DateStart).Hours() / 24)

	for i := 0; i < rows; i++ {
		cells := make([]string, len(cols))
		for j, col := range cols {
			switch col {
			case model.ColPatientID:
				cells[j] = strconv.Itoa(FirstPatientID + i)
			case model.ColGender, model.ColInsurance:
				cells[j] = f.RandomString(rules.Categories[col])
			case model.ColDiagnosis:
				cells[j] = f.RandomString(rules.Diagnoses)
			case model.ColBloodPressure:
				sys := intIn(f, rules.Ranges[model.ColSystolic])
				dia := intIn(f, rules.Ranges[model.ColDiastolic])
				cells[j] = sys + "/" + dia
			case model.ColAdmission:
				cells[j] = normalize.FormatDate(DateStart.AddDate(0, 0, f.Number(0, spanDays)))
			default:
				switch model.KindOf(col) {
				case model.Integer:
					cells[j] = intIn(f, rules.Ranges[col])
				case model.Float:
					cells[j] = floatIn(f, rules.Ranges[col])
				}
			}
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func newFaker(seed *int64) *gofakeit.Faker {
	if seed == nil {
		return gofakeit.New(0)
	}
	s := uint64(*seed)
	return gofakeit.NewFaker(rand.NewPCG(s, s), false)
}

func intIn(f *gofakeit.Faker, r config.Range) string {
	return strconv.Itoa(f.Number(int(math.Ceil(r.Min)), int(math.Floor(r.Max))))
}

func floatIn(f *gofakeit.Faker, r config.Range) string {
	return normalize.FormatFloat(r.Clamp(normalize.Round1(f.Float64Range(r.Min, r.Max))))
}
