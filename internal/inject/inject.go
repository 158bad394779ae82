// Package inject corrupts a clean patient table so the cleaner has something
// to repair: blanks, bad types, outliers, spelling variants, mixed date
// formats, malformed blood pressure and duplicate rows.
package inject

import (
	"math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
)

// Stats counts what Inject changed.
type Stats struct {
	Blanked      int
	BadTypes     int
	Outliers     int
	Variants     int
	DatesMangled int
	BPMangled    int
	Duplicates   int
}

// Total returns the number of corrupted cells plus duplicated rows.
func (s Stats) Total() int {
	return s.Blanked + s.BadTypes + s.Outliers + s.Variants + s.DatesMangled + s.BPMangled + s.Duplicates
}

// Spelling variants the cleaner is expected to recognize.
var variants = map[string][]string{
	model.ColGender:    {"male", "Female", " m ", "WOMAN", "f", "Man"},
	model.ColInsurance: {"prvt", "NA", "none", "MEDICARE ", " medicaid", "Self   Pay", "mcare"},
	model.ColDiagnosis: {"copd", "htn", "heart DISEASE", "  diabetes", "ASTHMA", "dm"},
}

var badBloodPressure = []string{"invalid", "120-80", "high", "/", "120/", "?"}

var missingTokens = []string{"", "NaN", "N/A", "null", "  "}

// Outliers per column, far enough out that clipping must act.
var outliers = map[string][]string{
	model.ColAge:          {"-5", "150", "999"},
	model.ColTemperature:  {"307", "37", "-1"},
	model.ColHeight:       {"17", "1700"},
	model.ColWeight:       {"0.5", "700"},
	model.ColHeartRate:    {"0", "400"},
	model.ColLengthOfStay: {"-2", "365"},
}

// Unambiguous alternative date layouts; day-first slashes parse as intended.
var dateLayouts = []string{"02/01/2006", "January 2, 2006", "2 Jan 2006", "20060102"}

// Inject returns a corrupted copy of t. Each cell is corrupted with
// probability rate, and about rate*len(rows) duplicate rows are appended.
// The same seed always gives the same result; t is not modified.
func Inject(t *model.Table, seed int64, rate float64) (*model.Table, Stats) {
	s := uint64(seed)
	f := gofakeit.NewFaker(rand.NewPCG(s, s), false)
	out := t.Clone()
	var st Stats

	for idx, col := range out.Columns {
		for _, row := range out.Rows {
			if f.Float64() >= rate {
				continue
			}
			row[idx] = corrupt(f, col, row[idx], &st)
		}
	}

	dups := int(float64(len(out.Rows)) * rate)
	if len(out.Rows) > 0 {
		for i := 0; i < dups; i++ {
			src := out.Rows[f.Number(0, len(out.Rows)-1)]
			row := make([]string, len(src))
			copy(row, src)
			out.Rows = append(out.Rows, row)
			st.Duplicates++
		}
	}
	return out, st
}

// corrupt picks one kind of damage appropriate to the column.
func corrupt(f *gofakeit.Faker, col, v string, st *Stats) string {
	if f.Number(0, 3) == 0 {
		st.Blanked++
		return f.RandomString(missingTokens)
	}

	switch col {
	case model.ColBloodPressure:
		st.BPMangled++
		if f.Bool() {
			return f.RandomString(badBloodPressure)
		}
		return strings.ReplaceAll(v, "/", " / ")
	case model.ColAdmission:
		st.DatesMangled++
		d := normalize.ParseDate(v)
		if d == nil || f.Number(0, 4) == 0 {
			return "not a date"
		}
		return d.Format(f.RandomString(dateLayouts))
	}

	if vs, ok := variants[col]; ok {
		st.Variants++
		return f.RandomString(vs)
	}

	if model.KindOf(col).Numeric() {
		if vals, ok := outliers[col]; ok && f.Bool() {
			st.Outliers++
			return f.RandomString(vals)
		}
		st.BadTypes++
		return f.RandomString([]string{f.Word(), "abc", "12..5", "n/a?"})
	}

	st.Blanked++
	return ""
}
