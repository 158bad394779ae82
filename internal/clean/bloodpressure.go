package clean

import (
	"regexp"

	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
)

var bloodPressurePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)\s*$`)

// SplitBloodPressure parses "systolic/diastolic". ok is false for anything else.
func SplitBloodPressure(s string) (systolic, diastolic string, ok bool) {
	m := bloodPressurePattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	sys, ok1 := normalize.ParseNumber(m[1])
	dia, ok2 := normalize.ParseNumber(m[2])
	if !ok1 || !ok2 {
		return "", "", false
	}
	return normalize.FormatInteger(sys), normalize.FormatInteger(dia), true
}

// splitBloodPressure replaces blood_pressure with systolic_bp and diastolic_bp
// in place. Already-split tables pass through; their columns were coerced as
// integers. When both shapes are present the combined column wins.
func (c *cleaner) splitBloodPressure() error {
	if !c.t.Has(model.ColBloodPressure) {
		return nil
	}
	c.t.DropColumn(model.ColSystolic)
	c.t.DropColumn(model.ColDiastolic)

	idx := c.t.Index(model.ColBloodPressure)
	sys := make([]string, c.t.Len())
	dia := make([]string, c.t.Len())
	for r, row := range c.t.Rows {
		v := row[idx]
		if v == "" {
			continue
		}
		s, d, ok := SplitBloodPressure(v)
		if !ok {
			c.sum.BloodPressureMalformed++
			continue
		}
		sys[r], dia[r] = s, d
	}

	if err := c.t.ReplaceColumn(model.ColBloodPressure,
		[]string{model.ColSystolic, model.ColDiastolic},
		[][]string{sys, dia},
	); err != nil {
		return err
	}
	c.log.Info().Int("malformed", c.sum.BloodPressureMalformed).Msg("blood pressure split")
	return nil
}
