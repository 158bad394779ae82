package clean

import (
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
)

// canonicalColumns are rewritten through the rules lookups.
var canonicalColumns = []string{model.ColGender, model.ColInsurance, model.ColDiagnosis}

// canonicalize maps category spellings to their canonical forms.
func (c *cleaner) canonicalize() error {
	for _, col := range canonicalColumns {
		idx := c.t.Index(col)
		if idx < 0 {
			continue
		}
		lookup := c.rules.Lookups[col]
		for _, row := range c.t.Rows {
			v := normalize.Canonicalize(row[idx], lookup)
			if v != row[idx] {
				row[idx] = v
				c.sum.CellsCanonicalized++
			}
		}
	}
	c.log.Info().Int("cells", c.sum.CellsCanonicalized).Msg("categories canonicalized")
	return nil
}

// conformEnums replaces values outside an enum's allowed set with the most
// frequent valid value in that column, or the rules default when none is valid.
func (c *cleaner) conformEnums() error {
	for idx, col := range c.t.Columns {
		if model.KindOf(col) != model.Enum {
			continue
		}
		if _, ok := c.rules.Categories[col]; !ok {
			continue
		}
		valid := func(v string) bool { return c.rules.Valid(col, v) }

		var fill string
		n := 0
		for _, row := range c.t.Rows {
			if valid(row[idx]) {
				continue
			}
			if fill == "" {
				fill = c.enumFallback(col, valid)
			}
			c.log.Debug().
				Str("column", col).
				Str("from", row[idx]).
				Str("to", fill).
				Msg("value outside allowed set")
			row[idx] = fill
			n++
		}
		if n > 0 {
			c.sum.EnumValuesConformed += n
			c.log.Warn().Str("column", col).Int("cells", n).Msg("values outside allowed set replaced")
		}
	}
	return nil
}

func (c *cleaner) enumFallback(col string, valid func(string) bool) string {
	if m, ok := mode(c.t.Values(col), valid); ok {
		return m
	}
	if d := c.rules.Default(col); valid(d) {
		return d
	}
	return c.rules.Categories[col][0]
}
