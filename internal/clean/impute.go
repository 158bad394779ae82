package clean

import (
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
)

// impute fills every missing cell: numeric columns with the column median,
// everything else with the most frequent value. A column with no observed
// values falls back to its rules default.
func (c *cleaner) impute() error {
	for idx, col := range c.t.Columns {
		values := c.t.Values(col)
		missing := 0
		for _, v := range values {
			if v == "" {
				missing++
			}
		}
		if missing == 0 {
			continue
		}

		fill, ok := c.fillValue(col, values)
		if !ok {
			fill = c.rules.Default(col)
			c.sum.ColumnsDefaulted = append(c.sum.ColumnsDefaulted, col)
			c.log.Warn().
				Str("column", col).
				Str("default", fill).
				Msg("column has no observed values, using default")
		}

		for _, row := range c.t.Rows {
			if row[idx] == "" {
				row[idx] = fill
			}
		}
		c.sum.CellsImputed[col] = missing
		c.log.Info().
			Str("column", col).
			Int("cells", missing).
			Str("value", fill).
			Msg("missing values imputed")
	}
	return nil
}

func (c *cleaner) fillValue(col string, values []string) (string, bool) {
	kind := model.KindOf(col)
	if kind.Numeric() {
		m, ok := median(values)
		if !ok {
			return "", false
		}
		return formatNumber(kind, m), true
	}
	return mode(values, nil)
}

// clip clamps numeric columns to their configured ranges. Columns without a
// range are left alone.
func (c *cleaner) clip() error {
	for idx, col := range c.t.Columns {
		kind := model.KindOf(col)
		rg, ok := c.rules.RangeFor(col)
		if !ok || !kind.Numeric() {
			continue
		}
		n := 0
		for _, row := range c.t.Rows {
			v, ok := normalize.ParseNumber(row[idx])
			if !ok || rg.Contains(v) {
				continue
			}
			row[idx] = formatNumber(kind, rg.Clamp(v))
			n++
		}
		if n > 0 {
			c.sum.CellsClipped[col] = n
			c.log.Info().
				Str("column", col).
				Int("cells", n).
				Float64("min", rg.Min).
				Float64("max", rg.Max).
				Msg("out-of-range values clipped")
		}
	}
	return nil
}
