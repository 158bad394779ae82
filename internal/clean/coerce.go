package clean

import (
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
)

// coerceTypes parses every integer and float column. Cells that do not parse
// become missing; the rest are rewritten in canonical numeric form.
func (c *cleaner) coerceTypes() error {
	for idx, col := range c.t.Columns {
		kind := model.KindOf(col)
		if !kind.Numeric() {
			continue
		}
		for _, row := range c.t.Rows {
			v := row[idx]
			if v == "" {
				continue
			}
			num, ok := normalize.ParseNumber(v)
			if !ok {
				row[idx] = ""
				c.sum.CellsCoerced++
				continue
			}
			if f := formatNumber(kind, num); f != v {
				row[idx] = f
				c.sum.NumericCellsReformatted++
			}
		}
	}
	c.log.Info().
		Int("coerced_to_missing", c.sum.CellsCoerced).
		Int("reformatted", c.sum.NumericCellsReformatted).
		Msg("numeric types fixed")
	return nil
}

// parseDates rewrites admission_date as YYYY-MM-DD; unparseable cells become missing.
func (c *cleaner) parseDates() error {
	idx := c.t.Index(model.ColAdmission)
	for _, row := range c.t.Rows {
		v := row[idx]
		if v == "" {
			continue
		}
		d := normalize.ParseDate(v)
		if d == nil {
			row[idx] = ""
			c.sum.DatesUnparsed++
			continue
		}
		if f := normalize.FormatDate(*d); f != v {
			row[idx] = f
			c.sum.DatesReformatted++
		}
	}
	c.log.Info().
		Int("unparsed", c.sum.DatesUnparsed).
		Int("reformatted", c.sum.DatesReformatted).
		Msg("dates parsed")
	return nil
}

func formatNumber(kind model.Kind, v float64) string {
	if kind == model.Integer {
		return normalize.FormatInteger(v)
	}
	return normalize.FormatFloat(v)
}
