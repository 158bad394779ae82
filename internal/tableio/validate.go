package tableio

import (
	"fmt"

	"github.com/gyeh/healthdata/internal/model"
)

// ValidateRawSchema checks that a table can enter the cleaner: every raw
// column except blood_pressure, plus either blood_pressure or both of
// systolic_bp and diastolic_bp (so cleaned output is itself valid input).
func ValidateRawSchema(t *model.Table) error {
	for _, col := range model.RawColumns() {
		if col == model.ColBloodPressure {
			continue
		}
		if !t.Has(col) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	if t.Has(model.ColBloodPressure) {
		return nil
	}
	if t.Has(model.ColSystolic) && t.Has(model.ColDiastolic) {
		return nil
	}
	return fmt.Errorf("%w: need %s or both %s and %s",
		ErrMissingColumn, model.ColBloodPressure, model.ColSystolic, model.ColDiastolic)
}
