package model

// PatientRow mirrors the Parquet schema used for patient tables. Every column
// is an optional string so raw, messy and cleaned tables share one layout;
// typing happens in the cleaner, not in the file.
type PatientRow struct {
	PatientID     *string `parquet:"patient_id,optional"`
	Age           *string `parquet:"age,optional"`
	Gender        *string `parquet:"gender,optional"`
	HeightCM      *string `parquet:"height_cm,optional"`
	WeightKG      *string `parquet:"weight_kg,optional"`
	Temperature   *string `parquet:"temperature,optional"`
	BloodPressure *string `parquet:"blood_pressure,optional"`
	SystolicBP    *string `parquet:"systolic_bp,optional"`
	DiastolicBP   *string `parquet:"diastolic_bp,optional"`
	HeartRate     *string `parquet:"heart_rate,optional"`
	Diagnosis     *string `parquet:"diagnosis,optional"`
	LengthOfStay  *string `parquet:"length_of_stay,optional"`
	AdmissionDate *string `parquet:"admission_date,optional"`
	InsuranceType *string `parquet:"insurance_type,optional"`
}

// fields returns pointers to each column slot keyed by column name.
func (r *PatientRow) fields() map[string]**string {
	return map[string]**string{
		ColPatientID:     &r.PatientID,
		ColAge:           &r.Age,
		ColGender:        &r.Gender,
		ColHeight:        &r.HeightCM,
		ColWeight:        &r.WeightKG,
		ColTemperature:   &r.Temperature,
		ColBloodPressure: &r.BloodPressure,
		ColSystolic:      &r.SystolicBP,
		ColDiastolic:     &r.DiastolicBP,
		ColHeartRate:     &r.HeartRate,
		ColDiagnosis:     &r.Diagnosis,
		ColLengthOfStay:  &r.LengthOfStay,
		ColAdmission:     &r.AdmissionDate,
		ColInsurance:     &r.InsuranceType,
	}
}

// PatientRowFromCells builds a PatientRow from cells laid out per columns.
// Missing cells become nulls. Returns ok=false for a column PatientRow cannot hold.
func PatientRowFromCells(columns, cells []string) (PatientRow, string, bool) {
	var r PatientRow
	slots := r.fields()
	for i, name := range columns {
		slot, ok := slots[name]
		if !ok {
			return PatientRow{}, name, false
		}
		if cells[i] == "" {
			continue
		}
		v := cells[i]
		*slot = &v
	}
	return r, "", true
}

// Cells returns the row's values for the requested columns; nulls become "".
func (r *PatientRow) Cells(columns []string) []string {
	slots := r.fields()
	out := make([]string, len(columns))
	for i, name := range columns {
		if slot, ok := slots[name]; ok && *slot != nil {
			out[i] = **slot
		}
	}
	return out
}
