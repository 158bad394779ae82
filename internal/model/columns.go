package model

// Kind classifies how a column is coerced, imputed and checked.
type Kind int

const (
	Text Kind = iota
	Integer
	Float
	Categorical
	Enum
	Date
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Categorical:
		return "categorical"
	case Enum:
		return "enum"
	case Date:
		return "date"
	default:
		return "text"
	}
}

// Numeric reports whether values of this kind are imputed by median.
func (k Kind) Numeric() bool {
	return k == Integer || k == Float
}

// Column names used across the pipeline.
const (
	ColPatientID     = "patient_id"
	ColAge           = "age"
	ColGender        = "gender"
	ColHeight        = "height_cm"
	ColWeight        = "weight_kg"
	ColTemperature   = "temperature"
	ColBloodPressure = "blood_pressure"
	ColSystolic      = "systolic_bp"
	ColDiastolic     = "diastolic_bp"
	ColHeartRate     = "heart_rate"
	ColDiagnosis     = "diagnosis"
	ColLengthOfStay  = "length_of_stay"
	ColAdmission     = "admission_date"
	ColInsurance     = "insurance_type"
)

// ColumnSpec describes one known patient column.
type ColumnSpec struct {
	Name  string
	Kind  Kind
	Raw   bool // present in generated / raw tables
	Clean bool // present in cleaned tables
}

// PatientColumns lists every known column. Order within the Raw and Clean
// subsets is the canonical column order of the respective table shapes.
var PatientColumns = []ColumnSpec{
	{Name: ColPatientID, Kind: Integer, Raw: true, Clean: true},
	{Name: ColAge, Kind: Integer, Raw: true, Clean: true},
	{Name: ColGender, Kind: Enum, Raw: true, Clean: true},
	{Name: ColHeight, Kind: Float, Raw: true, Clean: true},
	{Name: ColWeight, Kind: Float, Raw: true, Clean: true},
	{Name: ColTemperature, Kind: Float, Raw: true, Clean: true},
	{Name: ColBloodPressure, Kind: Text, Raw: true},
	{Name: ColSystolic, Kind: Integer, Clean: true},
	{Name: ColDiastolic, Kind: Integer, Clean: true},
	{Name: ColHeartRate, Kind: Integer, Raw: true, Clean: true},
	{Name: ColDiagnosis, Kind: Categorical, Raw: true, Clean: true},
	{Name: ColLengthOfStay, Kind: Integer, Raw: true, Clean: true},
	{Name: ColAdmission, Kind: Date, Raw: true, Clean: true},
	{Name: ColInsurance, Kind: Enum, Raw: true, Clean: true},
}

// RawColumns returns the column order of a generated (pre-clean) table.
func RawColumns() []string {
	var cols []string
	for _, c := range PatientColumns {
		if c.Raw {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// CleanColumns returns the column order of a cleaned table.
func CleanColumns() []string {
	var cols []string
	for _, c := range PatientColumns {
		if c.Clean {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// ColumnByName returns the ColumnSpec for the given name, or ok=false.
func ColumnByName(name string) (ColumnSpec, bool) {
	for _, c := range PatientColumns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// KindOf returns the kind of a column; unknown columns are Text.
func KindOf(name string) Kind {
	if c, ok := ColumnByName(name); ok {
		return c.Kind
	}
	return Text
}
