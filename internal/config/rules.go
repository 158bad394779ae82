package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/normalize"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp returns v clipped to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Rules is the data contract shared by all stages: valid ranges, enum sets,
// canonical spellings and fallback values.
type Rules struct {
	Ranges     map[string]Range             `yaml:"ranges"`
	Categories map[string][]string          `yaml:"categories"`
	Lookups    map[string]map[string]string `yaml:"lookups"`
	Defaults   map[string]string            `yaml:"defaults"`
	Diagnoses  []string                     `yaml:"diagnoses"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *Rules {
	return &Rules{
		Ranges: map[string]Range{
			model.ColAge:          {Min: 0, Max: 90},
			model.ColHeight:       {Min: 100, Max: 200},
			model.ColWeight:       {Min: 20, Max: 150},
			model.ColTemperature:  {Min: 95, Max: 106},
			model.ColHeartRate:    {Min: 30, Max: 150},
			model.ColLengthOfStay: {Min: 0, Max: 30},
			model.ColSystolic:     {Min: 80, Max: 200},
			model.ColDiastolic:    {Min: 40, Max: 120},
		},
		Categories: map[string][]string{
			model.ColGender:    {"M", "F"},
			model.ColInsurance: {"Private", "Medicare", "Medicaid", "Uninsured"},
		},
		Lookups: map[string]map[string]string{
			model.ColGender: {
				"m":      "M",
				"male":   "M",
				"man":    "M",
				"f":      "F",
				"female": "F",
				"woman":  "F",
			},
			model.ColInsurance: {
				"private":   "Private",
				"prvt":      "Private",
				"pvt":       "Private",
				"medicare":  "Medicare",
				"med":       "Medicare",
				"mcare":     "Medicare",
				"medicaid":  "Medicaid",
				"mcaid":     "Medicaid",
				"uninsured": "Uninsured",
				"none":      "Uninsured",
				"na":        "Uninsured",
				"self pay":  "Uninsured",
			},
			model.ColDiagnosis: {
				"copd":          "COPD",
				"heart disease": "Heart Disease",
				"htn":           "Hypertension",
				"dm":            "Diabetes",
			},
		},
		Defaults: map[string]string{
			model.ColPatientID:    "1000",
			model.ColAge:          "45",
			model.ColGender:       "M",
			model.ColHeight:       "170",
			model.ColWeight:       "70",
			model.ColTemperature:  "98.6",
			model.ColSystolic:     "120",
			model.ColDiastolic:    "80",
			model.ColHeartRate:    "75",
			model.ColDiagnosis:    "Unknown",
			model.ColLengthOfStay: "3",
			model.ColAdmission:    "1900-01-01",
			model.ColInsurance:    "Uninsured",
		},
		Diagnoses: []string{
			"Hypertension", "Diabetes", "Asthma", "Heart Disease", "Injury",
			"Cancer", "COPD", "Anxiety", "Depression", "Obesity",
		},
	}
}

// LoadFromFile reads a YAML rules file and merges its values over r.
// Maps merge per key; a non-empty diagnoses list replaces the vocabulary.
func (r *Rules) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}
	var override Rules
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("parse rules file: %w", err)
	}
	if err := override.validate(); err != nil {
		return fmt.Errorf("rules file %s: %w", path, err)
	}

	for col, rg := range override.Ranges {
		r.Ranges[col] = rg
	}
	for col, set := range override.Categories {
		r.Categories[col] = set
	}
	for col, m := range override.Lookups {
		if r.Lookups[col] == nil {
			r.Lookups[col] = make(map[string]string)
		}
		for k, v := range m {
			r.Lookups[col][normalize.LookupKey(k)] = v
		}
	}
	for col, v := range override.Defaults {
		r.Defaults[col] = v
	}
	if len(override.Diagnoses) > 0 {
		r.Diagnoses = override.Diagnoses
	}
	if err := r.checkDefaults(); err != nil {
		return fmt.Errorf("rules file %s: %w", path, err)
	}
	return nil
}

// checkDefaults rejects fallback values the cleaner could not emit itself:
// numeric defaults must parse and sit inside the column's range, enum
// defaults must be allowed values and date defaults must be YYYY-MM-DD.
func (r *Rules) checkDefaults() error {
	for _, col := range sortedKeys(r.Defaults) {
		v := r.Defaults[col]
		switch model.KindOf(col) {
		case model.Integer, model.Float:
			num, ok := normalize.ParseNumber(v)
			if !ok {
				return fmt.Errorf("default for %q is not a number: %q", col, v)
			}
			if rg, ok := r.Ranges[col]; ok && !rg.Contains(num) {
				return fmt.Errorf("default for %q is %g, outside %g..%g", col, num, rg.Min, rg.Max)
			}
		case model.Enum:
			if !r.Valid(col, v) {
				return fmt.Errorf("default for %q is %q, not an allowed value", col, v)
			}
		case model.Date:
			d := normalize.ParseDate(v)
			if d == nil || normalize.FormatDate(*d) != v {
				return fmt.Errorf("default for %q is %q, want YYYY-MM-DD", col, v)
			}
		}
	}
	return nil
}

// validate checks that every entry refers to a known column of the right kind.
func (r *Rules) validate() error {
	for _, col := range sortedKeys(r.Ranges) {
		if !model.KindOf(col).Numeric() {
			return fmt.Errorf("range for non-numeric or unknown column %q", col)
		}
		if rg := r.Ranges[col]; rg.Min > rg.Max {
			return fmt.Errorf("range for %q has min %g > max %g", col, rg.Min, rg.Max)
		}
	}
	for _, col := range sortedKeys(r.Categories) {
		if model.KindOf(col) != model.Enum {
			return fmt.Errorf("categories for non-enum column %q", col)
		}
		if len(r.Categories[col]) == 0 {
			return fmt.Errorf("categories for %q is empty", col)
		}
	}
	for _, col := range sortedKeys(r.Lookups) {
		if k := model.KindOf(col); k != model.Enum && k != model.Categorical {
			return fmt.Errorf("lookup for non-categorical column %q", col)
		}
	}
	for _, col := range sortedKeys(r.Defaults) {
		if _, ok := model.ColumnByName(col); !ok {
			return fmt.Errorf("default for unknown column %q", col)
		}
	}
	return nil
}

// RangeFor returns the declared range of a column, if any.
func (r *Rules) RangeFor(col string) (Range, bool) {
	rg, ok := r.Ranges[col]
	return rg, ok
}

// Valid reports whether v is in the enum set of col. Columns without a set
// accept everything.
func (r *Rules) Valid(col, v string) bool {
	set, ok := r.Categories[col]
	if !ok {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Default returns the fallback value for a column with no observations.
func (r *Rules) Default(col string) string {
	if v, ok := r.Defaults[col]; ok && v != "" {
		return v
	}
	return "Unknown"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
