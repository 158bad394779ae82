package model

import "time"

// GenerateSummary captures metrics from a single generator run.
type GenerateSummary struct {
	RunID      string
	OutputPath string
	OutputSHA  string
	Rows       int
	Seed       *int64
	Duration   time.Duration
}

// CleanSummary captures metrics from a single cleaner run. Counters are
// cell counts unless named Rows*. A second pass over cleaned output must
// leave every change counter at zero.
type CleanSummary struct {
	RunID      string
	InputPath  string
	OutputPath string

	RowsRead                int
	DuplicatesRemoved       int
	CellsCoerced            int // non-empty cells that failed numeric coercion
	DatesUnparsed           int
	DatesReformatted        int
	BloodPressureMalformed  int
	CellsImputed            map[string]int
	ColumnsDefaulted        []string // columns with no observed values
	CellsClipped            map[string]int
	CellsCanonicalized      int
	EnumValuesConformed     int
	FinalDuplicatesRemoved  int
	NumericCellsReformatted int
	RowsWritten             int

	Duration time.Duration
}

// Changes returns the total number of modifications the run made.
func (s *CleanSummary) Changes() int {
	n := s.DuplicatesRemoved + s.CellsCoerced + s.DatesUnparsed + s.DatesReformatted +
		s.BloodPressureMalformed + s.CellsCanonicalized + s.EnumValuesConformed +
		s.FinalDuplicatesRemoved + s.NumericCellsReformatted
	for _, v := range s.CellsImputed {
		n += v
	}
	for _, v := range s.CellsClipped {
		n += v
	}
	return n
}

// TotalImputed sums CellsImputed across columns.
func (s *CleanSummary) TotalImputed() int {
	n := 0
	for _, v := range s.CellsImputed {
		n += v
	}
	return n
}

// TotalClipped sums CellsClipped across columns.
func (s *CleanSummary) TotalClipped() int {
	n := 0
	for _, v := range s.CellsClipped {
		n += v
	}
	return n
}
