package tableio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/healthdata/internal/model"
)

func sampleTable(t *testing.T) *model.Table {
	t.Helper()
	tbl := model.NewTable(model.RawColumns())
	rows := [][]string{
		{"1000", "45", "M", "170.5", "70", "98.6", "120/80", "75", "Asthma", "3", "2023-01-05", "Private"},
		{"1001", "", "F", "160", "NaN", "101.2", "", "88", "Heart Disease", "", "2022-11-30", "NA"},
		{"1002", "30", " male ", "150", "55.5", "97", "invalid", "n/a", "copd", "7", "05/01/2023", "None"},
	}
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(r))
	}
	return tbl
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, CSV, FormatOf("a.csv"))
	assert.Equal(t, Parquet, FormatOf("a.PARQUET"))
	assert.Equal(t, XLSX, FormatOf("dir/a.xlsx"))
	assert.Equal(t, CSV, FormatOf("a.txt"))
}

func TestRoundTrip(t *testing.T) {
	for _, ext := range []string{".csv", ".parquet", ".xlsx"} {
		t.Run(ext, func(t *testing.T) {
			want := sampleTable(t)
			path := filepath.Join(t.TempDir(), "nested", "table"+ext)

			require.NoError(t, Write(path, want))
			got, err := Read(path)
			require.NoError(t, err)

			assert.Equal(t, want.Columns, got.Columns)
			assert.Equal(t, want.Rows, got.Rows)
		})
	}
}

func TestRoundTrip_CleanShape(t *testing.T) {
	tbl := model.NewTable(model.CleanColumns())
	require.NoError(t, tbl.AppendRow([]string{
		"1000", "45", "M", "170.5", "70", "98.6", "120", "80", "75", "Asthma", "3", "2023-01-05", "Private",
	}))
	for _, ext := range []string{".csv", ".parquet", ".xlsx"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "clean"+ext)
			require.NoError(t, Write(path, tbl))
			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, tbl, got)
		})
	}
}

func TestRead_MissingTokens(t *testing.T) {
	got := sampleTable(t)
	assert.Equal(t, "", got.Rows[1][got.Index(model.ColAge)])
	assert.Equal(t, "", got.Rows[1][got.Index(model.ColWeight)])
	assert.Equal(t, "", got.Rows[2][got.Index(model.ColHeartRate)])
	assert.Equal(t, "NA", got.Rows[1][got.Index(model.ColInsurance)], "NA is an insurance variant")
	assert.Equal(t, "None", got.Rows[2][got.Index(model.ColInsurance)])
}

func TestReadCSV_BOMAndWhitespaceHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffa, b \n1,2\n"), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Columns)
	assert.Equal(t, [][]string{{"1", "2"}}, got.Rows)
}

func TestReadCSV_StrayQuoteInCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.csv")
	require.NoError(t, os.WriteFile(path, []byte("height_cm,age\n5'7\",45\n160,30\n"), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{`5'7"`, "45"}, {"160", "30"}}, got.Rows)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty file", ""},
		{"ragged row", "a,b\n1,2,3\n"},
		{"duplicate header", "a,a\n1,2\n"},
		{"empty header cell", "a,\n1,2\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.csv")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))
			_, err := Read(path)
			assert.Error(t, err)
		})
	}

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := Read(path)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	var pe *fs.PathError
	assert.True(t, errors.As(err, &pe))
}

func TestWriteParquet_UnsupportedColumn(t *testing.T) {
	tbl := model.NewTable([]string{model.ColPatientID, "notes"})
	require.NoError(t, tbl.AppendRow([]string{"1", "x"}))

	path := filepath.Join(t.TempDir(), "t.parquet")
	err := Write(path, tbl)
	assert.ErrorIs(t, err, ErrUnsupportedColumn)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no partial output")
}

func TestWrite_ExtraColumnsCSVAndXLSX(t *testing.T) {
	tbl := model.NewTable([]string{model.ColPatientID, "notes"})
	require.NoError(t, tbl.AppendRow([]string{"1", "x"}))

	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(t.TempDir(), "t"+ext)
		require.NoError(t, Write(path, tbl))
		got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, tbl, got)
	}
}

func TestWrite_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.csv")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	require.NoError(t, Write(path, sampleTable(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
}

func TestValidateRawSchema(t *testing.T) {
	assert.NoError(t, ValidateRawSchema(sampleTable(t)))
	assert.NoError(t, ValidateRawSchema(model.NewTable(model.CleanColumns())))

	noAge := sampleTable(t)
	noAge.DropColumn(model.ColAge)
	err := ValidateRawSchema(noAge)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), model.ColAge)

	noBP := sampleTable(t)
	noBP.DropColumn(model.ColBloodPressure)
	assert.ErrorIs(t, ValidateRawSchema(noBP), ErrMissingColumn)
}
