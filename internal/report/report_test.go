package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/tableio"
)

func cleanTable(t *testing.T) *model.Table {
	t.Helper()
	tbl := model.NewTable(model.CleanColumns())
	rows := [][]string{
		{"1000", "45", "M", "170", "70", "98.6", "120", "80", "75", "Asthma", "3", "2023-01-05", "Private"},
		{"1001", "60", "F", "160.5", "62", "99.1", "135", "85", "90", "COPD", "5", "2023-02-11", "Medicare"},
	}
	for _, r := range rows {
		require.NoError(t, tbl.AppendRow(r))
	}
	return tbl
}

func TestScore(t *testing.T) {
	assert.Equal(t, Excellent, Score(0))
	assert.Equal(t, Good, Score(1))
	assert.Equal(t, Fair, Score(2))
	assert.Equal(t, Poor, Score(3))
	assert.Equal(t, Poor, Score(4))
}

func TestEvaluate_Clean(t *testing.T) {
	r := Evaluate(cleanTable(t), config.DefaultRules())
	assert.Equal(t, 2, r.Rows)
	assert.Equal(t, 13, r.Columns)
	assert.Equal(t, 0, r.Failed())
	assert.Equal(t, Excellent, r.Score())
	assert.Len(t, r.Ranges, 8)
	assert.Len(t, r.Categorical, 2)
}

func TestEvaluate_OneMissingValue(t *testing.T) {
	tbl := cleanTable(t)
	tbl.Rows[1][tbl.Index(model.ColAge)] = ""

	r := Evaluate(tbl, config.DefaultRules())
	passed := r.Passed()
	assert.False(t, passed[CheckMissing])
	assert.True(t, passed[CheckDuplicates])
	assert.True(t, passed[CheckRanges], "missing cells are not range violations")
	assert.True(t, passed[CheckCategorical])
	assert.Equal(t, 1, r.TotalMissing())
	assert.Equal(t, Good, r.Score())
}

func TestEvaluate_AllChecksFail(t *testing.T) {
	tbl := cleanTable(t)
	require.NoError(t, tbl.AppendRow(tbl.Rows[0]))
	tbl.Rows[1][tbl.Index(model.ColTemperature)] = "307"
	tbl.Rows[1][tbl.Index(model.ColHeartRate)] = "fast"
	tbl.Rows[1][tbl.Index(model.ColGender)] = "male"
	tbl.Rows[1][tbl.Index(model.ColDiagnosis)] = ""

	r := Evaluate(tbl, config.DefaultRules())
	assert.Equal(t, 1, r.Duplicates)
	assert.Equal(t, 1, r.TotalMissing())
	assert.Equal(t, 2, r.TotalRangeViolations(), "non-numeric cells count as violations")
	assert.Equal(t, 1, r.TotalCategoryViolations())
	assert.Equal(t, 4, r.Failed())
	assert.Equal(t, Poor, r.Score())

	for _, c := range r.Categorical {
		if c.Column == model.ColGender {
			assert.Equal(t, []string{"male"}, c.Unexpected)
		}
	}
}

func TestEvaluate_SkipsAbsentColumns(t *testing.T) {
	tbl := model.NewTable([]string{model.ColAge, "notes"})
	require.NoError(t, tbl.AppendRow([]string{"200", "x"}))

	r := Evaluate(tbl, config.DefaultRules())
	require.Len(t, r.Ranges, 1)
	assert.Equal(t, model.ColAge, r.Ranges[0].Column)
	assert.Empty(t, r.Categorical)
	assert.Equal(t, Good, r.Score())
}

func TestEvaluate_Deterministic(t *testing.T) {
	tbl := cleanTable(t)
	tbl.Rows[0][tbl.Index(model.ColInsurance)] = "Gold"
	tbl.Rows[1][tbl.Index(model.ColInsurance)] = "Bronze"

	var a, b bytes.Buffer
	require.NoError(t, Evaluate(tbl, nil).Render(&a))
	require.NoError(t, Evaluate(tbl, nil).Render(&b))
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "unexpected: Bronze, Gold")
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.parquet")
	require.NoError(t, tableio.Write(path, cleanTable(t)))

	var out bytes.Buffer
	r, err := Run(zerolog.Nop(), Options{Input: path}, &out)
	require.NoError(t, err)
	assert.Equal(t, Excellent, r.Score())
	assert.Len(t, r.SHA256, 64)

	text := out.String()
	assert.Contains(t, text, path)
	assert.Contains(t, text, r.SHA256)
	assert.Contains(t, text, "2 rows x 13 columns")
	assert.Contains(t, text, "Overall: Excellent (0 of 4 checks failed)")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	_, err := Run(zerolog.Nop(), Options{Input: filepath.Join(dir, "missing.csv")}, &out)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("a,b\n1,2,3\n"), 0o644))
	_, err = Run(zerolog.Nop(), Options{Input: bad}, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String(), "nothing rendered for an unreadable table")
}
