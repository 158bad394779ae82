package inject_test

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/healthdata/internal/clean"
	"github.com/gyeh/healthdata/internal/config"
	"github.com/gyeh/healthdata/internal/generate"
	"github.com/gyeh/healthdata/internal/inject"
	"github.com/gyeh/healthdata/internal/model"
	"github.com/gyeh/healthdata/internal/report"
	"github.com/gyeh/healthdata/internal/tableio"
)

func generated(t *testing.T, rows int) *model.Table {
	t.Helper()
	seed := int64(1)
	tbl, err := generate.Generate(rows, &seed, config.DefaultRules())
	require.NoError(t, err)
	return tbl
}

func TestInject_Deterministic(t *testing.T) {
	src := generated(t, 100)
	a, sa := inject.Inject(src, 7, 0.1)
	b, sb := inject.Inject(src, 7, 0.1)
	assert.Equal(t, a, b)
	assert.Equal(t, sa, sb)
}

func TestInject_LeavesSourceAlone(t *testing.T) {
	src := generated(t, 50)
	before := src.Clone()
	messy, st := inject.Inject(src, 7, 0.5)
	assert.Equal(t, before, src)
	assert.Greater(t, st.Total(), 0)
	assert.Equal(t, 50+st.Duplicates, messy.Len())
	assert.Equal(t, 25, st.Duplicates)
}

func TestInject_ZeroRate(t *testing.T) {
	src := generated(t, 20)
	messy, st := inject.Inject(src, 7, 0)
	assert.Equal(t, src, messy)
	assert.Equal(t, 0, st.Total())
}

func TestInject_MessyReportsBadQuality(t *testing.T) {
	messy, _ := inject.Inject(generated(t, 200), 7, 0.2)
	path := filepath.Join(t.TempDir(), "messy.csv")
	require.NoError(t, tableio.Write(path, messy))
	reread, err := tableio.Read(path)
	require.NoError(t, err)

	r := report.Evaluate(reread, config.DefaultRules())
	assert.Equal(t, report.Poor, r.Score())
}

func TestCleaner_RepairsInjectedData(t *testing.T) {
	rules := config.DefaultRules()
	dir := t.TempDir()
	messyPath := filepath.Join(dir, "messy.csv")
	cleanPath := filepath.Join(dir, "clean.csv")

	messy, _ := inject.Inject(generated(t, 200), 7, 0.2)
	require.NoError(t, tableio.Write(messyPath, messy))

	once, sum, err := clean.Run(zerolog.Nop(), clean.Options{Input: messyPath, Output: cleanPath, Rules: rules})
	require.NoError(t, err)
	assert.Greater(t, sum.Changes(), 0)

	r := report.Evaluate(once, rules)
	assert.Equal(t, 0, r.TotalMissing())
	assert.Equal(t, 0, r.Duplicates)
	assert.Equal(t, report.Excellent, r.Score())

	reread, err := tableio.Read(cleanPath)
	require.NoError(t, err)
	assert.Equal(t, once, reread)

	twice, sum2, err := clean.Clean(zerolog.Nop(), reread, rules)
	require.NoError(t, err)
	assert.Equal(t, 0, sum2.Changes())
	assert.Equal(t, once, twice)
}
