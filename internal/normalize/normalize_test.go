package normalize

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2023-03-04", "2023-03-04"},
		{" 2023-03-04 ", "2023-03-04"},
		{"2023-03-04 10:30:00", "2023-03-04"},
		{"2023-03-04T10:30:00Z", "2023-03-04"},
		{"04/03/2023", "2023-03-04"}, // day first
		{"25/12/2023", "2023-12-25"},
		{"12/25/2023", "2023-12-25"}, // month first only when day-first fails
		{"2023/03/04", "2023-03-04"},
		{"04-03-2023", "2023-03-04"},
		{"Mar 4, 2023", "2023-03-04"},
		{"March 4, 2023", "2023-03-04"},
		{"4 Mar 2023", "2023-03-04"},
		{"20230304", "2023-03-04"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := ParseDate(tc.in)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, FormatDate(*got))
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "2023-13-01", "32/01/2023"} {
		assert.Nil(t, ParseDate(in), in)
	}
}

func TestCanonicalize(t *testing.T) {
	gender := map[string]string{"male": "M", "m": "M", "female": "F"}
	insurance := map[string]string{"prvt": "Private", "self pay": "Uninsured"}

	assert.Equal(t, "M", Canonicalize("male", gender))
	assert.Equal(t, "M", Canonicalize("  MALE ", gender))
	assert.Equal(t, "F", Canonicalize("Female", gender))
	assert.Equal(t, "Private", Canonicalize("prvt", insurance))
	assert.Equal(t, "Uninsured", Canonicalize("Self   Pay", insurance))
	assert.Equal(t, "Xyz", Canonicalize("xyz", insurance))
	assert.Equal(t, "Heart Disease", Canonicalize("heart   DISEASE", nil))
	assert.Equal(t, "", Canonicalize("  ", gender))
}

func TestCanonicalize_Idempotent(t *testing.T) {
	lookup := map[string]string{"copd": "COPD", "m": "M"}
	for _, in := range []string{"copd", "M", "xyz", "heart disease", "Private"} {
		once := Canonicalize(in, lookup)
		assert.Equal(t, once, Canonicalize(once, lookup), in)
	}
}

func TestLookupKey(t *testing.T) {
	assert.Equal(t, "self pay", LookupKey("  Self \t PAY "))
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber(" 98.6 ")
	assert.True(t, ok)
	assert.Equal(t, 98.6, v)

	for _, in := range []string{"", "abc", "NaN", "Inf", "12..5"} {
		_, ok := ParseNumber(in)
		assert.False(t, ok, in)
	}
}

func TestFormatNumbers(t *testing.T) {
	assert.Equal(t, "46", FormatInteger(45.5))
	assert.Equal(t, "-46", FormatInteger(-45.5))
	assert.Equal(t, "45", FormatInteger(45.4))
	assert.Equal(t, "0", FormatInteger(-0.4))
	assert.Equal(t, "1000000000000000019884624838656", FormatInteger(1e30))
	assert.Equal(t, "-1000000000000000019884624838656", FormatInteger(-1e30))
	assert.Equal(t, "98.6", FormatFloat(98.6))
	assert.Equal(t, "170", FormatFloat(170.0))
	assert.Equal(t, "0", FormatFloat(math.Copysign(0, -1)))
	assert.Equal(t, 98.7, Round1(98.65000001))
}

func TestRowHash(t *testing.T) {
	assert.NotEqual(t, RowHash([]string{"ab", "c"}), RowHash([]string{"a", "bc"}))
	assert.Equal(t, RowHash([]string{"a", ""}), RowHash([]string{"a", ""}))
	assert.NotEqual(t, RowHash([]string{"a "}), RowHash([]string{"a"}))
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	sum, err := FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	_, err = FileHash(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
