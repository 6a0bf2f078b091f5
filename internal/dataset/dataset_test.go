package dataset

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MissingColumns(t *testing.T) {
	ds, err := Validate([]string{"id", "value"}, [][]string{{"1", "10"}, {"2", "20"}})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMissingRequiredColumns))
	assert.Nil(t, ds)
}

func TestValidate_MissingLonOnly(t *testing.T) {
	_, err := Validate([]string{"lat", "value"}, [][]string{{"1", "10"}})
	assert.True(t, eris.Is(err, ErrMissingRequiredColumns))
}

func TestValidate_HeaderOnly(t *testing.T) {
	_, err := Validate([]string{"lat", "lon"}, nil)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoValidCoordinates))

	_, err = Validate([]string{"x", "y"}, nil)
	assert.True(t, eris.Is(err, ErrMissingRequiredColumns))
}

func TestValidate_FirstRowShortRecord(t *testing.T) {
	// First record stops before lon, so the row lacks the key.
	_, err := Validate([]string{"lat", "lon"}, [][]string{{"1.0"}, {"1.0", "2.0"}})
	assert.True(t, eris.Is(err, ErrMissingRequiredColumns))
}

func TestValidate_NoValidCoordinates(t *testing.T) {
	_, err := Validate([]string{"lat", "lon"}, [][]string{{"x", "y"}, {"", ""}, {"Infinity", "1"}})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoValidCoordinates))
	assert.False(t, eris.Is(err, ErrMissingRequiredColumns))
}

func TestValidate_FiltersInvalidRows(t *testing.T) {
	header := []string{"lat", "lon"}
	ds, err := Validate(header, [][]string{{"1.0", "2.0"}, {"x", "y"}})
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 1, ds.Skipped)
	assert.InDelta(t, 1.0, ds.Rows[0].Lat, 1e-12)
	assert.InDelta(t, 2.0, ds.Rows[0].Lon, 1e-12)
	assert.Empty(t, ds.NumericColumns)
}

func TestValidate_NumericColumnsFromFirstValidRow(t *testing.T) {
	header := []string{"name", "lat", "lon", "age", "income", "code", "note"}
	records := [][]string{
		{"bad", "n/a", "n/a", "abc", "abc", "abc", "abc"},
		{"alice", "52.52", "13.40", "34", " -1200.50 ", "1e3", ""},
		{"bob", "52.53", "13.41", "x", "900", "2e3", "7"},
	}

	ds, err := Validate(header, records)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"age", "income"}, ds.NumericColumns)
	assert.True(t, ds.IsNumeric("age"))
	assert.False(t, ds.IsNumeric("note"))
	assert.False(t, ds.IsNumeric("lat"))
	assert.Equal(t, header, ds.Columns)
}

func TestValidate_LenientCoordinateParse(t *testing.T) {
	ds, err := Validate([]string{"lat", "lon"}, [][]string{{" 12.5deg", "+3e1"}})
	require.NoError(t, err)
	assert.InDelta(t, 12.5, ds.Rows[0].Lat, 1e-12)
	assert.InDelta(t, 30.0, ds.Rows[0].Lon, 1e-12)
}

func TestValidate_PreservesRowOrderAndFields(t *testing.T) {
	header := []string{"id", "lat", "lon"}
	ds, err := Validate(header, [][]string{
		{"a", "1", "1"},
		{"b", "bad", "1"},
		{"c", "2", "2"},
		{"d", "3", "3"},
	})
	require.NoError(t, err)

	var ids []string
	for _, r := range ds.Rows {
		ids = append(ids, r.Value("id"))
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
	assert.Equal(t, header, ds.Rows[0].Keys())
}

func TestRemovePoint(t *testing.T) {
	ds, err := Validate([]string{"id", "lat", "lon", "v"}, [][]string{
		{"a", "1", "1", "1"},
		{"b", "2", "2", "2"},
		{"c", "3", "3", "3"},
	})
	require.NoError(t, err)

	next, err := ds.RemovePoint(1)
	require.NoError(t, err)

	require.Equal(t, 2, next.Len())
	assert.Equal(t, "a", next.Rows[0].Value("id"))
	assert.Equal(t, "c", next.Rows[1].Value("id"))
	assert.Equal(t, []string{"v"}, next.NumericColumns)

	// Original is untouched.
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, "b", ds.Rows[1].Value("id"))
}

func TestRemovePoint_OutOfRange(t *testing.T) {
	ds, err := Validate([]string{"lat", "lon"}, [][]string{{"1", "1"}})
	require.NoError(t, err)

	for _, i := range []int{-1, 1, 5} {
		_, err := ds.RemovePoint(i)
		require.Error(t, err)
		assert.True(t, eris.Is(err, ErrPointOutOfRange))
	}
}

func TestRemovePoint_LastRow(t *testing.T) {
	ds, err := Validate([]string{"lat", "lon"}, [][]string{{"1", "1"}})
	require.NoError(t, err)

	next, err := ds.RemovePoint(0)
	require.NoError(t, err)
	assert.Equal(t, 0, next.Len())
}

func TestNewRow(t *testing.T) {
	r := NewRow([]string{"a", "b", "a", "c"}, []string{"1", "2", "3"})

	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.Equal(t, "3", r.Value("a"))
	assert.False(t, r.Has("c"))
	assert.Equal(t, "", r.Value("c"))
	assert.Equal(t, 2, r.Len())
}

func TestNewRow_ExtraValuesDropped(t *testing.T) {
	r := NewRow([]string{"a"}, []string{"1", "2", "3"})
	assert.Equal(t, []string{"a"}, r.Keys())
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1", 1},
		{"-2.5", -2.5},
		{"  3.25", 3.25},
		{"12abc", 12},
		{".5", 0.5},
		{"5.", 5},
		{"+7", 7},
		{"1e3", 1000},
		{"1e", 1},
		{"2E-2", 0.02},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"1e400", math.Inf(1)},
		{"1,000", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFloat(tt.in))
		})
	}
}

func TestParseFloat_NaN(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "-", ".", "e5", "NaN", "infinity"} {
		assert.True(t, math.IsNaN(ParseFloat(in)), "expected NaN for %q", in)
	}
}

func TestIsNumericValue(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"42", true},
		{"-42", true},
		{"3.14", true},
		{".5", true},
		{" 7 ", true},
		{"007", true},
		{"", false},
		{"  ", false},
		{"+1", false},
		{"1e3", false},
		{"1,000", false},
		{"5.", false},
		{"1.2.3", false},
		{"abc", false},
		{"--1", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNumericValue(tt.in))
		})
	}
}

func TestDetectNumericColumns_SkipsCoordinates(t *testing.T) {
	r := NewRow([]string{"lat", "lon", "n"}, []string{"1", "2", "3"})
	assert.Equal(t, []string{"n"}, DetectNumericColumns(r))
}
