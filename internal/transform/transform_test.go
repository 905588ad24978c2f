package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econcharts/internal/fetcher"
	"econcharts/internal/frame"
)

var m = frame.Missing

func assertValues(t *testing.T, want, got []frame.Value) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Valid, got[i].Valid, "validity at %d", i)
		if want[i].Valid {
			assert.InDelta(t, want[i].Float, got[i].Float, 1e-9, "value at %d", i)
		}
	}
}

func TestNormalize_DropsMissingAndSorts(t *testing.T) {
	recs := []fetcher.RawRecord{
		{Time: "2022", Value: fetcher.Float(3)},
		{Time: "2023", Value: nil},
		{Time: "2020", Value: fetcher.Float(1)},
		{Time: "2021", Value: fetcher.Float(2)},
		{Time: "garbage", Value: nil},
	}

	s, err := Normalize("CHN", "gdp", recs, ParseYear)
	require.NoError(t, err)

	assert.Equal(t, "gdp", s.Name)
	assert.Equal(t, []time.Time{frame.Year(2020), frame.Year(2021), frame.Year(2022)}, s.Keys)
	assert.Equal(t, []float64{1, 2, 3}, s.Values)
}

func TestNormalize_StrictlyIncreasing(t *testing.T) {
	recs := []fetcher.RawRecord{
		{Time: "2024-01-05", Value: fetcher.Float(5)},
		{Time: "2023-12-29", Value: fetcher.Float(1)},
		{Time: "2024-01-04", Value: fetcher.Float(4)},
	}

	s, err := Normalize("7203.T", "close", recs, ParseDate)
	require.NoError(t, err)

	for i := 1; i < s.Len(); i++ {
		assert.True(t, s.Keys[i-1].Before(s.Keys[i]), "keys not strictly increasing at %d", i)
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		recs   []fetcher.RawRecord
		parser KeyParser
	}{
		{"empty", nil, ParseYear},
		{"all missing", []fetcher.RawRecord{{Time: "2020"}, {Time: "2021"}}, ParseYear},
		{"bad year", []fetcher.RawRecord{{Time: "20x0", Value: fetcher.Float(1)}}, ParseYear},
		{"bad date", []fetcher.RawRecord{{Time: "2020/01/01", Value: fetcher.Float(1)}}, ParseDate},
		{"duplicate", []fetcher.RawRecord{{Time: "2020", Value: fetcher.Float(1)}, {Time: "2020", Value: fetcher.Float(2)}}, ParseYear},
		{"duplicate date", []fetcher.RawRecord{{Time: "2020-03-31", Value: fetcher.Float(1)}, {Time: "2020-03-31", Value: fetcher.Float(2)}}, ParseDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize("X", "v", tt.recs, tt.parser)
			assert.True(t, errors.Is(err, fetcher.ErrMalformedData), "error = %v, want malformed data", err)
		})
	}
}

func TestNormalizeField(t *testing.T) {
	ds := fetcher.NewDataset("3405.T")
	ds.Add(fetcher.FieldTotalRevenue, "2024-03-31", fetcher.Float(1000))
	ds.Add(fetcher.FieldTotalRevenue, "2023-12-31", fetcher.Float(950))
	ds.Add(fetcher.FieldTotalRevenue, "2023-03-31", fetcher.Float(900))

	// two period ends in one calendar year stay distinct
	s, err := NormalizeField(ds, fetcher.FieldTotalRevenue, "Revenue", ParseDate)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		frame.Date(2023, time.March, 31),
		frame.Date(2023, time.December, 31),
		frame.Date(2024, time.March, 31),
	}, s.Keys)
	assert.Equal(t, []float64{900, 950, 1000}, s.Values)

	_, err = NormalizeField(ds, fetcher.FieldGrossProfit, "Gross profit", ParseDate)
	assert.True(t, errors.Is(err, fetcher.ErrMalformedData))
}

func TestParsers(t *testing.T) {
	k, err := ParseYear.Parse(" 1980 ")
	require.NoError(t, err)
	assert.Equal(t, frame.Year(1980), k)
	assert.Equal(t, frame.Yearly, ParseYear.Granularity())

	k, err = ParseDate.Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, frame.Date(2024, time.February, 29), k)
	assert.Equal(t, frame.Daily, ParseDate.Granularity())

	_, err = ParseYear.Parse("0")
	assert.Error(t, err)
}

func TestGrowth(t *testing.T) {
	got := Growth(frame.Values(100, 110, 99))
	assertValues(t, []frame.Value{m, frame.Some(10), frame.Some(-10)}, got)
}

func TestGrowth_MissingAndZero(t *testing.T) {
	got := Growth([]frame.Value{frame.Some(0), frame.Some(5), m, frame.Some(8), frame.Some(10)})
	assertValues(t, []frame.Value{m, m, m, m, frame.Some(25)}, got)

	assert.Empty(t, Growth(nil))
}

func TestRatio(t *testing.T) {
	got := Ratio(frame.Values(250, 250, 1), []frame.Value{frame.Some(1000), frame.Some(0), m})
	assertValues(t, []frame.Value{frame.Some(25), m, m}, got)
	assert.Equal(t, 25.0, got[0].Float)
}

func TestRollingMean(t *testing.T) {
	got := RollingMean(frame.Values(1, 2, 3, 4, 5), 3)
	assertValues(t, []frame.Value{m, m, frame.Some(2), frame.Some(3), frame.Some(4)}, got)
}

func TestRollingMean_Edges(t *testing.T) {
	// window longer than the series
	assertValues(t, []frame.Value{m, m}, RollingMean(frame.Values(1, 2), 25))
	// window of one is the identity
	assertValues(t, frame.Values(1, 2), RollingMean(frame.Values(1, 2), 1))
	// a gap poisons every window that contains it
	in := []frame.Value{frame.Some(1), m, frame.Some(3), frame.Some(5), frame.Some(7)}
	assertValues(t, []frame.Value{m, m, m, frame.Some(4), frame.Some(6)}, RollingMean(in, 2))
	// invalid window
	assertValues(t, []frame.Value{m}, RollingMean(frame.Values(1), 0))
}

func TestScale(t *testing.T) {
	got := Scale([]frame.Value{frame.Some(17.8e12), m}, 1e-12)
	assertValues(t, []frame.Value{frame.Some(17.8), m}, got)
}
