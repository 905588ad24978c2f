// Package transform turns raw provider records into normalized series and
// computes the derived metrics plotted by the pipelines.
package transform

import (
	"fmt"
	"sort"
	"time"

	"econcharts/internal/fetcher"
	"econcharts/internal/frame"
)

// Normalize converts raw records into a Series: records with a missing value
// are dropped, times are parsed with parser and the result is sorted
// ascending. Unparsable times, duplicate keys and an empty result are
// MalformedData errors attributed to entity.
func Normalize(entity, name string, records []fetcher.RawRecord, parser KeyParser) (frame.Series, error) {
	type point struct {
		key   time.Time
		value float64
		raw   string
	}

	points := make([]point, 0, len(records))
	for _, r := range records {
		if r.Value == nil {
			continue
		}
		k, err := parser.Parse(r.Time)
		if err != nil {
			return frame.Series{}, fetcher.NewMalformedDataError(entity, fmt.Sprintf("%s: %v", name, err))
		}
		points = append(points, point{key: k, value: *r.Value, raw: r.Time})
	}

	if len(points) == 0 {
		return frame.Series{}, fetcher.NewMalformedDataError(entity, fmt.Sprintf("%s: no usable observations", name))
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].key.Before(points[j].key) })

	s := frame.Series{
		Name:   name,
		Keys:   make([]time.Time, 0, len(points)),
		Values: make([]float64, 0, len(points)),
	}
	for i, p := range points {
		if i > 0 && p.key.Equal(points[i-1].key) {
			return frame.Series{}, fetcher.NewMalformedDataError(entity, fmt.Sprintf("%s: duplicate time key %q", name, p.raw))
		}
		s.Keys = append(s.Keys, p.key)
		s.Values = append(s.Values, p.value)
	}
	return s, nil
}

// NormalizeField is Normalize over one field of a Dataset.
func NormalizeField(ds *fetcher.Dataset, field, name string, parser KeyParser) (frame.Series, error) {
	recs, err := ds.Field(field)
	if err != nil {
		return frame.Series{}, err
	}
	return Normalize(ds.Entity, name, recs, parser)
}
