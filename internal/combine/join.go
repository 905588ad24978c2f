// Package combine aligns normalized per-entity data into one table or one
// summary row per entity.
package combine

import (
	"fmt"
	"time"

	"econcharts/internal/frame"
)

// Dedupe returns ids in order of first appearance without duplicates.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Join inner-joins series on their time key: only keys present in every
// series are kept, one column per series named after it. Series names must
// be unique.
func Join(g frame.Granularity, indexName string, series ...frame.Series) (*frame.Table, error) {
	if len(series) == 0 {
		return frame.NewTable(g, indexName, nil), nil
	}

	names := make(map[string]struct{}, len(series))
	lookups := make([]map[time.Time]float64, len(series))
	for i, s := range series {
		if _, dup := names[s.Name]; dup {
			return nil, fmt.Errorf("combine: duplicate series name %q", s.Name)
		}
		names[s.Name] = struct{}{}

		lookups[i] = make(map[time.Time]float64, s.Len())
		for j, k := range s.Keys {
			lookups[i][k] = s.Values[j]
		}
	}

	// walk the first series so the index stays in its ascending order
	var index []time.Time
keys:
	for _, k := range series[0].Keys {
		for _, l := range lookups[1:] {
			if _, ok := l[k]; !ok {
				continue keys
			}
		}
		index = append(index, k)
	}

	t := frame.NewTable(g, indexName, index)
	for i, s := range series {
		col := make([]frame.Value, len(index))
		for j, k := range index {
			col[j] = frame.Some(lookups[i][k])
		}
		if err := t.Set(s.Name, col); err != nil {
			return nil, err
		}
	}
	return t.DropMissing(), nil
}
