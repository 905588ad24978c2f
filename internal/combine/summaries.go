package combine

import "econcharts/internal/frame"

// Summaries is the aggregate table: one Summary per entity and one mean
// column per metric.
type Summaries struct {
	EntityLabel string
	NameLabel   string
	Metrics     []string
	Rows        []Summary
}

// Header implements frame.Tabular.
func (s *Summaries) Header() []string {
	entity, name := s.EntityLabel, s.NameLabel
	if entity == "" {
		entity = "Entity"
	}
	if name == "" {
		name = "Name"
	}
	return append([]string{entity, name}, s.Metrics...)
}

// Len implements frame.Tabular.
func (s *Summaries) Len() int { return len(s.Rows) }

// Row implements frame.Tabular.
func (s *Summaries) Row(i int) []frame.Cell {
	r := s.Rows[i]
	row := []frame.Cell{frame.Label(r.Entity), frame.Label(r.Name)}
	for _, m := range s.Metrics {
		row = append(row, frame.Number(r.Means[m]))
	}
	return row
}

// Complete returns the rows with a value for every metric.
func (s *Summaries) Complete() []Summary {
	out := make([]Summary, 0, len(s.Rows))
rows:
	for _, r := range s.Rows {
		for _, m := range s.Metrics {
			if !r.Means[m].Valid {
				continue rows
			}
		}
		out = append(out, r)
	}
	return out
}
