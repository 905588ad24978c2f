package combine

import (
	"context"
	"log/slog"

	"econcharts/internal/frame"
)

// EntityTable is one entity's normalized table.
type EntityTable struct {
	Entity string
	Table  *frame.Table
}

// Panel holds per-entity tables keyed by (entity, time), in insertion order.
type Panel struct {
	entries []EntityTable
	pos     map[string]int
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	return &Panel{pos: make(map[string]int)}
}

// Add appends an entity's table. Adding an entity twice replaces its table
// but keeps its original position.
func (p *Panel) Add(entity string, t *frame.Table) {
	if i, ok := p.pos[entity]; ok {
		p.entries[i].Table = t
		return
	}
	p.pos[entity] = len(p.entries)
	p.entries = append(p.entries, EntityTable{Entity: entity, Table: t})
}

// Entries returns the per-entity tables in insertion order.
func (p *Panel) Entries() []EntityTable {
	return append([]EntityTable(nil), p.entries...)
}

// Len returns the number of entities.
func (p *Panel) Len() int { return len(p.entries) }

// Summary is one aggregate row per entity.
type Summary struct {
	Entity string
	Name   string
	Means  map[string]frame.Value
}

// Summarize computes, per entity, the arithmetic mean of every metric over
// its available observations. Missing entries are skipped, not counted as
// zero; a metric with no observations is missing.
func Summarize(p *Panel, metrics ...string) *Summaries {
	rows := make([]Summary, 0, p.Len())
	for _, e := range p.Entries() {
		s := Summary{
			Entity: e.Entity,
			Name:   e.Entity,
			Means:  make(map[string]frame.Value, len(metrics)),
		}
		for _, m := range metrics {
			s.Means[m] = mean(e.Table, m)
		}
		rows = append(rows, s)
	}
	return &Summaries{Metrics: metrics, Rows: rows}
}

func mean(t *frame.Table, col string) frame.Value {
	if t == nil || !t.HasColumn(col) {
		return frame.Missing
	}
	var sum float64
	n := 0
	for i := 0; i < t.Len(); i++ {
		if v := t.Value(i, col); v.Valid {
			sum += v.Float
			n++
		}
	}
	if n == 0 {
		return frame.Missing
	}
	return frame.Some(sum / float64(n))
}

// NameLookup resolves an entity's display name. An error means the name is
// unavailable.
type NameLookup func(ctx context.Context, entity string) (string, error)

// Decorate fills in display names after aggregation. A failed or empty
// lookup keeps the identifier and logs a warning; it never fails.
func Decorate(ctx context.Context, s *Summaries, lookup NameLookup, logger *slog.Logger) {
	for i := range s.Rows {
		row := &s.Rows[i]
		name, err := lookup(ctx, row.Entity)
		if err != nil || name == "" {
			logger.Warn("display name unavailable, using identifier",
				slog.String("entity", row.Entity),
				slog.Any("error", err))
			row.Name = row.Entity
			continue
		}
		row.Name = name
	}
}
