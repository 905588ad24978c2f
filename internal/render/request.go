// Package render presents normalized tables: interactive HTML charts, PNG
// images, console tables and CSV/XLSX exports. Every presenter renders an
// explicit "no data" state for empty input instead of failing.
package render

import (
	"fmt"

	"econcharts/internal/frame"
)

// NoData is shown in place of an empty chart or table.
const NoData = "No data"

// ChartKind selects the chart drawn for a Request.
type ChartKind int

const (
	KindLine ChartKind = iota
	KindBar
	KindBarLine
	KindScatter
	KindCandlestick
)

func (k ChartKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	case KindBarLine:
		return "bar+line"
	case KindScatter:
		return "scatter"
	case KindCandlestick:
		return "candlestick"
	default:
		return fmt.Sprintf("ChartKind(%d)", int(k))
	}
}

// OHLC names the open, high, low and close columns of a candlestick chart.
type OHLC struct {
	Open  string
	High  string
	Low   string
	Close string
}

// Request describes one chart. It is a plain value built per invocation and
// never mutated by the presenters.
type Request struct {
	Title string
	Kind  ChartKind

	// Y holds the primary-axis columns: bars for KindBar and KindBarLine,
	// lines for KindLine. For KindScatter, X and Y[0] name the metrics.
	X         string
	Y         []string
	Secondary []string

	XLabel         string
	YLabel         string
	SecondaryLabel string

	// Candlestick only.
	OHLC     OHLC
	Overlays []string
	Volume   string
}

// columns lists every table column the request reads.
func (r Request) columns() []string {
	cols := append([]string{}, r.Y...)
	cols = append(cols, r.Secondary...)
	if r.Kind == KindCandlestick {
		cols = append(cols, r.OHLC.Open, r.OHLC.High, r.OHLC.Low, r.OHLC.Close)
		cols = append(cols, r.Overlays...)
		if r.Volume != "" {
			cols = append(cols, r.Volume)
		}
	}
	return cols
}

// check reports the first column the request needs that t lacks.
func (r Request) check(t *frame.Table) error {
	for _, c := range r.columns() {
		if !t.HasColumn(c) {
			return fmt.Errorf("render: %s chart %q: no column %q", r.Kind, r.Title, c)
		}
	}
	return nil
}
