package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"econcharts/internal/combine"
	"econcharts/internal/frame"
)

// Point is one labelled scatter point.
type Point struct {
	Label string
	X     float64
	Y     float64
}

// Points turns the complete summary rows into scatter points of metric x
// against metric y, labelled with the display name.
func Points(s *combine.Summaries, x, y string) []Point {
	var pts []Point
	for _, r := range s.Complete() {
		xv, yv := r.Means[x], r.Means[y]
		if !xv.Valid || !yv.Valid {
			continue
		}
		pts = append(pts, Point{Label: r.Name, X: xv.Float, Y: yv.Float})
	}
	return pts
}

// Page collects charts into one HTML document.
type Page struct {
	title  string
	charts []components.Charter
}

// NewPage creates an empty page.
func NewPage(title string) *Page {
	return &Page{title: title}
}

// Len returns the number of charts added so far.
func (p *Page) Len() int { return len(p.charts) }

// Add draws t as described by req. Scatter requests go through AddScatter.
func (p *Page) Add(req Request, t *frame.Table) error {
	if err := req.check(t); err != nil {
		return err
	}

	switch req.Kind {
	case KindLine:
		p.charts = append(p.charts, lineChart(req, t))
	case KindBar, KindBarLine:
		p.charts = append(p.charts, barChart(req, t))
	case KindCandlestick:
		p.charts = append(p.charts, candlestick(req, t))
		if req.Volume != "" {
			p.charts = append(p.charts, volumeChart(req, t))
		}
	default:
		return fmt.Errorf("render: %s charts are not drawn from tables", req.Kind)
	}
	return nil
}

// AddScatter draws one labelled point per entity.
func (p *Page) AddScatter(req Request, pts []Point) {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(title(req, len(pts) == 0)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll", Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: req.XLabel, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: req.YLabel, Scale: opts.Bool(true)}),
	)
	for _, pt := range pts {
		sc.AddSeries(pt.Label, []opts.ScatterData{{
			Name:       pt.Label,
			Value:      []float64{pt.X, pt.Y},
			SymbolSize: 14,
		}})
	}
	p.charts = append(p.charts, sc)
}

// Render writes the page. A page without charts still renders, carrying a
// single empty chart that says so.
func (p *Page) Render(w io.Writer) error {
	page := components.NewPage().SetPageTitle(p.title)
	if len(p.charts) == 0 {
		empty := charts.NewLine()
		empty.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: p.title, Subtitle: NoData}))
		page.AddCharts(empty)
	} else {
		page.AddCharts(p.charts...)
	}
	return page.Render(w)
}

func title(req Request, empty bool) opts.Title {
	t := opts.Title{Title: req.Title}
	if empty {
		t.Subtitle = NoData
	}
	return t
}

func labels(t *frame.Table) []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.Granularity.Format(t.Key(i))
	}
	return out
}

// chartValue maps a missing value to "-", which echarts draws as a gap.
func chartValue(v frame.Value) any {
	if !v.Valid {
		return "-"
	}
	return v.Float
}

func lineData(t *frame.Table, col string) []opts.LineData {
	out := make([]opts.LineData, t.Len())
	for i := range out {
		out[i] = opts.LineData{Value: chartValue(t.Value(i, col))}
	}
	return out
}

func barData(t *frame.Table, col string) []opts.BarData {
	out := make([]opts.BarData, t.Len())
	for i := range out {
		out[i] = opts.BarData{Value: chartValue(t.Value(i, col))}
	}
	return out
}

func rectOptions(req Request, t *frame.Table) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(title(req, t.Empty())),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: req.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: req.YLabel}),
	}
}

func lineChart(req Request, t *frame.Table) components.Charter {
	line := charts.NewLine()
	line.SetGlobalOptions(rectOptions(req, t)...)
	line.SetXAxis(labels(t))
	for _, c := range req.Y {
		line.AddSeries(c, lineData(t, c))
	}
	return line
}

func barChart(req Request, t *frame.Table) components.Charter {
	x := labels(t)

	bar := charts.NewBar()
	bar.SetGlobalOptions(rectOptions(req, t)...)
	bar.SetXAxis(x)
	for _, c := range req.Y {
		bar.AddSeries(c, barData(t, c))
	}

	if req.Kind == KindBarLine && len(req.Secondary) > 0 {
		bar.ExtendYAxis(opts.YAxis{Name: req.SecondaryLabel, Position: "right"})
		line := charts.NewLine()
		line.SetXAxis(x)
		for _, c := range req.Secondary {
			line.AddSeries(c, lineData(t, c), charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1}))
		}
		bar.Overlap(line)
	}
	return bar
}

func candlestick(req Request, t *frame.Table) components.Charter {
	x := labels(t)

	k := charts.NewKLine()
	k.SetGlobalOptions(
		charts.WithTitleOpts(title(req, t.Empty())),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: req.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: req.YLabel, Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	k.SetXAxis(x)

	// echarts orders candle values open, close, low, high
	data := make([]opts.KlineData, t.Len())
	for i := range data {
		o, c := t.Value(i, req.OHLC.Open), t.Value(i, req.OHLC.Close)
		l, h := t.Value(i, req.OHLC.Low), t.Value(i, req.OHLC.High)
		if !o.Valid || !c.Valid || !l.Valid || !h.Valid {
			data[i] = opts.KlineData{Value: "-"}
			continue
		}
		data[i] = opts.KlineData{Value: [4]float64{o.Float, c.Float, l.Float, h.Float}}
	}
	k.AddSeries(req.Title, data)

	if len(req.Overlays) > 0 {
		line := charts.NewLine()
		line.SetXAxis(x)
		for _, c := range req.Overlays {
			line.AddSeries(c, lineData(t, c))
		}
		k.Overlap(line)
	}
	return k
}

func volumeChart(req Request, t *frame.Table) components.Charter {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(title(Request{Title: req.Volume}, t.Empty())),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: req.XLabel}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	bar.SetXAxis(labels(t))
	bar.AddSeries(req.Volume, barData(t, req.Volume))
	return bar
}
