package render

import (
	"errors"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"econcharts/internal/frame"
)

// ImageOptions sizes a raster image in inches at a fixed DPI.
type ImageOptions struct {
	Width  float64
	Height float64
	DPI    int
}

// DefaultImageOptions is a 10x7 inch image at 200 DPI.
var DefaultImageOptions = ImageOptions{Width: 10, Height: 7, DPI: 200}

// Panel is one stacked line plot of a single column.
type Panel struct {
	Title  string
	Column string
	YLabel string
}

// PNG draws one line panel per entry of panels, stacked vertically and
// sharing the table's time axis.
func PNG(w io.Writer, t *frame.Table, panels []Panel, o ImageOptions) error {
	if len(panels) == 0 {
		return errors.New("render: no panels to draw")
	}
	for _, pn := range panels {
		if !t.HasColumn(pn.Column) {
			return errors.New("render: no column " + pn.Column)
		}
	}
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = DefaultImageOptions.Width, DefaultImageOptions.Height
	}
	if o.DPI <= 0 {
		o.DPI = DefaultImageOptions.DPI
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		p, err := panelPlot(t, pn, i)
		if err != nil {
			return err
		}
		if i == len(panels)-1 {
			p.X.Label.Text = t.IndexName
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(o.Width)*vg.Inch, vg.Length(o.Height)*vg.Inch),
		vgimg.UseDPI(o.DPI),
	)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadTop:    vg.Millimeter * 3,
		PadBottom: vg.Millimeter * 3,
		PadLeft:   vg.Millimeter * 3,
		PadRight:  vg.Millimeter * 5,
		PadY:      vg.Millimeter * 6,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}

func panelPlot(t *frame.Table, pn Panel, i int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.Title
	p.Y.Label.Text = pn.YLabel
	p.Add(plotter.NewGrid())

	if t.Granularity == frame.Yearly {
		p.X.Tick.Marker = yearTicks{}
	} else {
		p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	}

	if t.Empty() {
		p.Title.Text += " (" + NoData + ")"
		return p, nil
	}

	// one line per run of present values, so gaps stay visible
	for _, seg := range segments(t, pn.Column) {
		l, err := plotter.NewLine(seg)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
	}
	return p, nil
}

func xValue(t *frame.Table, i int) float64 {
	if t.Granularity == frame.Yearly {
		return float64(t.Key(i).Year())
	}
	return float64(t.Key(i).Unix())
}

func segments(t *frame.Table, col string) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i := 0; i < t.Len(); i++ {
		v := t.Value(i, col)
		if !v.Valid {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xValue(t, i), Y: v.Float})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// yearTicks labels whole years only.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Value != math.Trunc(ticks[i].Value) {
			ticks[i].Label = ""
		}
	}
	return ticks
}
