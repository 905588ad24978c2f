package pipeline

import (
	"context"

	"econcharts/internal/combine"
	"econcharts/internal/frame"
	"econcharts/internal/transform"
	"econcharts/internal/worldbank"
)

// GDP table columns, in output order.
const (
	ColumnGDP       = "GDP (trillion US$)"
	ColumnGDPGrowth = "GDP growth (annual %)"
)

// GDPColumns is the fixed column set of the GDP table.
var GDPColumns = []string{ColumnGDP, ColumnGDPGrowth}

const trillion = 1e12

// GDPRequest selects the country and inclusive year range.
type GDPRequest struct {
	Country string
	Start   int
	End     int
}

// GDP fetches nominal GDP and real GDP growth for one country, rescales GDP
// to trillions of US$ and inner-joins the two on year.
func GDP(ctx context.Context, src MacroSource, req GDPRequest) (*frame.Table, error) {
	level, err := fetchYearly(ctx, src, req, worldbank.IndicatorGDPCurrentUSD, ColumnGDP)
	if err != nil {
		return nil, err
	}
	growth, err := fetchYearly(ctx, src, req, worldbank.IndicatorGDPGrowthAnnual, ColumnGDPGrowth)
	if err != nil {
		return nil, err
	}

	tbl, err := combine.Join(frame.Yearly, "Year", level, growth)
	if err != nil {
		return nil, err
	}
	if err := tbl.Set(ColumnGDP, transform.Scale(tbl.MustColumn(ColumnGDP), 1/trillion)); err != nil {
		return nil, err
	}
	return tbl.DropMissing(GDPColumns...), nil
}

func fetchYearly(ctx context.Context, src MacroSource, req GDPRequest, indicator, name string) (frame.Series, error) {
	recs, err := src.Fetch(ctx, req.Country, indicator, req.Start, req.End)
	if err != nil {
		return frame.Series{}, err
	}
	return transform.Normalize(worldbank.Key(req.Country, indicator), name, recs, transform.ParseYear)
}
