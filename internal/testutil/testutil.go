// Package testutil holds hand-written fakes for the data sources and
// builders for raw datasets.
package testutil

import (
	"context"
	"fmt"
	"time"

	"econcharts/internal/fetcher"
)

// FakeMacro is a function-backed macro indicator source.
type FakeMacro struct {
	FetchFunc func(ctx context.Context, country, indicator string, start, end int) ([]fetcher.RawRecord, error)
}

// Fetch implements the macro source interface
func (f *FakeMacro) Fetch(ctx context.Context, country, indicator string, start, end int) ([]fetcher.RawRecord, error) {
	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, country, indicator, start, end)
	}
	return nil, nil
}

// FakeMarket is a function-backed market data source. Unset funcs return
// EntityNotFound.
type FakeMarket struct {
	FundamentalsFunc func(ctx context.Context, symbol string) (*fetcher.Dataset, error)
	PriceHistoryFunc func(ctx context.Context, symbol string) (*fetcher.Dataset, error)
	MetadataFunc     func(ctx context.Context, symbol string) (fetcher.Metadata, error)
}

// Fundamentals implements the market source interface
func (f *FakeMarket) Fundamentals(ctx context.Context, symbol string) (*fetcher.Dataset, error) {
	if f.FundamentalsFunc != nil {
		return f.FundamentalsFunc(ctx, symbol)
	}
	return nil, fetcher.NewEntityNotFoundError(symbol, "no fundamentals stubbed")
}

// PriceHistory implements the market source interface
func (f *FakeMarket) PriceHistory(ctx context.Context, symbol string) (*fetcher.Dataset, error) {
	if f.PriceHistoryFunc != nil {
		return f.PriceHistoryFunc(ctx, symbol)
	}
	return nil, fetcher.NewEntityNotFoundError(symbol, "no price history stubbed")
}

// Metadata implements the market source interface
func (f *FakeMarket) Metadata(ctx context.Context, symbol string) (fetcher.Metadata, error) {
	if f.MetadataFunc != nil {
		return f.MetadataFunc(ctx, symbol)
	}
	return fetcher.Metadata{}, fetcher.NewEntityNotFoundError(symbol, "no metadata stubbed")
}

// Yearly builds one record per year starting at first.
func Yearly(first int, values ...float64) []fetcher.RawRecord {
	out := make([]fetcher.RawRecord, len(values))
	for i, v := range values {
		out[i] = fetcher.RawRecord{Time: fmt.Sprint(first + i), Value: fetcher.Float(v)}
	}
	return out
}

// Fundamentals builds a fundamentals dataset with one fiscal period per
// year, ending on March 31st, starting at first.
func Fundamentals(symbol string, first int, revenue, grossProfit []float64) *fetcher.Dataset {
	ds := fetcher.NewDataset(symbol)
	for i := range revenue {
		end := fmt.Sprintf("%d-03-31", first+i)
		ds.Add(fetcher.FieldTotalRevenue, end, fetcher.Float(revenue[i]))
		if i < len(grossProfit) {
			ds.Add(fetcher.FieldGrossProfit, end, fetcher.Float(grossProfit[i]))
		}
	}
	return ds
}

// Prices builds a daily history of n consecutive days from start whose
// close is closes(i). Open, high and low are derived from the close.
func Prices(symbol string, start time.Time, n int, closes func(i int) float64) *fetcher.Dataset {
	ds := fetcher.NewDataset(symbol)
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i).Format(time.DateOnly)
		c := closes(i)
		ds.Add(fetcher.FieldOpen, day, fetcher.Float(c-1))
		ds.Add(fetcher.FieldHigh, day, fetcher.Float(c+2))
		ds.Add(fetcher.FieldLow, day, fetcher.Float(c-2))
		ds.Add(fetcher.FieldClose, day, fetcher.Float(c))
		ds.Add(fetcher.FieldVolume, day, fetcher.Float(1000+float64(i)))
	}
	return ds
}
