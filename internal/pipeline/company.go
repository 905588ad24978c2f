package pipeline

import (
	"context"
	"log/slog"
	"time"

	"econcharts/internal/combine"
	"econcharts/internal/fetcher"
	"econcharts/internal/frame"
	"econcharts/internal/transform"
)

// Company table columns.
const (
	ColumnRevenue       = "Revenue"
	ColumnGrossProfit   = "Gross profit"
	ColumnGrossMargin   = "Gross margin (%)"
	ColumnRevenueGrowth = "Revenue growth (%)"

	ColumnOpen   = "Open"
	ColumnHigh   = "High"
	ColumnLow    = "Low"
	ColumnClose  = "Close"
	ColumnVolume = "Volume"
	ColumnMA25   = "MA25"
	ColumnMA50   = "MA50"
)

// FinancialColumns is the fixed column set of CompanyFinancials.
var FinancialColumns = []string{ColumnRevenue, ColumnGrossProfit, ColumnGrossMargin}

// PriceColumns is the fixed column set of PriceView.
var PriceColumns = []string{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume, ColumnMA25, ColumnMA50}

var ohlcv = []struct{ field, column string }{
	{fetcher.FieldOpen, ColumnOpen},
	{fetcher.FieldHigh, ColumnHigh},
	{fetcher.FieldLow, ColumnLow},
	{fetcher.FieldClose, ColumnClose},
	{fetcher.FieldVolume, ColumnVolume},
}

// IndexPeriodEnd names the index of the financial tables: the date each
// fiscal period ends. A change of fiscal year end can put two periods in
// one calendar year, so periods are not collapsed to years.
const IndexPeriodEnd = "Period end"

// CompanyFinancials builds the per-fiscal-period revenue, gross profit and
// gross margin table. Periods whose margin cannot be computed are dropped.
func CompanyFinancials(ds *fetcher.Dataset) (*frame.Table, error) {
	tbl, err := financials(ds)
	if err != nil {
		return nil, err
	}
	return tbl.DropMissing(FinancialColumns...), nil
}

// CompareTable is the financials table plus period-over-period revenue
// growth. Growth is taken over every reported period, so a period with a
// missing margin is kept and still breaks the growth chain.
func CompareTable(ds *fetcher.Dataset) (*frame.Table, error) {
	tbl, err := financials(ds)
	if err != nil {
		return nil, err
	}
	if err := tbl.Set(ColumnRevenueGrowth, transform.Growth(tbl.MustColumn(ColumnRevenue))); err != nil {
		return nil, err
	}
	return tbl, nil
}

func financials(ds *fetcher.Dataset) (*frame.Table, error) {
	revenue, err := transform.NormalizeField(ds, fetcher.FieldTotalRevenue, ColumnRevenue, transform.ParseDate)
	if err != nil {
		return nil, err
	}
	profit, err := transform.NormalizeField(ds, fetcher.FieldGrossProfit, ColumnGrossProfit, transform.ParseDate)
	if err != nil {
		return nil, err
	}

	tbl, err := combine.Join(frame.Daily, IndexPeriodEnd, revenue, profit)
	if err != nil {
		return nil, err
	}
	margin := transform.Ratio(tbl.MustColumn(ColumnGrossProfit), tbl.MustColumn(ColumnRevenue))
	if err := tbl.Set(ColumnGrossMargin, margin); err != nil {
		return nil, err
	}
	return tbl, nil
}

// PriceView builds the daily OHLCV table restricted to [from, to] with 25
// and 50 day moving averages of the close. The range is applied before the
// averages, so the first days of the window carry no average. A zero bound
// is open.
func PriceView(ds *fetcher.Dataset, from, to time.Time) (*frame.Table, error) {
	series := make([]frame.Series, 0, len(ohlcv))
	for _, f := range ohlcv {
		s, err := transform.NormalizeField(ds, f.field, f.column, transform.ParseDate)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	tbl, err := combine.Join(frame.Daily, "Date", series...)
	if err != nil {
		return nil, err
	}
	tbl = tbl.Between(from, to)

	closes := tbl.MustColumn(ColumnClose)
	if err := tbl.Set(ColumnMA25, transform.RollingMean(closes, 25)); err != nil {
		return nil, err
	}
	if err := tbl.Set(ColumnMA50, transform.RollingMean(closes, 50)); err != nil {
		return nil, err
	}
	return tbl, nil
}

// CompanyRequest selects one ticker and the price window.
type CompanyRequest struct {
	Symbol string
	From   time.Time
	To     time.Time
}

// CompanyReport is the single-company analysis. Financials and Prices fail
// independently; a nil table comes with its error set.
type CompanyReport struct {
	Symbol        string
	Name          string
	Financials    *frame.Table
	FinancialsErr error
	Prices        *frame.Table
	PricesErr     error
}

// Company fetches and normalizes everything shown for one ticker. It
// returns an error only when neither view could be built.
func Company(ctx context.Context, src MarketSource, req CompanyRequest, logger *slog.Logger) (*CompanyReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := &CompanyReport{Symbol: req.Symbol}

	name, err := LookupName(src, LongName)(ctx, req.Symbol)
	if err != nil {
		logger.Warn("display name unavailable, using identifier",
			slog.String("entity", req.Symbol),
			slog.Any("error", err))
		name = req.Symbol
	}
	report.Name = name

	if ds, err := src.Fundamentals(ctx, req.Symbol); err != nil {
		report.FinancialsErr = err
	} else {
		report.Financials, report.FinancialsErr = CompanyFinancials(ds)
	}
	if report.FinancialsErr != nil {
		logger.Warn("financials unavailable",
			slog.String("entity", req.Symbol),
			slog.String("kind", string(fetcher.KindOf(report.FinancialsErr))),
			slog.Any("error", report.FinancialsErr))
	}

	if ds, err := src.PriceHistory(ctx, req.Symbol); err != nil {
		report.PricesErr = err
	} else {
		report.Prices, report.PricesErr = PriceView(ds, req.From, req.To)
	}
	if report.PricesErr != nil {
		logger.Warn("price history unavailable",
			slog.String("entity", req.Symbol),
			slog.String("kind", string(fetcher.KindOf(report.PricesErr))),
			slog.Any("error", report.PricesErr))
	}

	if report.FinancialsErr != nil && report.PricesErr != nil {
		return report, report.FinancialsErr
	}
	return report, nil
}
