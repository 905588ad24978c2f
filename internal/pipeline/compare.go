package pipeline

import (
	"context"
	"log/slog"

	"econcharts/internal/combine"
	"econcharts/internal/coordinator"
	"econcharts/internal/fetcher"
)

// CompareMetrics are the per-ticker means reported by Compare.
var CompareMetrics = []string{ColumnGrossMargin, ColumnRevenueGrowth}

// Comparison is the outcome of a compare run.
type Comparison struct {
	Panel     *combine.Panel
	Summaries *combine.Summaries
	Results   []fetcher.Result
}

// Compare processes tickers one at a time, averages gross margin and
// revenue growth per ticker and decorates the rows with short names.
// Tickers that fail are recorded in Results and left out of the summary.
func Compare(ctx context.Context, src MarketSource, tickers []string, logger *slog.Logger) (*Comparison, error) {
	if logger == nil {
		logger = slog.Default()
	}
	panel := combine.NewPanel()

	c := coordinator.New(tickers, logger)
	results, err := c.Run(ctx, func(ctx context.Context, symbol string) error {
		ds, err := src.Fundamentals(ctx, symbol)
		if err != nil {
			return err
		}
		tbl, err := CompareTable(ds)
		if err != nil {
			return err
		}
		panel.Add(symbol, tbl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	summaries := combine.Summarize(panel, CompareMetrics...)
	summaries.EntityLabel = "Ticker"
	summaries.NameLabel = "Company"
	combine.Decorate(ctx, summaries, LookupName(src, ShortName), logger)

	logger.Info("comparison complete",
		slog.Int("entities", len(results)),
		slog.Int("failed", len(coordinator.Failed(results))))

	return &Comparison{
		Panel:     panel,
		Summaries: summaries,
		Results:   results,
	}, nil
}
