// Package pipeline wires fetchers, the normalizer and the combiner into the
// three reports: GDP history, single-company analysis and company comparison.
package pipeline

import (
	"context"

	"econcharts/internal/fetcher"
)

// MacroSource fetches one macro-indicator series for a country.
//
//go:generate mockgen -package=pipeline -destination=mock_sources_test.go -source=sources.go
type MacroSource interface {
	Fetch(ctx context.Context, country, indicator string, start, end int) ([]fetcher.RawRecord, error)
}

// MarketSource fetches fundamentals, price history and metadata for a ticker.
type MarketSource interface {
	Fundamentals(ctx context.Context, symbol string) (*fetcher.Dataset, error)
	PriceHistory(ctx context.Context, symbol string) (*fetcher.Dataset, error)
	Metadata(ctx context.Context, symbol string) (fetcher.Metadata, error)
}
