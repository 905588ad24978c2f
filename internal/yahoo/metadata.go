package yahoo

import (
	"context"

	"econcharts/internal/fetcher"
)

// Metadata retrieves display names for symbol from the price module.
// Callers treat failures as cosmetic.
func (c *Client) Metadata(ctx context.Context, symbol string) (fetcher.Metadata, error) {
	res, err := c.quoteSummary(ctx, symbol, "price")
	if err != nil {
		return fetcher.Metadata{Symbol: symbol}, err
	}

	md := fetcher.Metadata{Symbol: symbol}
	if res.Price != nil {
		md.LongName = res.Price.LongName
		md.ShortName = res.Price.ShortName
	}
	return md, nil
}
