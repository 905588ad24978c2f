package yahoo

import (
	"context"
	"fmt"
	"time"

	"econcharts/internal/fetcher"
	"econcharts/internal/ratelimit"
)

// chartResponse is the response structure from the Yahoo Finance chart API.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol    string `json:"symbol"`
				Currency  string `json:"currency"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// PriceHistory retrieves the full daily price history of symbol.
// Each trading day becomes one record per field (open, high, low, close,
// volume) keyed by the exchange-local calendar date.
func (c *Client) PriceHistory(ctx context.Context, symbol string) (*fetcher.Dataset, error) {
	if err := checkSymbol(symbol); err != nil {
		return nil, err
	}
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIYahoo); err != nil {
		return nil, fetcher.ClassifyTransportError(symbol, err)
	}

	var chart chartResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"range":    "max",
			"interval": "1d",
		}).
		SetResult(&chart).
		Get("/v8/finance/chart/{symbol}")

	if err != nil {
		return nil, fetcher.ClassifyTransportError(symbol, err)
	}

	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(symbol, resp.StatusCode())
	}

	if e := chart.Chart.Error; e != nil {
		return nil, classifyAPIError(symbol, e)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fetcher.NewEntityNotFoundError(symbol, "no chart result")
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fetcher.NewMalformedDataError(symbol, "chart has no price data")
	}

	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	for name, col := range map[string][]*float64{
		fetcher.FieldOpen:   quote.Open,
		fetcher.FieldHigh:   quote.High,
		fetcher.FieldLow:    quote.Low,
		fetcher.FieldClose:  quote.Close,
		fetcher.FieldVolume: quote.Volume,
	} {
		if len(col) != n {
			return nil, fetcher.NewMalformedDataError(symbol, fmt.Sprintf("%s has %d values for %d timestamps", name, len(col), n))
		}
	}

	ds := fetcher.NewDataset(symbol)
	for i, ts := range result.Timestamp {
		day := localDate(ts, result.Meta.GMTOffset)
		ds.Add(fetcher.FieldOpen, day, quote.Open[i])
		ds.Add(fetcher.FieldHigh, day, quote.High[i])
		ds.Add(fetcher.FieldLow, day, quote.Low[i])
		ds.Add(fetcher.FieldClose, day, quote.Close[i])
		ds.Add(fetcher.FieldVolume, day, quote.Volume[i])
	}

	return ds, nil
}

// localDate converts a unix timestamp into the exchange-local calendar date,
// dropping the timezone.
func localDate(ts, gmtOffset int64) string {
	return time.Unix(ts+gmtOffset, 0).UTC().Format(time.DateOnly)
}
