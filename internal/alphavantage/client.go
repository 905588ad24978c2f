package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"econcharts/internal/fetcher"
	"econcharts/internal/ratelimit"
)

// envelope carries the in-body failure messages AlphaVantage returns with HTTP 200
type envelope struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// IncomeStatementResponse represents the AlphaVantage INCOME_STATEMENT response
type IncomeStatementResponse struct {
	envelope
	Symbol        string `json:"symbol"`
	AnnualReports []struct {
		FiscalDateEnding string `json:"fiscalDateEnding"`
		TotalRevenue     string `json:"totalRevenue"`
		GrossProfit      string `json:"grossProfit"`
	} `json:"annualReports"`
}

// DailySeriesResponse represents the AlphaVantage TIME_SERIES_DAILY response
type DailySeriesResponse struct {
	envelope
	TimeSeries map[string]struct {
		Open   string `json:"1. open"`
		High   string `json:"2. high"`
		Low    string `json:"3. low"`
		Close  string `json:"4. close"`
		Volume string `json:"5. volume"`
	} `json:"Time Series (Daily)"`
}

// OverviewResponse represents the AlphaVantage OVERVIEW response
type OverviewResponse struct {
	envelope
	Symbol string `json:"Symbol"`
	Name   string `json:"Name"`
}

// Client fetches market data from AlphaVantage
type Client struct {
	apiKey string
	client *resty.Client
}

// NewClient creates a new AlphaVantage market data client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey: apiKey,
		client: fetcher.NewHTTPClient(baseURL, timeout),
	}
}

// query performs one GET for function/symbol and decodes into result
func (c *Client) query(ctx context.Context, function, symbol string, extra map[string]string, result interface{ failure() string }) error {
	if strings.TrimSpace(symbol) == "" {
		return fetcher.NewInvalidRequestError(symbol, "ticker symbol is required")
	}
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIAlphaVantage); err != nil {
		return fetcher.ClassifyTransportError(symbol, err)
	}

	params := map[string]string{
		"apikey":   c.apiKey,
		"function": function,
		"symbol":   symbol,
	}
	for k, v := range extra {
		params[k] = v
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		Get("")

	if err != nil {
		return fetcher.ClassifyTransportError(symbol, err)
	}

	if !resp.IsSuccess() {
		return fetcher.ClassifyHTTPError(symbol, resp.StatusCode())
	}

	return envelopeError(symbol, result.failure())
}

func (e envelope) failure() string {
	switch {
	case e.ErrorMessage != "":
		return "error:" + e.ErrorMessage
	case e.Note != "":
		return "limit:" + e.Note
	case e.Information != "":
		return "limit:" + e.Information
	}
	return ""
}

// envelopeError maps an in-body failure to a fetch error. AlphaVantage
// answers unknown symbols with "Error Message" and throttling with "Note".
func envelopeError(symbol, failure string) error {
	switch {
	case failure == "":
		return nil
	case strings.HasPrefix(failure, "error:"):
		return fetcher.NewEntityNotFoundError(symbol, strings.TrimPrefix(failure, "error:"))
	default:
		return &fetcher.Error{
			Kind:    fetcher.KindProvider,
			Entity:  symbol,
			Message: strings.TrimPrefix(failure, "limit:"),
		}
	}
}

// Fundamentals retrieves annual totalRevenue and grossProfit per fiscal year end
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*fetcher.Dataset, error) {
	var result IncomeStatementResponse
	if err := c.query(ctx, "INCOME_STATEMENT", symbol, nil, &result); err != nil {
		return nil, err
	}

	if len(result.AnnualReports) == 0 {
		return nil, fetcher.NewMalformedDataError(symbol, "annualReports not found in response")
	}

	ds := fetcher.NewDataset(symbol)
	for _, r := range result.AnnualReports {
		if r.FiscalDateEnding == "" {
			return nil, fetcher.NewMalformedDataError(symbol, "annual report without fiscalDateEnding")
		}
		rev, err := parseNumber(symbol, r.TotalRevenue)
		if err != nil {
			return nil, err
		}
		gp, err := parseNumber(symbol, r.GrossProfit)
		if err != nil {
			return nil, err
		}
		ds.Add(fetcher.FieldTotalRevenue, r.FiscalDateEnding, rev)
		ds.Add(fetcher.FieldGrossProfit, r.FiscalDateEnding, gp)
	}

	return ds, nil
}

// PriceHistory retrieves the full daily OHLCV history
func (c *Client) PriceHistory(ctx context.Context, symbol string) (*fetcher.Dataset, error) {
	var result DailySeriesResponse
	if err := c.query(ctx, "TIME_SERIES_DAILY", symbol, map[string]string{"outputsize": "full"}, &result); err != nil {
		return nil, err
	}

	if len(result.TimeSeries) == 0 {
		return nil, fetcher.NewMalformedDataError(symbol, "daily time series not found in response")
	}

	days := make([]string, 0, len(result.TimeSeries))
	for day := range result.TimeSeries {
		days = append(days, day)
	}
	sort.Strings(days)

	ds := fetcher.NewDataset(symbol)
	for _, day := range days {
		bar := result.TimeSeries[day]
		for _, f := range []struct {
			field string
			raw   string
		}{
			{fetcher.FieldOpen, bar.Open},
			{fetcher.FieldHigh, bar.High},
			{fetcher.FieldLow, bar.Low},
			{fetcher.FieldClose, bar.Close},
			{fetcher.FieldVolume, bar.Volume},
		} {
			v, err := parseNumber(symbol, f.raw)
			if err != nil {
				return nil, err
			}
			ds.Add(f.field, day, v)
		}
	}

	return ds, nil
}

// Metadata retrieves the company name from OVERVIEW
func (c *Client) Metadata(ctx context.Context, symbol string) (fetcher.Metadata, error) {
	var result OverviewResponse
	if err := c.query(ctx, "OVERVIEW", symbol, nil, &result); err != nil {
		return fetcher.Metadata{Symbol: symbol}, err
	}

	return fetcher.Metadata{
		Symbol:    symbol,
		LongName:  result.Name,
		ShortName: result.Name,
	}, nil
}

// parseNumber converts AlphaVantage's quoted numbers; "None" and "" are missing
func parseNumber(symbol, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fetcher.NewMalformedDataError(symbol, fmt.Sprintf("invalid number %q", s))
	}
	return &v, nil
}

