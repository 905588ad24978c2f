package worldbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"econcharts/internal/fetcher"
	"econcharts/internal/ratelimit"
)

// Indicator codes the fetcher knows how to request.
const (
	IndicatorGDPCurrentUSD   = "NY.GDP.MKTP.CD"
	IndicatorGDPGrowthAnnual = "NY.GDP.MKTP.KD.ZG"
	IndicatorGDPPerCapitaUSD = "NY.GDP.PCAP.CD"
)

// Indicators maps every supported indicator code to its display label.
var Indicators = map[string]string{
	IndicatorGDPCurrentUSD:   "GDP (current US$)",
	IndicatorGDPGrowthAnnual: "GDP growth (annual %)",
	IndicatorGDPPerCapitaUSD: "GDP per capita (current US$)",
}

const perPage = 20000

// record is one observation in element 1 of the response array
type record struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// errorEnvelope is what the API sends instead of [meta, data] on bad input
type errorEnvelope struct {
	Message []struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"message"`
}

// IndicatorFetcher fetches annual macro-indicator series from the World Bank API
type IndicatorFetcher struct {
	client *resty.Client
}

// NewIndicatorFetcher creates a new World Bank indicator fetcher
func NewIndicatorFetcher(baseURL string, timeout time.Duration) *IndicatorFetcher {
	return &IndicatorFetcher{
		client: fetcher.NewHTTPClient(baseURL, timeout),
	}
}

// Fetch retrieves one flat series for a (country, indicator) pair over
// the inclusive year range [start, end].
func (f *IndicatorFetcher) Fetch(ctx context.Context, country, indicator string, start, end int) ([]fetcher.RawRecord, error) {
	entity := Key(country, indicator)

	if _, ok := Indicators[indicator]; !ok {
		return nil, fetcher.NewEntityNotFoundError(entity, "unknown indicator "+indicator)
	}
	if strings.TrimSpace(country) == "" {
		return nil, fetcher.NewInvalidRequestError(entity, "country code is required")
	}
	if start > end {
		return nil, fetcher.NewInvalidRequestError(entity, fmt.Sprintf("start year %d is after end year %d", start, end))
	}

	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIWorldBank); err != nil {
		return nil, fetcher.ClassifyTransportError(entity, err)
	}

	var payload []json.RawMessage

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"country":   country,
			"indicator": indicator,
		}).
		SetQueryParams(map[string]string{
			"date":     fmt.Sprintf("%d:%d", start, end),
			"format":   "json",
			"per_page": strconv.Itoa(perPage),
		}).
		SetResult(&payload).
		Get("/country/{country}/indicator/{indicator}")

	if err != nil {
		return nil, fetcher.ClassifyTransportError(entity, err)
	}

	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(entity, resp.StatusCode())
	}

	return parsePayload(entity, payload)
}

// parsePayload validates the two-element [meta, records] response shape.
func parsePayload(entity string, payload []json.RawMessage) ([]fetcher.RawRecord, error) {
	if len(payload) == 1 {
		var env errorEnvelope
		if err := json.Unmarshal(payload[0], &env); err == nil && len(env.Message) > 0 {
			return nil, fetcher.NewEntityNotFoundError(entity, env.Message[0].Value)
		}
	}
	if len(payload) < 2 {
		return nil, fetcher.NewMalformedDataError(entity, fmt.Sprintf("expected 2-element response array, got %d", len(payload)))
	}

	data := bytes.TrimSpace(payload[1])
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fetcher.NewMalformedDataError(entity, "response data element is null")
	}

	var rows []record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fetcher.NewMalformedDataError(entity, "response data element is not a record list: "+err.Error())
	}

	out := make([]fetcher.RawRecord, 0, len(rows))
	for i, r := range rows {
		if r.Date == "" {
			return nil, fetcher.NewMalformedDataError(entity, fmt.Sprintf("record %d has no date", i))
		}
		out = append(out, fetcher.RawRecord{Time: r.Date, Value: r.Value})
	}
	return out, nil
}

// Key returns the hierarchical identifier of a series.
// Format: worldbank:{country}:{indicator}
func Key(country, indicator string) string {
	return fmt.Sprintf("worldbank:%s:%s", country, indicator)
}
