package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"resty.dev/v3"

	"econcharts/internal/fetcher"
	"econcharts/internal/ratelimit"
)

const crumbPath = "/v1/test/getcrumb"

// Client fetches fundamentals, price history and metadata for one ticker
// at a time from the Yahoo Finance quoteSummary and chart APIs.
//
// quoteSummary only answers requests carrying a crumb bound to a session
// cookie. The client obtains both on first use and keeps them in resty's
// cookie jar until Yahoo rejects the crumb.
type Client struct {
	client    *resty.Client
	cookieURL string

	mu    sync.Mutex
	crumb string
}

// NewClient creates a new Yahoo Finance client. cookieURL is the page that
// sets the session cookie (https://fc.yahoo.com); empty skips that step.
func NewClient(baseURL, cookieURL string, timeout time.Duration) *Client {
	return &Client{
		client:    fetcher.NewHTTPClient(baseURL, timeout),
		cookieURL: cookieURL,
	}
}

// sessionCrumb returns the cached crumb, fetching a cookie and a fresh
// crumb when there is none.
func (c *Client) sessionCrumb(ctx context.Context, symbol string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" {
		return c.crumb, nil
	}

	if c.cookieURL != "" {
		// answers 404 but sets the cookie
		if _, err := c.client.R().SetContext(ctx).Get(c.cookieURL); err != nil {
			return "", fetcher.ClassifyTransportError(symbol, err)
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(crumbPath)
	if err != nil {
		return "", fetcher.ClassifyTransportError(symbol, err)
	}
	if !resp.IsSuccess() {
		return "", &fetcher.Error{
			Kind:       fetcher.KindProvider,
			Entity:     symbol,
			StatusCode: resp.StatusCode(),
			Message:    "crumb request rejected",
		}
	}

	crumb := resp.String()
	if crumb == "" || strings.ContainsAny(crumb, "{<") {
		return "", fetcher.NewMalformedDataError(symbol, "crumb response is not a crumb")
	}
	c.crumb = crumb
	return crumb, nil
}

// dropCrumb forgets a crumb Yahoo no longer accepts so the next call
// starts a new session.
func (c *Client) dropCrumb(crumb string) {
	c.mu.Lock()
	if c.crumb == crumb {
		c.crumb = ""
	}
	c.mu.Unlock()
}

// apiError is the error object embedded in both quoteSummary and chart responses
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// rawValue is Yahoo's {"raw": ..., "fmt": ...} number wrapper; an empty
// object means the provider has no value.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price *struct {
		Symbol    string `json:"symbol"`
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
	} `json:"price"`
	IncomeStatementHistory *struct {
		IncomeStatementHistory []struct {
			EndDate      rawValue `json:"endDate"`
			TotalRevenue rawValue `json:"totalRevenue"`
			GrossProfit  rawValue `json:"grossProfit"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
}

// quoteSummary requests the given modules for symbol and returns the single result.
func (c *Client) quoteSummary(ctx context.Context, symbol, modules string) (*quoteSummaryResult, error) {
	if err := checkSymbol(symbol); err != nil {
		return nil, err
	}
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIYahoo); err != nil {
		return nil, fetcher.ClassifyTransportError(symbol, err)
	}

	crumb, err := c.sessionCrumb(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var result quoteSummaryResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParam("modules", modules).
		SetQueryParam("crumb", crumb).
		SetResult(&result).
		Get("/v10/finance/quoteSummary/{symbol}")

	if err != nil {
		return nil, fetcher.ClassifyTransportError(symbol, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.dropCrumb(crumb)
		return nil, &fetcher.Error{
			Kind:       fetcher.KindProvider,
			Entity:     symbol,
			StatusCode: resp.StatusCode(),
			Message:    "crumb rejected",
		}
	}

	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(symbol, resp.StatusCode())
	}

	if e := result.QuoteSummary.Error; e != nil {
		if strings.EqualFold(e.Code, "Unauthorized") {
			c.dropCrumb(crumb)
		}
		return nil, classifyAPIError(symbol, e)
	}
	if len(result.QuoteSummary.Result) == 0 {
		return nil, fetcher.NewEntityNotFoundError(symbol, "no quoteSummary result")
	}

	return &result.QuoteSummary.Result[0], nil
}

// classifyAPIError turns an in-body error object into a fetch error
func classifyAPIError(symbol string, e *apiError) *fetcher.Error {
	if strings.EqualFold(e.Code, "Not Found") {
		return fetcher.NewEntityNotFoundError(symbol, e.Description)
	}
	return &fetcher.Error{
		Kind:    fetcher.KindProvider,
		Entity:  symbol,
		Message: fmt.Sprintf("%s: %s", e.Code, e.Description),
	}
}

func checkSymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return fetcher.NewInvalidRequestError(symbol, "ticker symbol is required")
	}
	return nil
}

