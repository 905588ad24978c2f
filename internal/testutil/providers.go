package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// World Bank bodies for the failure shapes.
const (
	WorldBankNullData       = `[{"page": 1, "pages": 1, "per_page": 20000, "total": 0}, null]`
	WorldBankInvalidCountry = `[{"message": [{"id": "120", "key": "Invalid value", "value": "The provided parameter value is not valid"}]}]`
)

// CookiePath is where the fake Yahoo hands out its session cookie. The crumb
// endpoint only answers with that cookie, and quoteSummary only with the
// crumb.
const CookiePath = "/consent"

const sessionCrumb = "fakeCrumb0"

// WorldBankSeries builds a successful indicator response with one record per
// year starting at first, newest first as the API returns them.
func WorldBankSeries(first int, values ...float64) string {
	rows := make([]map[string]any, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		rows = append(rows, map[string]any{
			"date":  fmt.Sprint(first + i),
			"value": values[i],
		})
	}
	meta := map[string]any{"page": 1, "pages": 1, "per_page": 20000, "total": len(values)}
	body, _ := json.Marshal([]any{meta, rows})
	return string(body)
}

// Statement is one fiscal year of an income statement.
type Statement struct {
	EndDate     string
	Revenue     float64
	GrossProfit float64
}

// Company is everything the fake market provider knows about one ticker.
type Company struct {
	ShortName  string
	LongName   string
	Statements []Statement
	// Closes are consecutive daily closes from PriceStart.
	PriceStart time.Time
	Closes     []float64
}

// Providers is an in-memory stand-in for the World Bank and Yahoo Finance
// APIs served from a single httptest server.
type Providers struct {
	// Indicators maps "COUNTRY/INDICATOR" to a raw World Bank response body.
	// Unknown pairs get the invalid-value envelope.
	Indicators map[string]string
	// Companies maps a ticker symbol to its data. Unknown symbols get
	// Yahoo's Not Found error.
	Companies map[string]Company

	mu       sync.Mutex
	requests []string
}

// Start serves p until the test ends and returns the server URL.
func (p *Providers) Start(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /country/{country}/indicator/{indicator}", p.indicator)
	mux.HandleFunc("GET "+CookiePath, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("A3"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(sessionCrumb))
	})
	mux.HandleFunc("GET /v10/finance/quoteSummary/{symbol}", p.quoteSummary)
	mux.HandleFunc("GET /v8/finance/chart/{symbol}", p.chart)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

// Requests returns the request paths served so far, in order.
func (p *Providers) Requests() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.requests...)
}

func (p *Providers) record(r *http.Request) {
	p.mu.Lock()
	p.requests = append(p.requests, r.URL.Path)
	p.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	switch b := body.(type) {
	case string:
		w.Write([]byte(b))
	default:
		json.NewEncoder(w).Encode(b)
	}
}

func (p *Providers) indicator(w http.ResponseWriter, r *http.Request) {
	p.record(r)
	body, ok := p.Indicators[r.PathValue("country")+"/"+r.PathValue("indicator")]
	if !ok {
		body = WorldBankInvalidCountry
	}
	writeJSON(w, body)
}

func notFound(kind string) map[string]any {
	return map[string]any{kind: map[string]any{
		"result": nil,
		"error":  map[string]any{"code": "Not Found", "description": "Quote not found for ticker symbol"},
	}}
}

func (p *Providers) quoteSummary(w http.ResponseWriter, r *http.Request) {
	p.record(r)
	if r.URL.Query().Get("crumb") != sessionCrumb {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"finance": {"result": null, "error": {"code": "Unauthorized", "description": "Invalid Crumb"}}}`))
		return
	}
	c, ok := p.Companies[r.PathValue("symbol")]
	if !ok {
		writeJSON(w, notFound("quoteSummary"))
		return
	}

	result := map[string]any{}
	switch r.URL.Query().Get("modules") {
	case "price":
		price := map[string]any{"symbol": r.PathValue("symbol")}
		if c.LongName != "" {
			price["longName"] = c.LongName
		}
		if c.ShortName != "" {
			price["shortName"] = c.ShortName
		}
		result["price"] = price
	default:
		rows := make([]map[string]any, 0, len(c.Statements))
		for _, s := range c.Statements {
			rows = append(rows, map[string]any{
				"endDate":      map[string]any{"fmt": s.EndDate},
				"totalRevenue": map[string]any{"raw": s.Revenue},
				"grossProfit":  map[string]any{"raw": s.GrossProfit},
			})
		}
		result["incomeStatementHistory"] = map[string]any{"incomeStatementHistory": rows}
	}

	writeJSON(w, map[string]any{"quoteSummary": map[string]any{
		"result": []any{result},
		"error":  nil,
	}})
}

func (p *Providers) chart(w http.ResponseWriter, r *http.Request) {
	p.record(r)
	c, ok := p.Companies[r.PathValue("symbol")]
	if !ok || len(c.Closes) == 0 {
		writeJSON(w, notFound("chart"))
		return
	}

	n := len(c.Closes)
	ts := make([]int64, n)
	open, high, low, volume := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, v := range c.Closes {
		// 09:00 exchange time on a UTC+9 market
		ts[i] = c.PriceStart.AddDate(0, 0, i).Unix()
		open[i], high[i], low[i], volume[i] = v-1, v+2, v-2, 1000+float64(i)
	}

	writeJSON(w, map[string]any{"chart": map[string]any{
		"result": []any{map[string]any{
			"meta":      map[string]any{"symbol": r.PathValue("symbol"), "currency": "JPY", "gmtoffset": 32400},
			"timestamp": ts,
			"indicators": map[string]any{"quote": []any{map[string]any{
				"open": open, "high": high, "low": low, "close": c.Closes, "volume": volume,
			}}},
		}},
		"error": nil,
	}})
}
