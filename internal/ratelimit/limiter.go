package ratelimit

import (
	"context"
	"os"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// API represents the different external APIs we interact with
type API string

const (
	// APIWorldBank represents the World Bank indicators API
	APIWorldBank API = "worldbank"
	// APIYahoo represents the Yahoo Finance chart and quoteSummary APIs
	APIYahoo API = "yahoo"
	// APIAlphaVantage represents the AlphaVantage API
	APIAlphaVantage API = "alphavantage"
)

// Limiter manages rate limits for different APIs
type Limiter struct {
	limiters map[API]*rate.Limiter
	mu       sync.RWMutex
}

var (
	instance *Limiter
	once     sync.Once
)

// GetLimiter returns the singleton rate limiter instance
func GetLimiter() *Limiter {
	once.Do(func() {
		instance = New(isTestMode())
	})
	return instance
}

// New creates a limiter with conservative per-API defaults.
// An unlimited limiter allows every event immediately.
func New(unlimited bool) *Limiter {
	l := &Limiter{
		limiters: make(map[API]*rate.Limiter),
	}
	if unlimited {
		l.limiters[APIWorldBank] = rate.NewLimiter(rate.Inf, 1)
		l.limiters[APIYahoo] = rate.NewLimiter(rate.Inf, 1)
		l.limiters[APIAlphaVantage] = rate.NewLimiter(rate.Inf, 1)
		return l
	}

	// World Bank publishes no hard limit; stay polite at 5 requests per second
	l.limiters[APIWorldBank] = rate.NewLimiter(rate.Limit(5), 1)

	// Yahoo throttles bursts aggressively, 2 requests per second
	l.limiters[APIYahoo] = rate.NewLimiter(rate.Limit(2), 1)

	// AlphaVantage: 5 requests per minute on free tier
	l.limiters[APIAlphaVantage] = rate.NewLimiter(rate.Limit(1.0/12.0), 1)

	return l
}

// isTestMode checks if we're running in test mode
func isTestMode() bool {
	if os.Getenv("GO_TESTING") == "1" {
		return true
	}
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

// Wait blocks until the rate limiter permits an event for the given API
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, api API) error {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return nil
	}

	return limiter.Wait(ctx)
}

