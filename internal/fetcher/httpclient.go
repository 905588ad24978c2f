package fetcher

import (
	"log/slog"
	"time"

	"resty.dev/v3"
)

const (
	// DefaultTimeout is the maximum wait for a single provider request
	DefaultTimeout = 30 * time.Second

	userAgent = "econcharts/1.0"
)

// NewHTTPClient creates a new HTTP client for one provider.
// Requests are attempted once: there is no retry policy, and a request that
// does not complete within timeout fails with a timeout Error.
func NewHTTPClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout).
		SetRetryCount(0).
		AddResponseMiddleware(responseLogger)

	return client
}

// responseLogger logs every provider response for observability
func responseLogger(_ *resty.Client, r *resty.Response) error {
	slog.Debug("provider response",
		"method", r.Request.Method,
		"url", r.Request.URL,
		"status_code", r.StatusCode())
	return nil
}
