package pipeline

import (
	"context"
	"strings"

	"econcharts/internal/combine"
	"econcharts/internal/fetcher"
)

// NameField selects which metadata name is displayed.
type NameField int

const (
	ShortName NameField = iota
	LongName
)

// DisplayName picks the requested name out of md. An empty name is reported
// as MetadataUnavailable so the caller can fall back to the identifier.
func DisplayName(md fetcher.Metadata, field NameField) (string, error) {
	name := md.ShortName
	if field == LongName {
		name = md.LongName
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fetcher.NewMetadataUnavailableError(md.Symbol, nil)
	}
	return name, nil
}

// LookupName resolves display names through src. Any failure is reported as
// MetadataUnavailable.
func LookupName(src MarketSource, field NameField) combine.NameLookup {
	return func(ctx context.Context, symbol string) (string, error) {
		md, err := src.Metadata(ctx, symbol)
		if err != nil {
			return "", fetcher.NewMetadataUnavailableError(symbol, err)
		}
		md.Symbol = symbol
		return DisplayName(md, field)
	}
}

// ParseTickers splits comma separated codes, trims them, drops blanks and
// appends suffix to codes that carry no exchange suffix yet.
func ParseTickers(input, suffix string) []string {
	var out []string
	for _, code := range strings.Split(input, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		out = append(out, WithSuffix(code, suffix))
	}
	return out
}

// WithSuffix appends suffix to code unless code already names an exchange.
func WithSuffix(code, suffix string) string {
	code = strings.TrimSpace(code)
	if suffix == "" || strings.Contains(code, ".") {
		return code
	}
	return code + suffix
}
