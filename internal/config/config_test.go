package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// configEnv lists every variable Load reads
var configEnv = []string{
	"WORLDBANK_BASE_URL",
	"YAHOO_BASE_URL",
	"YAHOO_COOKIE_URL",
	"ALPHAVANTAGE_BASE_URL",
	"MARKET_PROVIDER",
	"ALPHAVANTAGE_API_KEY",
	"REQUEST_TIMEOUT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"OUTPUT_DIR",
	"EXPORT_FORMATS",
	"IMAGE_DPI",
	"GDP_COUNTRY",
	"GDP_START_YEAR",
	"GDP_END_YEAR",
	"TICKER_SUFFIX",
	"COMPANY_TICKER",
	"HISTORY_YEARS",
	"COMPARE_TICKERS",
}

// clearEnv blanks every variable; viper treats empty values as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"WorldBankBaseURL", cfg.WorldBankBaseURL, "https://api.worldbank.org/v2"},
		{"YahooBaseURL", cfg.YahooBaseURL, "https://query1.finance.yahoo.com"},
		{"YahooCookieURL", cfg.YahooCookieURL, "https://fc.yahoo.com"},
		{"MarketProvider", cfg.MarketProvider, ProviderYahoo},
		{"RequestTimeout", cfg.RequestTimeout, 30 * time.Second},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "text"},
		{"OutputDir", cfg.OutputDir, "output"},
		{"ImageDPI", cfg.ImageDPI, 200},
		{"GDPCountry", cfg.GDPCountry, "CHN"},
		{"GDPStartYear", cfg.GDPStartYear, 1980},
		{"GDPEndYear", cfg.GDPEndYear, 0},
		{"TickerSuffix", cfg.TickerSuffix, ".T"},
		{"CompanyTicker", cfg.CompanyTicker, "3405"},
		{"HistoryYears", cfg.HistoryYears, 2},
		{"CompareTickers", cfg.CompareTickers, DefaultCompareTickers},
		{"ExportFormats", cfg.ExportFormats, []string{"csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)

	envVars := map[string]string{
		"WORLDBANK_BASE_URL": "http://127.0.0.1:9000/v2",
		"YAHOO_BASE_URL":     "http://127.0.0.1:9001",
		"REQUEST_TIMEOUT":    "5s",
		"LOG_LEVEL":          "debug",
		"LOG_FORMAT":         "json",
		"GDP_COUNTRY":        "JPN",
		"GDP_START_YEAR":     "2000",
		"GDP_END_YEAR":       "2020",
		"COMPARE_TICKERS":    "7203.T,6758.T",
		"IMAGE_DPI":          "300",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"WorldBankBaseURL", cfg.WorldBankBaseURL, "http://127.0.0.1:9000/v2"},
		{"YahooBaseURL", cfg.YahooBaseURL, "http://127.0.0.1:9001"},
		{"RequestTimeout", cfg.RequestTimeout, 5 * time.Second},
		{"LogLevel", cfg.LogLevel, "debug"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"GDPCountry", cfg.GDPCountry, "JPN"},
		{"GDPStartYear", cfg.GDPStartYear, 2000},
		{"GDPEndYear", cfg.GDPEndYear, 2020},
		{"CompareTickers", cfg.CompareTickers, []string{"7203.T", "6758.T"}},
		{"ImageDPI", cfg.ImageDPI, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    map[string]string
		wantErrText string
	}{
		{
			name:        "bad base URL",
			setupEnv:    map[string]string{"WORLDBANK_BASE_URL": "not a url"},
			wantErrText: "worldbank_base_url must be a valid URL",
		},
		{
			name:        "unknown provider",
			setupEnv:    map[string]string{"MARKET_PROVIDER": "bloomberg"},
			wantErrText: "market_provider must be one of: yahoo, alphavantage",
		},
		{
			name:        "alphavantage without key",
			setupEnv:    map[string]string{"MARKET_PROVIDER": "alphavantage"},
			wantErrText: "alphavantage_api_key is required",
		},
		{
			name:        "end before start",
			setupEnv:    map[string]string{"GDP_START_YEAR": "2000", "GDP_END_YEAR": "1990"},
			wantErrText: "gdp_end_year",
		},
		{
			name:        "bad log level",
			setupEnv:    map[string]string{"LOG_LEVEL": "verbose"},
			wantErrText: "log_level",
		},
		{
			name:        "zero history",
			setupEnv:    map[string]string{"HISTORY_YEARS": "0"},
			wantErrText: "history_years must be greater than 0",
		},
		{
			name:        "unknown export format",
			setupEnv:    map[string]string{"EXPORT_FORMATS": "csv,pdf"},
			wantErrText: "must be one of: csv, xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.setupEnv {
				t.Setenv(key, value)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrText) {
				t.Errorf("Load() error = %q, want error containing %q", err.Error(), tt.wantErrText)
			}
		})
	}
}

func TestValidate_AfterOverride(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	cfg.GDPCountry = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "gdp_country is required") {
		t.Errorf("Validate() error = %v, want gdp_country is required", err)
	}
}

func TestProvider(t *testing.T) {
	cfg := &Config{MarketProvider: " Yahoo "}
	if got := cfg.Provider(); got != ProviderYahoo {
		t.Errorf("Provider() = %q, want %q", got, ProviderYahoo)
	}
}
