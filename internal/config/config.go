package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Market data providers.
const (
	ProviderYahoo        = "yahoo"
	ProviderAlphavantage = "alphavantage"
)

// DefaultCompareTickers are always part of a compare run.
var DefaultCompareTickers = []string{"4063.T", "3407.T", "4188.T", "4183.T", "4005.T"}

// Config holds all configuration for the chart generator.
type Config struct {
	// Base URLs for API endpoints (configurable for testing)
	WorldBankBaseURL    string `mapstructure:"worldbank_base_url" validate:"required,url"`
	YahooBaseURL        string `mapstructure:"yahoo_base_url" validate:"required,url"`
	YahooCookieURL      string `mapstructure:"yahoo_cookie_url" validate:"omitempty,url"`
	AlphavantageBaseURL string `mapstructure:"alphavantage_base_url" validate:"required,url"`

	// Market data provider for the company and compare commands
	MarketProvider     string `mapstructure:"market_provider" validate:"oneof=yahoo alphavantage"`
	AlphavantageAPIKey string `mapstructure:"alphavantage_api_key" validate:"required_if=MarketProvider alphavantage"`

	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=text json"`

	// Output
	OutputDir     string   `mapstructure:"output_dir" validate:"required"`
	ExportFormats []string `mapstructure:"export_formats" validate:"dive,oneof=csv xlsx"`
	ImageDPI      int      `mapstructure:"image_dpi" validate:"gt=0,lte=1200"`

	// gdp command
	GDPCountry   string `mapstructure:"gdp_country" validate:"required,alphanum,min=2,max=3"`
	GDPStartYear int    `mapstructure:"gdp_start_year" validate:"gte=1960"`
	// GDPEndYear of zero means the current year
	GDPEndYear int `mapstructure:"gdp_end_year" validate:"omitempty,gtefield=GDPStartYear"`

	// company and compare commands
	TickerSuffix   string   `mapstructure:"ticker_suffix"`
	CompanyTicker  string   `mapstructure:"company_ticker" validate:"required"`
	HistoryYears   int      `mapstructure:"history_years" validate:"gt=0"`
	CompareTickers []string `mapstructure:"compare_tickers"`
}

// Load reads configuration from a .env file, environment variables and an
// optional config file, in that order of precedence after flags.
//
// Recognized environment variables:
//   - WORLDBANK_BASE_URL, YAHOO_BASE_URL, YAHOO_COOKIE_URL, ALPHAVANTAGE_BASE_URL
//   - MARKET_PROVIDER (yahoo or alphavantage), ALPHAVANTAGE_API_KEY
//   - REQUEST_TIMEOUT (e.g. "30s")
//   - LOG_LEVEL, LOG_FORMAT
//   - OUTPUT_DIR, EXPORT_FORMATS, IMAGE_DPI
//   - GDP_COUNTRY, GDP_START_YEAR, GDP_END_YEAR
//   - TICKER_SUFFIX, COMPANY_TICKER, HISTORY_YEARS, COMPARE_TICKERS
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("worldbank_base_url", "https://api.worldbank.org/v2")
	v.SetDefault("yahoo_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo_cookie_url", "https://fc.yahoo.com")
	v.SetDefault("alphavantage_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("market_provider", ProviderYahoo)
	v.SetDefault("alphavantage_api_key", "")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("output_dir", "output")
	v.SetDefault("export_formats", []string{"csv"})
	v.SetDefault("image_dpi", 200)
	v.SetDefault("gdp_country", "CHN")
	v.SetDefault("gdp_start_year", 1980)
	v.SetDefault("gdp_end_year", 0)
	v.SetDefault("ticker_suffix", ".T")
	v.SetDefault("company_ticker", "3405")
	v.SetDefault("history_years", 2)
	v.SetDefault("compare_tickers", DefaultCompareTickers)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.econcharts")

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	for _, key := range v.AllKeys() {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every field against its validate tag. Callers that
// override fields after Load validate again.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_if":
		return fmt.Sprintf("%s is required when %s", field, strings.Replace(param, " ", " is ", 1))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Provider returns the market provider, lowercased.
func (c *Config) Provider() string {
	return strings.ToLower(strings.TrimSpace(c.MarketProvider))
}
