package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"econcharts/internal/config"
	"econcharts/internal/logging"
)

// NewRootCmd builds the econcharts command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	var (
		outputDir string
		logLevel  string
		logFormat string
		provider  string
		timeout   time.Duration
		exports   []string
	)

	root := &cobra.Command{
		Use:           "econcharts",
		Short:         "Chart public macroeconomic and equity data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if app.Config == nil {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				app.Config = cfg
			}

			flags := cmd.Flags()
			if flags.Changed("output-dir") {
				app.Config.OutputDir = outputDir
			}
			if flags.Changed("log-level") {
				app.Config.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				app.Config.LogFormat = logFormat
			}
			if flags.Changed("provider") {
				app.Config.MarketProvider = provider
			}
			if flags.Changed("timeout") {
				app.Config.RequestTimeout = timeout
			}
			if flags.Changed("export") {
				app.Config.ExportFormats = exports
			}
			if err := app.Config.Validate(); err != nil {
				return err
			}

			if app.Logger == nil {
				app.Logger, _ = logging.New(app.Err, app.Config.LogLevel, app.Config.LogFormat)
			}
			// provider clients and exporters log through the default logger
			slog.SetDefault(app.Logger)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&outputDir, "output-dir", "", "directory for charts and exports")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "", "text or json")
	pf.StringVar(&provider, "provider", "", "market data provider: yahoo or alphavantage")
	pf.DurationVar(&timeout, "timeout", 0, "maximum wait for each provider request")
	pf.StringSliceVar(&exports, "export", nil, "export formats: csv, xlsx")

	root.AddCommand(
		newGDPCmd(app),
		newCompanyCmd(app),
		newCompareCmd(app),
	)

	return root
}
