// Package cli wires configuration, providers, pipelines and presenters
// into the econcharts commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"econcharts/internal/alphavantage"
	"econcharts/internal/config"
	"econcharts/internal/frame"
	"econcharts/internal/pipeline"
	"econcharts/internal/render"
	"econcharts/internal/worldbank"
	"econcharts/internal/yahoo"
)

// App carries what every command needs. Config and Logger are filled in
// before the first command runs unless the caller sets them.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
	Now    func() time.Time
}

// NewApp creates an App writing to the process's standard streams.
func NewApp() *App {
	return &App{
		Out: os.Stdout,
		Err: os.Stderr,
		Now: time.Now,
	}
}

func (a *App) macro() pipeline.MacroSource {
	return worldbank.NewIndicatorFetcher(a.Config.WorldBankBaseURL, a.Config.RequestTimeout)
}

func (a *App) market() pipeline.MarketSource {
	cfg := a.Config
	if cfg.Provider() == config.ProviderAlphavantage {
		return alphavantage.NewClient(cfg.AlphavantageAPIKey, cfg.AlphavantageBaseURL, cfg.RequestTimeout)
	}
	return yahoo.NewClient(cfg.YahooBaseURL, cfg.YahooCookieURL, cfg.RequestTimeout)
}

// today is the current calendar date as a daily key.
func (a *App) today() time.Time {
	now := a.Now()
	return frame.Date(now.Year(), now.Month(), now.Day())
}

// create opens name inside the output directory, creating it as needed.
func (a *App) create(name string) (*os.File, string, error) {
	if err := os.MkdirAll(a.Config.OutputDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(a.Config.OutputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, path, nil
}

// writeArtifact writes one output file through write.
func (a *App) writeArtifact(name string, write func(io.Writer) error) error {
	f, path, err := a.create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.Logger.Info("wrote artifact", slog.String("path", path))
	return nil
}

func (a *App) writeHTML(name string, page *render.Page) error {
	return a.writeArtifact(name, page.Render)
}

// export writes tab in every configured export format.
func (a *App) export(base, sheet string, tab frame.Tabular) error {
	for _, format := range a.Config.ExportFormats {
		path := filepath.Join(a.Config.OutputDir, base+"."+format)
		var err error
		switch format {
		case "csv":
			err = render.CSV(path, tab)
		case "xlsx":
			err = render.XLSX(path, sheet, tab)
		default:
			err = fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return err
		}
		a.Logger.Info("wrote artifact", slog.String("path", path))
	}
	return nil
}
