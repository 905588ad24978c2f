package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"econcharts/internal/coordinator"
	"econcharts/internal/pipeline"
	"econcharts/internal/render"
)

func newCompareCmd(app *App) *cobra.Command {
	var tickers string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare mean gross margin and revenue growth across companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config
			suffix := cfg.TickerSuffix

			entities := pipeline.ParseTickers(strings.Join(cfg.CompareTickers, ","), suffix)
			entities = append(entities, pipeline.ParseTickers(tickers, suffix)...)
			return runCompare(cmd.Context(), app, entities)
		},
	}

	cmd.Flags().StringVar(&tickers, "tickers", "", "comma separated ticker codes added to the configured list")

	return cmd
}

func runCompare(ctx context.Context, app *App, entities []string) error {
	cmp, err := pipeline.Compare(ctx, app.market(), entities, app.Logger)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	title := "Mean gross margin and revenue growth"
	if err := render.Table(app.Out, cmp.Summaries, render.TableOptions{Title: title, Digits: 2}); err != nil {
		return err
	}

	failed := coordinator.Failed(cmp.Results)
	for _, r := range failed {
		fmt.Fprintf(app.Out, "skipped %s: %v\n", r.Key, r.Error)
	}
	if len(failed) == len(cmp.Results) {
		app.Logger.Warn("no company could be compared", slog.Int("entities", len(cmp.Results)))
	}

	if err := app.export("compare", "Summary", cmp.Summaries); err != nil {
		return err
	}

	page := render.NewPage(title)
	req := scatterRequest(title)
	page.AddScatter(req, render.Points(cmp.Summaries, req.X, req.Y[0]))
	return app.writeHTML("compare.html", page)
}

// scatterRequest plots each company's mean revenue growth against its mean
// gross margin.
func scatterRequest(title string) render.Request {
	return render.Request{
		Title:  title,
		Kind:   render.KindScatter,
		X:      pipeline.ColumnRevenueGrowth,
		Y:      []string{pipeline.ColumnGrossMargin},
		XLabel: "Mean " + pipeline.ColumnRevenueGrowth,
		YLabel: "Mean " + pipeline.ColumnGrossMargin,
	}
}
