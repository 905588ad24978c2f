package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"econcharts/internal/pipeline"
	"econcharts/internal/render"
)

func newCompanyCmd(app *App) *cobra.Command {
	var ticker, from, to string

	cmd := &cobra.Command{
		Use:   "company",
		Short: "Chart one company's financials and recent prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config
			if ticker == "" {
				ticker = cfg.CompanyTicker
			}

			req := pipeline.CompanyRequest{Symbol: pipeline.WithSuffix(ticker, cfg.TickerSuffix)}

			var err error
			req.To = app.today()
			if to != "" {
				if req.To, err = time.Parse(time.DateOnly, to); err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
			}
			req.From = req.To.AddDate(-cfg.HistoryYears, 0, 0)
			if from != "" {
				if req.From, err = time.Parse(time.DateOnly, from); err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
			}
			return runCompany(cmd.Context(), app, req)
		},
	}

	cmd.Flags().StringVar(&ticker, "ticker", "", "ticker code; the exchange suffix is added when missing")
	cmd.Flags().StringVar(&from, "from", "", "first price date, YYYY-MM-DD (default history_years before --to)")
	cmd.Flags().StringVar(&to, "to", "", "last price date, YYYY-MM-DD (default today)")

	return cmd
}

func runCompany(ctx context.Context, app *App, req pipeline.CompanyRequest) error {
	report, runErr := pipeline.Company(ctx, app.market(), req, app.Logger)
	if report == nil {
		return runErr
	}

	fmt.Fprintf(app.Out, "%s (%s)\n\n", report.Name, report.Symbol)

	base := "company_" + strings.ToLower(strings.ReplaceAll(report.Symbol, ".", "_"))
	page := render.NewPage(report.Name)

	if fin := report.Financials; fin != nil {
		if err := render.Table(app.Out, fin, render.TableOptions{Title: "Financials", Digits: 2}); err != nil {
			return err
		}
		fmt.Fprintln(app.Out)

		err := page.Add(render.Request{
			Title:          report.Name + ": revenue, gross profit and gross margin",
			Kind:           render.KindBarLine,
			Y:              []string{pipeline.ColumnRevenue, pipeline.ColumnGrossProfit},
			Secondary:      []string{pipeline.ColumnGrossMargin},
			XLabel:         fin.IndexName,
			YLabel:         "Amount",
			SecondaryLabel: pipeline.ColumnGrossMargin,
		}, fin)
		if err != nil {
			return err
		}
		if err := app.export(base+"_financials", "Financials", fin); err != nil {
			return err
		}
	}

	if prices := report.Prices; prices != nil {
		title := fmt.Sprintf("Prices %s to %s", req.From.Format(time.DateOnly), req.To.Format(time.DateOnly))
		opts := render.TableOptions{Title: title, NewestFirst: true, Digits: 2}
		if err := render.Table(app.Out, prices, opts); err != nil {
			return err
		}

		err := page.Add(render.Request{
			Title: report.Name + ": daily prices",
			Kind:  render.KindCandlestick,
			OHLC: render.OHLC{
				Open:  pipeline.ColumnOpen,
				High:  pipeline.ColumnHigh,
				Low:   pipeline.ColumnLow,
				Close: pipeline.ColumnClose,
			},
			Overlays: []string{pipeline.ColumnMA25, pipeline.ColumnMA50},
			Volume:   pipeline.ColumnVolume,
			XLabel:   prices.IndexName,
			YLabel:   "Price",
		}, prices)
		if err != nil {
			return err
		}
		if err := app.export(base+"_prices", "Prices", prices.Reversed()); err != nil {
			return err
		}
	}

	if err := app.writeHTML(base+".html", page); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("company %s: %w", req.Symbol, runErr)
	}
	return nil
}
