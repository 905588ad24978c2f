package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"econcharts/internal/pipeline"
	"econcharts/internal/render"
)

func newGDPCmd(app *App) *cobra.Command {
	var (
		country    string
		start, end int
	)

	cmd := &cobra.Command{
		Use:   "gdp",
		Short: "Chart a country's GDP and real GDP growth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config
			req := pipeline.GDPRequest{Country: country, Start: start, End: end}
			if req.Country == "" {
				req.Country = cfg.GDPCountry
			}
			req.Country = strings.ToUpper(req.Country)
			if req.Start == 0 {
				req.Start = cfg.GDPStartYear
			}
			if req.End == 0 {
				req.End = cfg.GDPEndYear
			}
			if req.End == 0 {
				req.End = app.Now().Year()
			}
			return runGDP(cmd.Context(), app, req)
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "ISO3 country code (default from config)")
	cmd.Flags().IntVar(&start, "start", 0, "first year (default from config)")
	cmd.Flags().IntVar(&end, "end", 0, "last year (default current year)")

	return cmd
}

func runGDP(ctx context.Context, app *App, req pipeline.GDPRequest) error {
	tbl, err := pipeline.GDP(ctx, app.macro(), req)
	if err != nil {
		return fmt.Errorf("gdp %s: %w", req.Country, err)
	}

	title := fmt.Sprintf("%s GDP %d-%d", req.Country, req.Start, req.End)
	if err := render.Table(app.Out, tbl, render.TableOptions{Title: title, Digits: 2}); err != nil {
		return err
	}

	base := "gdp_" + strings.ToLower(req.Country)
	if err := app.export(base, "GDP", tbl); err != nil {
		return err
	}

	panels := []render.Panel{
		{Title: title, Column: pipeline.ColumnGDP, YLabel: pipeline.ColumnGDP},
		{Title: "Real GDP growth", Column: pipeline.ColumnGDPGrowth, YLabel: pipeline.ColumnGDPGrowth},
	}
	opts := render.DefaultImageOptions
	opts.DPI = app.Config.ImageDPI
	err = app.writeArtifact(base+".png", func(w io.Writer) error {
		return render.PNG(w, tbl, panels, opts)
	})
	if err != nil {
		return err
	}

	page := render.NewPage(title)
	err = page.Add(render.Request{
		Title:          title,
		Kind:           render.KindBarLine,
		Y:              []string{pipeline.ColumnGDP},
		Secondary:      []string{pipeline.ColumnGDPGrowth},
		XLabel:         tbl.IndexName,
		YLabel:         pipeline.ColumnGDP,
		SecondaryLabel: pipeline.ColumnGDPGrowth,
	}, tbl)
	if err != nil {
		return err
	}
	return app.writeHTML(base+".html", page)
}
