package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gonzoleeman/disc-golf-scoring-app/app"
	reportservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/application"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "aggregate points, wins and money over a date range",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Usage: "named range: " + strings.Join(reportdomain.RangeNames, ", ")},
			&cli.StringFlag{Name: "from", Usage: "first day, e.g. 2015-01-01 or \"3 months ago\""},
			&cli.StringFlag{Name: "to", Usage: "last day; defaults to today"},
			&cli.StringFlag{Name: "chart", Usage: "also write a PNG points chart to this path"},
			&cli.StringFlag{Name: "xlsx", Usage: "also write the report as a spreadsheet to this path"},
		},
		Action: withApp(true, func(c *cli.Context, a *app.App) error {
			if c.String("range") == "" && c.String("from") == "" && c.String("to") == "" {
				return fmt.Errorf("give --range or --from/--to")
			}
			svc := a.ReportModule.ReportService
			window, err := svc.ResolveRange(reportservice.RangeSpec{
				Name: c.String("range"),
				From: c.String("from"),
				To:   c.String("to"),
			})
			if err != nil {
				return err
			}
			view, err := svc.GenerateReport(c.Context, window)
			if err != nil {
				return err
			}
			if err := renderReport(view); err != nil {
				return err
			}

			if path := c.String("chart"); path != "" {
				if err := writeFile(path, func(f *os.File) error { return svc.RenderPointsChart(c.Context, view, f) }); err != nil {
					return err
				}
				pterm.Success.Printfln("Chart written to %s", path)
			}
			if path := c.String("xlsx"); path != "" {
				if err := writeFile(path, func(f *os.File) error { return svc.ExportXLSX(c.Context, view, f) }); err != nil {
					return err
				}
				pterm.Success.Printfln("Spreadsheet written to %s", path)
			}
			return nil
		}),
	}
}

func writeFile(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return write(f)
}
