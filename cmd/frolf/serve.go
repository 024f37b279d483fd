package main

import (
	"errors"

	"github.com/gonzoleeman/disc-golf-scoring-app/app"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/server"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and the event router until interrupted",
		Action: withApp(false, func(c *cli.Context, a *app.App) error {
			ctx, stop := app.WaitForShutdown(c.Context)
			defer stop()

			srv := server.New(a.Config.HTTP, server.Deps{
				Rounds:  a.RoundModule.RoundService,
				Money:   a.MoneyModule.MoneyService,
				Reports: a.ReportModule.ReportService,
				Metrics: a.Observability.MetricsHandler(),
			}, a.Observability.Logger())

			appErr := make(chan error, 1)
			go func() { appErr <- a.Run(ctx) }()
			httpErr := make(chan error, 1)
			go func() { httpErr <- srv.ListenAndServe(ctx) }()

			// Whichever side stops first takes the other down with it.
			var err error
			select {
			case err = <-appErr:
				stop()
				err = errors.Join(err, <-httpErr)
			case err = <-httpErr:
				stop()
				err = errors.Join(err, <-appErr)
			}
			return err
		}),
	}
}
