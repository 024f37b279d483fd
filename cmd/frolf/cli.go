package main

import (
	"fmt"

	"github.com/gonzoleeman/disc-golf-scoring-app/app"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/urfave/cli/v2"
)

func newCLI() *cli.App {
	return &cli.App{
		Name:  "frolf",
		Usage: "disc golf league scoring, money rounds and reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file; environment variables are used when it is missing",
				EnvVars: []string{"FROLF_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log at the configured level instead of warnings only",
			},
		},
		Commands: []*cli.Command{
			playersCommand(),
			coursesCommand(),
			roundCommand(),
			moneyCommand(),
			reportCommand(),
			serveCommand(),
		},
	}
}

// loadConfig reads the config named by --config. One-shot commands only log
// warnings unless --verbose is set.
func loadConfig(c *cli.Context, quiet bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if quiet && !c.Bool("verbose") {
		cfg.Observability.LogLevel = "warn"
		cfg.Observability.MetricsAddress = ""
	}
	return cfg, nil
}

// withApp builds the application for one command and tears it down afterwards.
func withApp(quiet bool, fn func(c *cli.Context, a *app.App) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		cfg, err := loadConfig(c, quiet)
		if err != nil {
			return err
		}
		obs, err := observability.Init(c.Context, cfg.Observability)
		if err != nil {
			return fmt.Errorf("failed to initialise observability: %w", err)
		}
		defer func() {
			if shutdownErr := obs.Shutdown(c.Context); err == nil {
				err = shutdownErr
			}
		}()

		a, err := app.NewApp(c.Context, cfg, obs, nil)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := a.Close(); err == nil {
				err = closeErr
			}
		}()
		return fn(c, a)
	}
}
