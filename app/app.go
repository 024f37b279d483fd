// Package app assembles the modules, the event bus and the database into one application.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/eventbus"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/clock"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/gonzoleeman/disc-golf-scoring-app/db/bundb"
)

type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bundb.DBService
	EventBus      eventbus.EventBus
	Router        *message.Router

	RoundModule  *round.Module
	MoneyModule  *money.Module
	ReportModule *report.Module

	routerCtx    context.Context
	routerCancel context.CancelFunc
	wg           sync.WaitGroup
}

// NewApp opens the database, migrates it when configured to, and builds every module.
// clk resolves relative report ranges; nil uses the system clock.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability, clk clock.Clock) (*App, error) {
	logger := obs.Logger()

	dbService, err := bundb.NewBunDBService(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := bundb.MigrateAll(ctx, dbService.GetDB(), logger); err != nil {
			_ = dbService.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	bus := eventbus.NewEventBus(logger, cfg.Events.BufferSize)

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	a := &App{
		Config:        cfg,
		Observability: obs,
		DB:            dbService,
		EventBus:      bus,
		Router:        router,
	}
	a.routerCtx, a.routerCancel = context.WithCancel(context.Background())

	if err := a.initializeModules(ctx, clk); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) initializeModules(ctx context.Context, clk clock.Clock) error {
	db := a.DB.GetDB()

	roundModule, err := round.NewRoundModule(ctx, a.Config, a.Observability, a.DB.RoundDB, a.DB.MoneyDB, a.EventBus, db)
	if err != nil {
		return fmt.Errorf("failed to initialize round module: %w", err)
	}
	a.RoundModule = roundModule

	moneyModule, err := money.NewMoneyModule(ctx, a.Config, a.Observability, a.DB.MoneyDB, a.DB.RoundDB, a.EventBus, db)
	if err != nil {
		return fmt.Errorf("failed to initialize money module: %w", err)
	}
	a.MoneyModule = moneyModule

	reportModule, err := report.NewReportModule(
		ctx,
		a.Config,
		a.Observability,
		a.DB.RoundDB,
		a.DB.MoneyDB,
		roundModule.Rules,
		moneyModule.Rules,
		clk,
		a.EventBus,
		a.Router,
		a.routerCtx,
		db,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize report module: %w", err)
	}
	a.ReportModule = reportModule
	return nil
}

// Run starts the modules and the event router, and blocks until ctx is cancelled
// or the router stops.
func (a *App) Run(ctx context.Context) error {
	a.wg.Add(3)
	go a.RoundModule.Run(ctx, &a.wg)
	go a.MoneyModule.Run(ctx, &a.wg)
	go a.ReportModule.Run(ctx, &a.wg)

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- a.Router.Run(a.routerCtx)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-routerErr:
		if err != nil {
			return fmt.Errorf("watermill router stopped: %w", err)
		}
		return nil
	}
}

// Running is closed once the event router is consuming messages.
func (a *App) Running() chan struct{} {
	return a.Router.Running()
}

// Close stops the modules, the router and the bus, then closes the database.
func (a *App) Close() error {
	var errs []error
	if a.ReportModule != nil {
		errs = append(errs, a.ReportModule.Close())
	}
	if a.MoneyModule != nil {
		errs = append(errs, a.MoneyModule.Close())
	}
	if a.RoundModule != nil {
		errs = append(errs, a.RoundModule.Close())
	}
	if a.routerCancel != nil {
		a.routerCancel()
	}
	if a.Router != nil {
		if err := a.Router.Close(); err != nil {
			errs = append(errs, fmt.Errorf("router: %w", err))
		}
	}
	a.wg.Wait()
	if a.EventBus != nil {
		if err := a.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
