package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	reportservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/application"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	reportrouter "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/infrastructure/router"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/clock"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/uptrace/bun"
)

// Module represents the report module.
type Module struct {
	ReportService reportservice.Service
	ReportRouter  *reportrouter.ReportRouter
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewReportModule creates the report service and subscribes it to the events
// that make cached reports stale.
func NewReportModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	rounds reportservice.RoundHistory,
	money reportservice.MoneyHistory,
	scoring rounddomain.Rules,
	settlement moneydomain.Rules,
	clk clock.Clock,
	subscriber message.Subscriber,
	router *message.Router,
	routerCtx context.Context,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger()
	tracer := obs.Tracer("report")

	logger.InfoContext(ctx, "report.NewReportModule initializing")

	service := reportservice.NewReportService(
		rounds,
		money,
		reportdomain.NewAggregator(scoring, settlement),
		clk,
		logger,
		obs.ReportMetrics(),
		tracer,
		db,
	)

	reportRouter := reportrouter.NewReportRouter(logger, router, subscriber, tracer, obs.Registry, cfg.IsTest())
	if err := reportRouter.Configure(routerCtx, service); err != nil {
		return nil, fmt.Errorf("failed to configure report router: %w", err)
	}

	return &Module{
		ReportService: service,
		ReportRouter:  reportRouter,
		observability: obs,
	}, nil
}

// Run starts the report module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger()
	logger.InfoContext(ctx, "Starting report module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Report module goroutine stopped")
}

// Close shuts down the report module. The shared watermill router is closed by the app.
func (m *Module) Close() error {
	logger := m.observability.Logger()
	logger.Info("Stopping report module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Report module stopped")
	return nil
}
