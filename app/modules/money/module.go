package money

import (
	"context"
	"fmt"
	"sync"

	moneyservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/application"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	pkgmoney "github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
	"github.com/uptrace/bun"
)

// Module represents the money module.
type Module struct {
	MoneyService  moneyservice.Service
	Repository    moneydb.Repository
	Rules         moneydomain.Rules
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewMoneyModule creates and initializes a new money module.
func NewMoneyModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	repo moneydb.Repository,
	rounds moneyservice.RoundLookup,
	publisher moneyservice.EventPublisher,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger()
	tracer := obs.Tracer("money")

	logger.InfoContext(ctx, "money.NewMoneyModule initializing")

	rules := SettlementRules(cfg.Money)
	if rules.UnitStake.AsCents() <= 0 {
		return nil, fmt.Errorf("unit stake must be positive, got %s", rules.UnitStake)
	}

	service := moneyservice.NewMoneyService(repo, rounds, rules, publisher, logger, obs.MoneyMetrics(), tracer, db)

	return &Module{
		MoneyService:  service,
		Repository:    repo,
		Rules:         rules,
		observability: obs,
	}, nil
}

// SettlementRules converts the configured stake and split policy.
func SettlementRules(cfg config.MoneyConfig) moneydomain.Rules {
	return moneydomain.Rules{
		UnitStake:          pkgmoney.FromCents(cfg.UnitStakeCents),
		AllowSplitWinnings: cfg.AllowSplitWinnings,
	}
}

// Run starts the money module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger()
	logger.InfoContext(ctx, "Starting money module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Money module goroutine stopped")
}

// Close shuts down the money module.
func (m *Module) Close() error {
	logger := m.observability.Logger()
	logger.Info("Stopping money module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Money module stopped")
	return nil
}
