package round

import (
	"context"
	"fmt"
	"sync"

	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/uptrace/bun"
)

// Module represents the round module.
type Module struct {
	RoundService  roundservice.Service
	Repository    rounddb.Repository
	Rules         rounddomain.Rules
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewRoundModule creates and initializes a new round module.
func NewRoundModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	repo rounddb.Repository,
	settlements roundservice.SettlementChecker,
	publisher roundservice.EventPublisher,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger()
	tracer := obs.Tracer("round")

	logger.InfoContext(ctx, "round.NewRoundModule initializing")

	rules := ScoringRules(cfg.Scoring)
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring rules: %w", err)
	}

	service := roundservice.NewRoundService(
		repo,
		settlements,
		rounddomain.NewScorer(rules),
		publisher,
		logger,
		obs.RoundMetrics(),
		tracer,
		db,
	)

	return &Module{
		RoundService:  service,
		Repository:    repo,
		Rules:         rules,
		observability: obs,
	}, nil
}

// ScoringRules converts the configured point tables.
func ScoringRules(cfg config.ScoringConfig) rounddomain.Rules {
	return rounddomain.Rules{
		NineHole: rounddomain.PointTable(cfg.NineHolePoints),
		Overall:  rounddomain.PointTable(cfg.OverallPoints),
	}
}

// Run starts the round module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger()
	logger.InfoContext(ctx, "Starting round module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Round module goroutine stopped")
}

// Close shuts down the round module.
func (m *Module) Close() error {
	logger := m.observability.Logger()
	logger.Info("Stopping round module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Round module stopped")
	return nil
}
