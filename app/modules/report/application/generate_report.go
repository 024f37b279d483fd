package reportservice

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
)

type viewResult = results.OperationResult[*ReportView, error]

var allTimeStart = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// ResolveRange turns a named range or a pair of free-form dates into a window.
func (s *ReportService) ResolveRange(spec RangeSpec) (reportdomain.DateRange, error) {
	now := s.clock.Now()
	if spec.Name != "" {
		return reportdomain.NamedRange(spec.Name, now)
	}

	start, end := allTimeStart, rounddomain.CalendarDay(now)
	if strings.TrimSpace(spec.From) != "" {
		t, err := reportdomain.ParseDate(spec.From, now)
		if err != nil {
			return reportdomain.DateRange{}, fmt.Errorf("from: %w", err)
		}
		start = t
	}
	if strings.TrimSpace(spec.To) != "" {
		t, err := reportdomain.ParseDate(spec.To, now)
		if err != nil {
			return reportdomain.DateRange{}, fmt.Errorf("to: %w", err)
		}
		end = t
	}
	return reportdomain.NewDateRange(start, end)
}

// GenerateReport aggregates every scored round and money round in r. Reports are
// cached per window until InvalidateCache is called.
func (s *ReportService) GenerateReport(ctx context.Context, r reportdomain.DateRange) (*ReportView, error) {
	key := r.String()

	result, err := withTelemetry(s, ctx, "GenerateReport", key, func(ctx context.Context) (viewResult, error) {
		if cached, ok := s.cache.get(key); ok {
			s.recordCacheLookup(ctx, true)
			return results.SuccessResult[*ReportView, error](cached), nil
		}
		s.recordCacheLookup(ctx, false)
		gen := s.cache.generation()

		generateTx := func(ctx context.Context, db bun.IDB) (viewResult, error) {
			return s.generateReportLogic(ctx, db, r)
		}
		res, err := runInTx(s, ctx, generateTx)
		if err == nil && res.IsSuccess() && !s.cache.put(key, *res.Success, gen) {
			s.logger.DebugContext(ctx, "Report outdated by a concurrent write, not cached",
				attr.ExtractCorrelationID(ctx),
				attr.String("range", key),
			)
		}
		return res, err
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *ReportService) generateReportLogic(ctx context.Context, db bun.IDB, r reportdomain.DateRange) (viewResult, error) {
	rounds, err := s.rounds.ListRoundsBetween(ctx, db, r.Start, r.End)
	if err != nil {
		return viewResult{}, fmt.Errorf("failed to list rounds: %w", err)
	}
	ids := make([]rounddomain.RoundID, len(rounds))
	for i, round := range rounds {
		ids[i] = round.ID
	}

	details, err := s.rounds.ListDetailsForRounds(ctx, db, ids)
	if err != nil {
		return viewResult{}, fmt.Errorf("failed to list round details: %w", err)
	}
	moneyRounds, moneyDetails, err := s.money.ListForRounds(ctx, db, ids)
	if err != nil {
		return viewResult{}, fmt.Errorf("failed to list money rounds: %w", err)
	}
	players, err := s.rounds.ListPlayers(ctx, db)
	if err != nil {
		return viewResult{}, fmt.Errorf("failed to list players: %w", err)
	}

	report := s.aggregator.Aggregate(r, reportdomain.History{
		Rounds:       rounds,
		Details:      details,
		MoneyRounds:  moneyRounds,
		MoneyDetails: moneyDetails,
	})

	view := &ReportView{Report: report, Rows: decorate(report.Results, players)}
	if s.metrics != nil {
		s.metrics.RecordReportGenerated(ctx, report.ParticipantCount, report.RoundCount)
	}
	return results.SuccessResult[*ReportView, error](view), nil
}

// decorate attaches roster names and orders rows by total points, highest first, then name.
func decorate(res []reportdomain.SearchResult, players []rounddomain.Player) []Row {
	names := make(map[rounddomain.PlayerID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	rows := make([]Row, len(res))
	for i, r := range res {
		name, ok := names[r.PlayerID]
		if !ok {
			name = fmt.Sprintf("#%d", r.PlayerID)
		}
		rows[i] = Row{Name: name, SearchResult: r}
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := b.TotalPoints().Cmp(a.TotalPoints()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return rows
}

// InvalidateCache drops every cached report; reason is the topic or caller that asked.
func (s *ReportService) InvalidateCache(ctx context.Context, reason string) {
	n := s.cache.clear()
	if s.metrics != nil {
		s.metrics.RecordCacheInvalidated(ctx, reason)
	}
	s.logger.DebugContext(ctx, "Report cache invalidated",
		attr.ExtractCorrelationID(ctx),
		attr.String("reason", reason),
		attr.Int("entries", n),
	)
}

func (s *ReportService) recordCacheLookup(ctx context.Context, hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(ctx, hit)
	}
}
