package roundservice

import (
	"context"
	"fmt"
	"strings"

	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/parsers"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/results"
	"github.com/uptrace/bun"
)

// ImportScorecard parses a CSV or XLSX scorecard and records it for the round. Names
// are matched case-insensitively against the roster's short and full names; players
// on the card who are not yet participants join the round.
func (s *RoundService) ImportScorecard(ctx context.Context, roundID rounddomain.RoundID, fileName string, data []byte) (*ScoreResult, error) {
	res, err := unwrap(withTelemetry(s, ctx, "ImportScorecard", fileName, func(ctx context.Context) (scoreResult, error) {
		parser, err := s.parsers.GetParser(fileName)
		if err != nil {
			return results.FailureResult[*ScoreResult, error](err), nil
		}
		card, err := parser.Parse(data, fileName)
		if err != nil {
			return results.FailureResult[*ScoreResult, error](fmt.Errorf("%w: %w", ErrInvalidScorecard, err)), nil
		}

		importTx := func(ctx context.Context, db bun.IDB) (scoreResult, error) {
			return s.importScorecardLogic(ctx, db, roundID, card)
		}
		result, err := runInTx(s, ctx, importTx)
		if err == nil && result.IsSuccess() && s.metrics != nil {
			s.metrics.RecordScorecardImported(ctx, parsers.FormatOf(fileName), len(card.PlayerScores))
		}
		return result, err
	}))
	if err != nil {
		return nil, err
	}
	s.announceScored(ctx, res)
	return res, nil
}

func (s *RoundService) importScorecardLogic(ctx context.Context, db bun.IDB, roundID rounddomain.RoundID, card *parsers.ParsedScorecard) (scoreResult, error) {
	roster, err := s.repo.ListPlayers(ctx, db)
	if err != nil {
		return scoreResult{}, fmt.Errorf("failed to list players: %w", err)
	}

	byName := make(map[string]rounddomain.PlayerID, 2*len(roster))
	for _, p := range roster {
		if p.FullName != "" {
			byName[nameKey(p.FullName)] = p.ID
		}
	}
	// Short names win over full names when both match.
	for _, p := range roster {
		byName[nameKey(p.Name)] = p.ID
	}

	var unknown []string
	entries := make([]ScoreEntry, 0, len(card.PlayerScores))
	for _, ps := range card.PlayerScores {
		id, ok := byName[nameKey(ps.PlayerName)]
		if !ok {
			unknown = append(unknown, ps.PlayerName)
			continue
		}
		entries = append(entries, ScoreEntry{
			PlayerID:  id,
			Front:     ps.Front,
			Back:      ps.Back,
			Aces:      ps.Aces,
			Eagles:    ps.Eagles,
			AceEagles: ps.AceEagles,
		})
	}
	if len(unknown) > 0 {
		return results.FailureResult[*ScoreResult, error](&UnknownPlayersError{Names: unknown}), nil
	}

	return s.recordScoresLogic(ctx, db, roundID, entries, true)
}

func nameKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
