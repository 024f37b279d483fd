package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	moneyservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/application"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/gonzoleeman/disc-golf-scoring-app/pkg/money"
)

var errBadSpec = errors.New("malformed argument")

// parseScore reads PLAYER:FRONT:BACK[:ACES[:EAGLES[:ACE_EAGLES]]], e.g. "1:-2:-1:0:1".
func parseScore(spec string) (roundservice.ScoreEntry, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) < 3 || len(parts) > 6 {
		return roundservice.ScoreEntry{}, fmt.Errorf("%w: score %q, want PLAYER:FRONT:BACK[:ACES[:EAGLES[:ACE_EAGLES]]]", errBadSpec, spec)
	}
	nums := make([]int, 6)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return roundservice.ScoreEntry{}, fmt.Errorf("%w: score %q: %q is not a number", errBadSpec, spec, p)
		}
		nums[i] = n
	}
	return roundservice.ScoreEntry{
		PlayerID:  rounddomain.PlayerID(nums[0]),
		Front:     nums[1],
		Back:      nums[2],
		Aces:      nums[3],
		Eagles:    nums[4],
		AceEagles: nums[5],
	}, nil
}

// parseWinnings reads PLAYER[:STAGE1[:STAGE2[:STAGE3]]] with dollar amounts,
// e.g. "4:3.00" or "2::1.50". A bare PLAYER took part and won nothing.
func parseWinnings(spec string) (moneyservice.PlayerWinnings, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) > 1+moneydomain.StageCount {
		return moneyservice.PlayerWinnings{}, fmt.Errorf("%w: winnings %q, want PLAYER[:STAGE1[:STAGE2[:STAGE3]]]", errBadSpec, spec)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || id <= 0 {
		return moneyservice.PlayerWinnings{}, fmt.Errorf("%w: winnings %q: bad player id", errBadSpec, spec)
	}
	w := moneyservice.PlayerWinnings{PlayerID: rounddomain.PlayerID(id)}
	for i, p := range parts[1:] {
		amount, err := money.Parse(p)
		if err != nil {
			return moneyservice.PlayerWinnings{}, fmt.Errorf("winnings %q stage %d: %w", spec, i+1, err)
		}
		w.Stages[i] = amount
	}
	return w, nil
}

// parseStages reads up to three stage codes; missing stages were not played.
func parseStages(codes []int) ([moneydomain.StageCount]int, error) {
	var out [moneydomain.StageCount]int
	if len(codes) > moneydomain.StageCount {
		return out, fmt.Errorf("%w: at most %d stages, got %d", errBadSpec, moneydomain.StageCount, len(codes))
	}
	copy(out[:], codes)
	return out, nil
}

// parseRoundID reads the positional round id.
func parseRoundID(arg string) (rounddomain.RoundID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: round id %q", errBadSpec, arg)
	}
	return rounddomain.RoundID(id), nil
}
