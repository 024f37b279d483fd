package server

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	moneyservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/application"
	moneydomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/domain"
	reportservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/application"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Fields any    `json:"fields,omitempty"`
}

var (
	notFoundErrors = []error{
		roundservice.ErrRoundNotFound,
		moneyservice.ErrRoundNotFound,
		moneyservice.ErrMoneyRoundNotFound,
	}
	conflictErrors = []error{
		roundservice.ErrDuplicateRoundDate,
		roundservice.ErrRoundSettled,
	}
	badRequestErrors = []error{
		reportdomain.ErrInvalidRange,
		reportdomain.ErrUnknownRange,
		reportdomain.ErrUnparsableDate,
	}
	unprocessableErrors = []error{
		roundservice.ErrUnknownCourse,
		roundservice.ErrUnknownPlayer,
		roundservice.ErrEmptyRoster,
		roundservice.ErrDuplicatePlayer,
		roundservice.ErrPlayerNotInRound,
		roundservice.ErrNoScores,
		roundservice.ErrInvalidScore,
		roundservice.ErrInvalidScorecard,
		rounddomain.ErrMissingScore,
		moneyservice.ErrNotRoundParticipant,
		moneyservice.ErrNoParticipants,
		moneydomain.ErrOutcomeOutOfRange,
		moneydomain.ErrDependentStage,
		moneydomain.ErrUnplayedStageWinnings,
		moneydomain.ErrHouseStageWinnings,
		moneydomain.ErrMultipleClaimants,
		moneydomain.ErrNegativeWinnings,
		moneydomain.ErrDuplicateParticipant,
		moneydomain.ErrRoundMismatch,
		reportservice.ErrEmptyReport,
	}
)

// statusFor maps service errors to HTTP status codes. Anything unrecognised is an
// infrastructure failure.
func statusFor(err error) int {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, unprocessableErrors):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
