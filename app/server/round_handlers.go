package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
)

var errInvalidRoundID = errors.New("invalid round id")

func roundIDParam(r *http.Request) (rounddomain.RoundID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidRoundID
	}
	return rounddomain.RoundID(id), nil
}

// decode reads a JSON body into dst and runs its validation rules.
func decode[T validation.Validatable](w http.ResponseWriter, r *http.Request) (T, bool) {
	var dst T
	if err := json.NewDecoder(r.Body).Decode(&dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return dst, false
	}
	if err := dst.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: err})
		return dst, false
	}
	return dst, true
}

func (s *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.deps.Rounds.ListPlayers(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	type player struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	}
	out := make([]player, len(players))
	for i, p := range players {
		out[i] = player{ID: int64(p.ID), Name: p.Name, FullName: p.FullName}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.deps.Rounds.ListCourses(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	type course struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	out := make([]course, len(courses))
	for i, c := range courses {
		out[i] = course{ID: int64(c.ID), Name: c.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listRounds(w http.ResponseWriter, r *http.Request) {
	var start, end time.Time
	for _, p := range []struct {
		key string
		dst *time.Time
	}{{"from", &start}, {"to", &end}} {
		v := r.URL.Query().Get(p.key)
		if v == "" {
			continue
		}
		t, err := time.Parse(reportdomain.DateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be %s", p.key, reportdomain.DateLayout))
			return
		}
		*p.dst = t
	}

	rounds, err := s.deps.Rounds.ListRounds(r.Context(), start, end)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]RoundResponse, len(rounds))
	for i, round := range rounds {
		out[i] = newRoundSummary(round)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createRound(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[CreateRoundRequest](w, r)
	if !ok {
		return
	}
	view, err := s.deps.Rounds.CreateRound(r.Context(), req.toService())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newRoundResponse(view))
}

func (s *Server) getRound(w http.ResponseWriter, r *http.Request) {
	id, err := roundIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := s.deps.Rounds.GetRound(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRoundResponse(view))
}

func (s *Server) rescheduleRound(w http.ResponseWriter, r *http.Request) {
	id, err := roundIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, ok := decode[RescheduleRequest](w, r)
	if !ok {
		return
	}
	view, err := s.deps.Rounds.RescheduleRound(r.Context(), req.toService(id))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRoundResponse(view))
}

func (s *Server) recordScores(w http.ResponseWriter, r *http.Request) {
	id, err := roundIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, ok := decode[RecordScoresRequest](w, r)
	if !ok {
		return
	}
	res, err := s.deps.Rounds.RecordScores(r.Context(), id, req.toService())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Round: newRoundResponse(&res.View), Scored: res.Scored, Changed: res.Changed})
}

// importScorecard accepts a multipart upload in the "file" field.
func (s *Server) importScorecard(w http.ResponseWriter, r *http.Request) {
	id, err := roundIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("scorecard upload: %v", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("scorecard upload: %v", err))
		return
	}
	res, err := s.deps.Rounds.ImportScorecard(r.Context(), id, header.Filename, data)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Round: newRoundResponse(&res.View), Scored: res.Scored, Changed: res.Changed})
}
