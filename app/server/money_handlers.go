package server

import "net/http"

func (s *Server) getMoneyRound(w http.ResponseWriter, r *http.Request) {
	id, err := roundIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	settlement, err := s.deps.Money.GetMoneyRound(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSettlementResponse(settlement))
}

func (s *Server) settleMoneyRound(w http.ResponseWriter, r *http.Request) {
	id, err := roundIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, ok := decode[SettleRequest](w, r)
	if !ok {
		return
	}
	settlement, err := s.deps.Money.SettleMoneyRound(r.Context(), req.toService(id))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSettlementResponse(settlement))
}
