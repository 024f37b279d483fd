package server

import (
	"bytes"
	"fmt"
	"net/http"

	reportservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/application"
)

// loadReport resolves ?range= or ?from=&to= and generates the report.
func (s *Server) loadReport(w http.ResponseWriter, r *http.Request) (*reportservice.ReportView, bool) {
	q := r.URL.Query()
	window, err := s.deps.Reports.ResolveRange(reportservice.RangeSpec{
		Name: q.Get("range"),
		From: q.Get("from"),
		To:   q.Get("to"),
	})
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	view, err := s.deps.Reports.GenerateReport(r.Context(), window)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return view, true
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	view, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newReportResponse(view))
}

func (s *Server) getReportChart(w http.ResponseWriter, r *http.Request) {
	view, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := s.deps.Reports.RenderPointsChart(r.Context(), view, &buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	view, ok := s.loadReport(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := s.deps.Reports.ExportXLSX(r.Context(), view, &buf); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="frolf-%s.xlsx"`, view.Report.Range.String()))
	_, _ = w.Write(buf.Bytes())
}
