// Package server exposes the round, money and report services over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	moneyservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/application"
	reportservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/application"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"golang.org/x/time/rate"
)

// maxUploadBytes caps scorecard uploads.
const maxUploadBytes = 5 << 20

// Deps are the services the API serves. Metrics may be nil.
type Deps struct {
	Rounds  roundservice.Service
	Money   moneyservice.Service
	Reports reportservice.Service
	Metrics http.Handler
}

type Server struct {
	cfg    config.HTTPConfig
	deps   Deps
	logger *slog.Logger
	router chi.Router
}

func New(cfg config.HTTPConfig, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, deps: deps, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler with every route and middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(CorrelationMiddleware)
	r.Use(RequestLogger(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RateLimit > 0 {
			r.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(s.cfg.RateLimit), max(s.cfg.RateBurst, 1))))
		}

		r.Get("/players", s.listPlayers)
		r.Get("/courses", s.listCourses)

		r.Route("/rounds", func(r chi.Router) {
			r.Get("/", s.listRounds)
			r.Post("/", s.createRound)
			r.Route("/{roundID}", func(r chi.Router) {
				r.Get("/", s.getRound)
				r.Put("/", s.rescheduleRound)
				r.Put("/scores", s.recordScores)
				r.Post("/scorecard", s.importScorecard)
				r.Get("/money", s.getMoneyRound)
				r.Put("/money", s.settleMoneyRound)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", s.getReport)
			r.Get("/chart.png", s.getReportChart)
			r.Get("/export.xlsx", s.exportReport)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "HTTP server listening", attr.String("address", s.cfg.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	s.logger.InfoContext(ctx, "Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// fail writes err with the status statusFor picks. Infrastructure errors are
// logged and hidden from the caller.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "Request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
