// Package observability wires logging, tracing and metrics for every entry point.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/metrics"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Provider holds the handles every module receives.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

// Observability is the initialised stack. Registry is nil when metrics are disabled.
type Observability struct {
	Provider Provider
	Registry *prometheus.Registry
	Metrics  *metrics.PrometheusMetrics

	logFile       io.Closer
	metricsServer *http.Server
}

// Init builds the logger from cfg and, outside of tests, the prometheus registry.
// A metrics listener is started when MetricsAddress is set.
func Init(ctx context.Context, cfg config.ObservabilityConfig) (*Observability, error) {
	obs := &Observability{}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		}
		out = rotating
		obs.logFile = rotating
	}

	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := NewLogger(out, cfg.LogFormat, level).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
	obs.Provider = Provider{
		Logger:         logger,
		TracerProvider: otel.GetTracerProvider(),
	}

	if cfg.Environment == "test" {
		return obs, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	obs.Registry = reg
	obs.Metrics = metrics.NewPrometheusMetrics(reg, "frolf")

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", obs.MetricsHandler())
		obs.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.InfoContext(ctx, "Metrics server listening", slog.String("address", cfg.MetricsAddress))
			if err := obs.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorContext(ctx, "Metrics server stopped", slog.Any("error", err))
			}
		}()
	}

	return obs, nil
}

// NewNoop returns a stack that discards logs and records nothing. Used by tests.
func NewNoop() *Observability {
	return &Observability{
		Provider: Provider{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			TracerProvider: noop.NewTracerProvider(),
		},
	}
}

// Logger returns the root logger.
func (o *Observability) Logger() *slog.Logger {
	return o.Provider.Logger
}

// Tracer returns a named tracer from the provider.
func (o *Observability) Tracer(name string) trace.Tracer {
	return o.Provider.TracerProvider.Tracer(name)
}

// RoundMetrics returns the prometheus sink, or a no-op one when metrics are disabled.
func (o *Observability) RoundMetrics() metrics.RoundMetrics {
	if o.Metrics == nil {
		return metrics.NoOpMetrics{}
	}
	return o.Metrics
}

func (o *Observability) MoneyMetrics() metrics.MoneyMetrics {
	if o.Metrics == nil {
		return metrics.NoOpMetrics{}
	}
	return o.Metrics
}

func (o *Observability) ReportMetrics() metrics.ReportMetrics {
	if o.Metrics == nil {
		return metrics.NoOpMetrics{}
	}
	return o.Metrics
}

// MetricsHandler serves the registry, or 404 when metrics are disabled.
func (o *Observability) MetricsHandler() http.Handler {
	if o.Registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{})
}

// Shutdown stops the metrics listener and closes the log file.
func (o *Observability) Shutdown(ctx context.Context) error {
	var errs []error
	if o.metricsServer != nil {
		if err := o.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
	}
	if o.logFile != nil {
		if err := o.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("log file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewLogger builds a slog logger writing json or text to w.
func NewLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
