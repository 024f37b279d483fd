// Package metrics defines the metric sinks used by the application services.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ServiceMetrics is recorded by every service operation wrapper.
type ServiceMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// RoundMetrics adds scoring outcomes.
type RoundMetrics interface {
	ServiceMetrics
	RecordRoundScored(ctx context.Context, participants int, changed bool)
	RecordScorecardImported(ctx context.Context, format string, players int)
}

// MoneyMetrics adds settlement outcomes.
type MoneyMetrics interface {
	ServiceMetrics
	RecordSettlement(ctx context.Context, state string, houseCents int64)
	RecordSettlementRejected(ctx context.Context, reason string)
}

// ReportMetrics adds report generation and cache behaviour.
type ReportMetrics interface {
	ServiceMetrics
	RecordReportGenerated(ctx context.Context, participants, rounds int)
	RecordCacheLookup(ctx context.Context, hit bool)
	RecordCacheInvalidated(ctx context.Context, topic string)
}

// PrometheusMetrics implements every metrics interface in this package.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec

	roundsScored      *prometheus.CounterVec
	roundParticipants prometheus.Histogram
	imports           *prometheus.CounterVec

	settlements         *prometheus.CounterVec
	houseCents          prometheus.Counter
	settlementsRejected *prometheus.CounterVec

	reports      prometheus.Counter
	cacheLookups *prometheus.CounterVec
	invalidated  *prometheus.CounterVec
}

// NewPrometheusMetrics registers the collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	f := promauto.With(reg)
	opLabels := []string{"service", "operation"}

	return &PrometheusMetrics{
		attempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_attempts_total", Help: "Service operations started.",
		}, opLabels),
		successes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_success_total", Help: "Service operations that completed without an infrastructure error.",
		}, opLabels),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operation_failures_total", Help: "Service operations that returned an error or panicked.",
		}, opLabels),
		durations: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "operation_duration_seconds", Help: "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, opLabels),
		roundsScored: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "rounds_scored_total", Help: "Rounds recalculated, by whether points changed.",
		}, []string{"changed"}),
		roundParticipants: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "round_participants", Help: "Participants per scored round.",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
		}),
		imports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "scorecard_imports_total", Help: "Scorecards imported by file format.",
		}, []string{"format"}),
		settlements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "money_rounds_settled_total", Help: "Money rounds stored, by final state.",
		}, []string{"state"}),
		houseCents: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "house_fund_cents_total", Help: "Cents accrued to the house fund.",
		}),
		settlementsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "money_rounds_rejected_total", Help: "Money rounds rejected by validation.",
		}, []string{"reason"}),
		reports: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "reports_generated_total", Help: "Reports aggregated from the store.",
		}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "report_cache_lookups_total", Help: "Report cache lookups by result.",
		}, []string{"result"}),
		invalidated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "report_cache_invalidations_total", Help: "Report cache invalidations by triggering topic.",
		}, []string{"topic"}),
	}
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(service, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRoundScored(_ context.Context, participants int, changed bool) {
	label := "false"
	if changed {
		label = "true"
	}
	m.roundsScored.WithLabelValues(label).Inc()
	m.roundParticipants.Observe(float64(participants))
}

func (m *PrometheusMetrics) RecordScorecardImported(_ context.Context, format string, _ int) {
	m.imports.WithLabelValues(format).Inc()
}

func (m *PrometheusMetrics) RecordSettlement(_ context.Context, state string, houseCents int64) {
	m.settlements.WithLabelValues(state).Inc()
	if houseCents > 0 {
		m.houseCents.Add(float64(houseCents))
	}
}

func (m *PrometheusMetrics) RecordSettlementRejected(_ context.Context, reason string) {
	m.settlementsRejected.WithLabelValues(reason).Inc()
}

func (m *PrometheusMetrics) RecordReportGenerated(_ context.Context, _, _ int) {
	m.reports.Inc()
}

func (m *PrometheusMetrics) RecordCacheLookup(_ context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *PrometheusMetrics) RecordCacheInvalidated(_ context.Context, topic string) {
	m.invalidated.WithLabelValues(topic).Inc()
}
