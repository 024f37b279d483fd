package metrics

import (
	"context"
	"time"
)

// NoOpMetrics discards everything. Used in tests and when metrics are disabled.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordRoundScored(context.Context, int, bool)                          {}
func (NoOpMetrics) RecordScorecardImported(context.Context, string, int)                  {}
func (NoOpMetrics) RecordSettlement(context.Context, string, int64)                       {}
func (NoOpMetrics) RecordSettlementRejected(context.Context, string)                      {}
func (NoOpMetrics) RecordReportGenerated(context.Context, int, int)                       {}
func (NoOpMetrics) RecordCacheLookup(context.Context, bool)                               {}
func (NoOpMetrics) RecordCacheInvalidated(context.Context, string)                        {}

var (
	_ RoundMetrics  = (*PrometheusMetrics)(nil)
	_ MoneyMetrics  = (*PrometheusMetrics)(nil)
	_ ReportMetrics = (*PrometheusMetrics)(nil)
	_ RoundMetrics  = NoOpMetrics{}
	_ MoneyMetrics  = NoOpMetrics{}
	_ ReportMetrics = NoOpMetrics{}
)
