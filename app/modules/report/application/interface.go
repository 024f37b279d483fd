package reportservice

import (
	"context"
	"io"

	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
)

// Service defines the reporting operations.
type Service interface {
	ResolveRange(spec RangeSpec) (reportdomain.DateRange, error)
	GenerateReport(ctx context.Context, r reportdomain.DateRange) (*ReportView, error)
	RenderPointsChart(ctx context.Context, view *ReportView, w io.Writer) error
	ExportXLSX(ctx context.Context, view *ReportView, w io.Writer) error
	InvalidateCache(ctx context.Context, reason string)
}

// RangeSpec selects a report window: either a named range or free-form From/To dates.
// An empty From starts at the beginning of time; an empty To ends today.
type RangeSpec struct {
	Name string
	From string
	To   string
}

// Row is a SearchResult decorated with the player's roster name.
type Row struct {
	Name string
	reportdomain.SearchResult
}

// ReportView is a report ready for display: rows sorted by total points, then name.
type ReportView struct {
	Report reportdomain.Report
	Rows   []Row
}

var _ Service = (*ReportService)(nil)
