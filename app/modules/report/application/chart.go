package reportservice

import (
	"context"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartBackground = drawing.ColorFromHex("f7f5ef")
	chartBar        = drawing.ColorFromHex("2f6b3f")
	chartText       = drawing.ColorFromHex("1d1d1b")
)

// RenderPointsChart writes a PNG bar chart of total points per player, in report order.
// An empty report renders a placeholder.
func (s *ReportService) RenderPointsChart(ctx context.Context, view *ReportView, w io.Writer) error {
	_, span := s.startSpan(ctx, "RenderPointsChart")
	defer span.End()

	if view == nil || len(view.Rows) == 0 {
		return renderNoDataPlaceholder(w)
	}

	bars := make([]chart.Value, len(view.Rows))
	for i, row := range view.Rows {
		bars[i] = chart.Value{
			Label: row.Name,
			Value: row.TotalPoints().Float64(),
			Style: chart.Style{FillColor: chartBar, StrokeColor: chartBar},
		}
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Points %s", view.Report.Range),
		TitleStyle: chart.Style{FontColor: chartText},
		Width:      max(640, 80*len(bars)),
		Height:     480,
		BarWidth:   50,
		Background: chart.Style{
			FillColor: chartBackground,
			Padding:   chart.Box{Top: 50},
		},
		Canvas: chart.Style{FillColor: chartBackground},
		XAxis:  chart.Style{FontColor: chartText},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render points chart: %w", err)
	}
	return nil
}

func renderNoDataPlaceholder(w io.Writer) error {
	const msg = "No rounds in this range"

	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(chartText)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
