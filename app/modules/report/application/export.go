package reportservice

import (
	"context"
	"fmt"
	"io"

	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability/attr"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

// reportColumns mirrors the printed league report.
var reportColumns = []string{
	"Name", "Rounds", "TtlPts", "PPR", "Aces", "Eagles", "Ace-Eagles",
	"9-s", "18-s", "33-s", "Best F9", "Best B9", "$ Won",
}

// houseRowName labels the summary row holding the house fund.
const houseRowName = "Mz Kitty"

// ExportXLSX writes the report as a workbook with one row per player and a
// closing row for the house fund.
func (s *ReportService) ExportXLSX(ctx context.Context, view *ReportView, w io.Writer) error {
	_, span := s.startSpan(ctx, "ExportXLSX")
	defer span.End()

	if view == nil {
		return ErrEmptyReport
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WarnContext(ctx, "Failed to close workbook", attr.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), reportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(reportColumns))
	for i, c := range reportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range view.Rows {
		values := []any{
			row.Name,
			row.Rounds,
			row.TotalPoints().Decimal(2).InexactFloat64(),
			row.PointsPerRound().Decimal(2).InexactFloat64(),
			row.Aces,
			row.Eagles,
			row.AceEagles,
			row.Won9,
			row.Won18,
			row.Won33,
			optionalInt(row.BestFront),
			optionalInt(row.BestBack),
			row.MoneyWon.Decimal().InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Name, err)
		}
	}

	houseRow := len(view.Rows) + 2
	nameCell, _ := excelize.CoordinatesToCellName(1, houseRow)
	moneyCell, _ := excelize.CoordinatesToCellName(len(reportColumns), houseRow)
	if err := f.SetCellValue(reportSheet, nameCell, houseRowName); err != nil {
		return err
	}
	if err := f.SetCellValue(reportSheet, moneyCell, view.Report.HouseFund.Decimal().InexactFloat64()); err != nil {
		return err
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 8})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}
	firstMoney, _ := excelize.CoordinatesToCellName(len(reportColumns), 2)
	if err := f.SetCellStyle(reportSheet, firstMoney, moneyCell, moneyStyle); err != nil {
		return fmt.Errorf("failed to style money column: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// optionalInt leaves the cell blank when there is no value.
func optionalInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
