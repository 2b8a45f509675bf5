package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"marquee/internal/pipeline"
)

const rankingSheet = "Ranking"

var rankingHeaders = []interface{}{
	"Rank", "Show", "Total Performances", "Total Gross", "US$ Gross", "US$ Gross ($K)", "US$ Gross ($M)",
}

// WriteRanking writes a ranking table as an XLSX workbook. A note, when
// present, is placed two rows below the table.
func WriteRanking(w io.Writer, rows []pipeline.RankingRow, note string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), rankingSheet); err != nil {
		return fmt.Errorf("failed to name ranking sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(rankingSheet, "A1", &rankingHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	if err := f.SetRowStyle(rankingSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.Rank, row.Show, row.TotalPerformances, row.TotalGross, row.Gross, row.GrossK, row.GrossM,
		}
		if err := f.SetSheetRow(rankingSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write ranking row %d: %w", i+1, err)
		}
	}

	if note != "" {
		cell, _ := excelize.CoordinatesToCellName(1, len(rows)+3)
		if err := f.SetCellStr(rankingSheet, cell, note); err != nil {
			return fmt.Errorf("failed to write note: %w", err)
		}
	}

	if err := f.SetColWidth(rankingSheet, "B", "B", 40); err != nil {
		return fmt.Errorf("failed to size show column: %w", err)
	}
	if err := f.SetColWidth(rankingSheet, "C", "G", 20); err != nil {
		return fmt.Errorf("failed to size value columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
