package analytics

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX builds a two-sheet workbook: the summary figures and the daily
// breakdown. Returns the file bytes and a suggested filename.
func (s *service) ExportXLSX(ctx context.Context, window Window) ([]byte, string, error) {
	summary, err := s.Summary(ctx, window)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName(f.GetSheetName(0), summarySheet)

	rows := [][]interface{}{
		{"Report window", string(summary.Window)},
		{"From", summary.From.Format("2006-01-02")},
		{"To", summary.To.Format("2006-01-02")},
		{},
		{"Total revenue", summary.Revenue},
		{"Total jobs", summary.TotalJobs},
		{"Completed jobs", summary.CompletedJobs},
		{"Pending jobs", summary.PendingJobs},
		{"Customers", summary.Customers},
		{},
		{"Jobs by status", ""},
	}
	for status, n := range summary.JobsByStatus {
		rows = append(rows, []interface{}{status, n})
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("write summary row: %w", err)
		}
	}

	const dailySheet = "Daily"
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, "", err
	}
	header := []interface{}{"Date", "Revenue", "Jobs"}
	if err := f.SetSheetRow(dailySheet, "A1", &header); err != nil {
		return nil, "", err
	}
	for i, b := range summary.Daily {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{b.Date, b.Revenue, b.JobCount}
		if err := f.SetSheetRow(dailySheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("write daily row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("encode workbook: %w", err)
	}
	name := fmt.Sprintf("report-%s-%s.xlsx", summary.Window, summary.To.Format("20060102"))
	return buf.Bytes(), name, nil
}
