package exporter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"clovercli/internal/report"
)

// reportSheet is the single worksheet name used in exported workbooks.
const reportSheet = "Report"

// ExportMonthWorkbook writes one month's report as an Excel workbook with the
// same layout as the CSV: header lines, column header, daily rows, TOTAL row.
// An empty filename derives the name from the default CSV name.
func (e *MonthlyExporter) ExportMonthWorkbook(m report.Month, rows []report.Row, filename string) (string, error) {
	if filename == "" {
		filename = workbookName(MonthFilename(m))
	}
	doc := e.monthDocument(m, rows)
	path, err := e.writeWorkbook(filename, doc)
	if err != nil {
		return "", fmt.Errorf("failed to export %s workbook: %w", m.Name(), err)
	}
	e.logger.Info("monthly workbook written",
		slog.String("month", m.Name()),
		slog.String("path", path))
	return path, nil
}

// ExportMultiMonthWorkbook writes the combined multi-month report as an Excel
// workbook.
func (e *MonthlyExporter) ExportMultiMonthWorkbook(months []report.Month, rows []report.Row, filename string) (string, error) {
	if filename == "" {
		filename = workbookName(CombinedFilename(months))
	}
	doc := e.combinedDocument(months, rows)
	path, err := e.writeWorkbook(filename, doc)
	if err != nil {
		return "", fmt.Errorf("failed to export combined workbook: %w", err)
	}
	e.logger.Info("combined workbook written",
		slog.Int("months", len(months)),
		slog.String("path", path))
	return path, nil
}

func (e *MonthlyExporter) writeWorkbook(filename string, doc document) (string, error) {
	fullPath := e.csvWriter.resolvePath(filename)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	rowIdx := 1
	for _, line := range doc.preamble {
		if err := setRow(f, rowIdx, []interface{}{line}); err != nil {
			return "", err
		}
		rowIdx++
	}

	header := make([]interface{}, len(columnHeaders))
	for i, h := range columnHeaders {
		header[i] = h
	}
	if err := setRow(f, rowIdx, header); err != nil {
		return "", err
	}
	rowIdx++

	for _, record := range doc.records {
		cells := make([]interface{}, len(record))
		for i, value := range record {
			cells[i] = value
		}
		if err := setRow(f, rowIdx, cells); err != nil {
			return "", err
		}
		rowIdx++
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}

func setRow(f *excelize.File, rowIdx int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", rowIdx, err)
	}
	if err := f.SetSheetRow(reportSheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowIdx, err)
	}
	return nil
}

// workbookName swaps a .csv default filename for its .xlsx counterpart.
func workbookName(csvName string) string {
	return strings.TrimSuffix(csvName, ".csv") + ".xlsx"
}
