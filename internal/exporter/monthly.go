package exporter

import (
	"fmt"
	"log/slog"
	"strings"

	"clovercli/internal/report"
)

// columnHeaders is the CSV column header row shared by all report layouts.
var columnHeaders = []string{"date", "debit", "tip", "total"}

// MonthlyExporter writes monthly and combined closeout reports.
type MonthlyExporter struct {
	csvWriter    *CSVWriter
	organization string
	logger       *slog.Logger
}

// NewMonthlyExporter creates an exporter writing into outDir. organization is
// the free-text first header line of every report.
func NewMonthlyExporter(outDir, organization string, logger *slog.Logger) *MonthlyExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonthlyExporter{
		csvWriter:    NewCSVWriter(outDir),
		organization: organization,
		logger:       logger,
	}
}

// MonthFilename returns the default report filename for one month,
// e.g. "clover_monthly_data_2025_06.csv".
func MonthFilename(m report.Month) string {
	return fmt.Sprintf("clover_monthly_data_%s.csv", m.Key())
}

// CombinedFilename returns the default filename for a multi-month report,
// e.g. "clover_combined_months_2025_01_2025_02.csv".
func CombinedFilename(months []report.Month) string {
	keys := make([]string, len(months))
	for i, m := range months {
		keys[i] = m.Key()
	}
	return fmt.Sprintf("clover_combined_months_%s.csv", strings.Join(keys, "_"))
}

// ExportMonth writes one month's report and returns the file path. An empty
// filename selects the default name.
func (e *MonthlyExporter) ExportMonth(m report.Month, rows []report.Row, filename string) (string, error) {
	if filename == "" {
		filename = MonthFilename(m)
	}

	doc := e.monthDocument(m, rows)
	path, err := e.csvWriter.WriteCSV(filename, WriteOptions{
		Preamble: doc.preamble,
		Headers:  columnHeaders,
		Records:  doc.records,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", m.Name(), err)
	}

	e.logger.Info("monthly report written",
		slog.String("month", m.Name()),
		slog.String("path", path))
	return path, nil
}

// ExportMultiMonth writes one combined report covering all given months, rows
// concatenated in input order with a single grand-total row. An empty
// filename selects the default combined name.
func (e *MonthlyExporter) ExportMultiMonth(months []report.Month, rows []report.Row, filename string) (string, error) {
	if filename == "" {
		filename = CombinedFilename(months)
	}

	doc := e.combinedDocument(months, rows)
	path, err := e.csvWriter.WriteCSV(filename, WriteOptions{
		Preamble: doc.preamble,
		Headers:  columnHeaders,
		Records:  doc.records,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export combined report: %w", err)
	}

	e.logger.Info("combined report written",
		slog.Int("months", len(months)),
		slog.String("path", path))
	return path, nil
}

// document is a fully rendered report, ready for CSV or workbook output.
type document struct {
	preamble []string
	records  [][]string
}

func (e *MonthlyExporter) monthDocument(m report.Month, rows []report.Row) document {
	return document{
		preamble: []string{
			e.organization,
			fmt.Sprintf("Sales for the month of %s", m.Name()),
		},
		records: renderRows(rows, "TOTAL"),
	}
}

func (e *MonthlyExporter) combinedDocument(months []report.Month, rows []report.Row) document {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.Name()
	}
	return document{
		preamble: []string{
			e.organization,
			fmt.Sprintf("Sales for the months of %s", strings.Join(names, ", ")),
		},
		records: renderRows(rows, "GRAND TOTAL"),
	}
}

// renderRows formats daily rows plus the trailing totals row.
func renderRows(rows []report.Row, totalsLabel string) [][]string {
	records := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		records = append(records, []string{
			row.Date,
			formatAmount(row.Debit),
			formatAmount(row.Tip),
			formatAmount(row.Total),
		})
	}
	debit, tip, total := report.Totals(rows)
	records = append(records, []string{
		totalsLabel,
		formatAmount(debit),
		formatAmount(tip),
		formatAmount(total),
	})
	return records
}
