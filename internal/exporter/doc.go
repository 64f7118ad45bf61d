// Package exporter renders daily report rows into files.
//
// Two components:
//
// CSVWriter: core CSV writing rooted at an output directory, with support for
// free-text preamble lines ahead of the CSV body.
//
// MonthlyExporter: layout of the monthly and combined closeout reports
// (organization line, period line, date/debit/tip/total columns, trailing
// totals row), written as CSV and optionally as an Excel workbook.
//
// Example usage:
//
//	exp := exporter.NewMonthlyExporter(".", "Belle Nails and Spa", logger)
//	path, err := exp.ExportMonth(report.Month{Year: 2025, Month: time.June}, rows, "")
package exporter
