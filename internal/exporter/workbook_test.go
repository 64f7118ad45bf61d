package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"clovercli/internal/report"
)

func TestMonthlyExporter_ExportMonthWorkbook(t *testing.T) {
	tempDir := t.TempDir()
	exp := NewMonthlyExporter(tempDir, "Belle Nails and Spa", nil)
	m := report.Month{Year: 2025, Month: time.June}

	path, err := exp.ExportMonthWorkbook(m, sampleRows(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "clover_monthly_data_2025_06.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)

	// 2 preamble + header + 30 days + TOTAL.
	require.Len(t, rows, 34)
	assert.Equal(t, "Belle Nails and Spa", rows[0][0])
	assert.Equal(t, "Sales for the month of June 2025", rows[1][0])
	assert.Equal(t, []string{"date", "debit", "tip", "total"}, rows[2])
	assert.Equal(t, []string{"2025-06-01", "85.00", "15.00", "100.00"}, rows[3])
	assert.Equal(t, []string{"TOTAL", "160.00", "20.00", "180.00"}, rows[33])
}

func TestMonthlyExporter_ExportMultiMonthWorkbook(t *testing.T) {
	tempDir := t.TempDir()
	exp := NewMonthlyExporter(tempDir, "Org", nil)

	months := []report.Month{
		{Year: 2025, Month: time.November},
		{Year: 2025, Month: time.December},
	}
	combined := append(
		report.MonthRows(nil, months[0]),
		report.MonthRows(nil, months[1])...)

	path, err := exp.ExportMultiMonthWorkbook(months, combined, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "clover_combined_months_2025_11_2025_12.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)

	// 2 preamble + header + 30 + 31 days + GRAND TOTAL.
	require.Len(t, rows, 65)
	assert.Equal(t, "Sales for the months of November 2025, December 2025", rows[1][0])
	assert.Equal(t, "GRAND TOTAL", rows[64][0])
}
