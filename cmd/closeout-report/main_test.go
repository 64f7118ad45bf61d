package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clovercli/internal/clover"
	"clovercli/internal/exporter"
	"clovercli/internal/report"
)

// fixedSource serves one canned batch list regardless of month.
type fixedSource struct {
	batches []clover.Batch
}

func (s *fixedSource) MonthBatches(ctx context.Context, year int, month time.Month) []clover.Batch {
	return s.batches
}

func TestExportSingleMonth_WritesReport(t *testing.T) {
	tempDir := t.TempDir()
	m := report.Month{Year: 2025, Month: time.June}

	source := &fixedSource{batches: []clover.Batch{{
		ID:          "b1",
		CreatedTime: time.Date(2025, time.June, 5, 14, 0, 0, 0, time.Local).UnixMilli(),
		BatchDetails: &clover.BatchDetails{BatchTotals: &clover.BatchTotals{
			Sales: &clover.AmountTotal{Count: 4, Total: 12000},
			Tips:  &clover.AmountTotal{Count: 1, Total: 2000},
		}},
	}}}

	gen := report.NewGenerator(source, slog.Default())
	exp := exporter.NewMonthlyExporter(tempDir, "Test Org", slog.Default())

	exportSingleMonth(context.Background(), gen, exp, m, "", false)

	data, err := os.ReadFile(filepath.Join(tempDir, "clover_monthly_data_2025_06.csv"))
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "Test Org\n"))
	assert.Contains(t, content, "2025-06-05,100.00,20.00,120.00")
	assert.Contains(t, content, "TOTAL,100.00,20.00,120.00")
}

func TestExportMultipleMonths_WritesIndividualAndCombined(t *testing.T) {
	tempDir := t.TempDir()
	months := []report.Month{
		{Year: 2025, Month: time.April},
		{Year: 2025, Month: time.May},
	}

	gen := report.NewGenerator(&fixedSource{}, slog.Default())
	exp := exporter.NewMonthlyExporter(tempDir, "Test Org", slog.Default())

	exportMultipleMonths(context.Background(), gen, exp, months, "", false)

	assert.FileExists(t, filepath.Join(tempDir, "clover_monthly_data_2025_04.csv"))
	assert.FileExists(t, filepath.Join(tempDir, "clover_monthly_data_2025_05.csv"))

	combined := filepath.Join(tempDir, "clover_combined_months_2025_04_2025_05.csv")
	require.FileExists(t, combined)

	data, err := os.ReadFile(combined)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	// 2 preamble + header + 30 + 31 days + GRAND TOTAL.
	assert.Len(t, lines, 65)
	assert.Contains(t, lines[len(lines)-1], "GRAND TOTAL")
}
