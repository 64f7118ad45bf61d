package report

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clovercli/internal/clover"
)

const amountTolerance = 0.005

// batchAt builds a batch created at noon local time with the given totals in
// minor currency units. tipCount gates whether the tip total counts.
func batchAt(year int, month time.Month, day int, sales, tips int64, tipCount int) clover.Batch {
	return clover.Batch{
		ID:          fmt.Sprintf("b-%04d%02d%02d-%d", year, month, day, sales),
		CreatedTime: time.Date(year, month, day, 12, 0, 0, 0, time.Local).UnixMilli(),
		BatchDetails: &clover.BatchDetails{BatchTotals: &clover.BatchTotals{
			Sales: &clover.AmountTotal{Count: 1, Total: sales},
			Tips:  &clover.AmountTotal{Count: tipCount, Total: tips},
		}},
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		batch     clover.Batch
		wantDate  string
		wantDebit float64
		wantTip   float64
		wantTotal float64
	}{
		{
			name:      "sales and counted tips",
			batch:     batchAt(2025, time.June, 15, 10000, 1500, 3),
			wantDate:  "2025-06-15",
			wantDebit: 85.00,
			wantTip:   15.00,
			wantTotal: 100.00,
		},
		{
			name:      "tips with zero count are excluded",
			batch:     batchAt(2025, time.June, 15, 10000, 1500, 0),
			wantDate:  "2025-06-15",
			wantDebit: 100.00,
			wantTip:   0,
			wantTotal: 100.00,
		},
		{
			name:      "no batch details yields zero amounts",
			batch:     clover.Batch{ID: "bare", CreatedTime: time.Date(2025, time.June, 2, 9, 0, 0, 0, time.Local).UnixMilli()},
			wantDate:  "2025-06-02",
			wantDebit: 0,
			wantTip:   0,
			wantTotal: 0,
		},
		{
			name:      "missing created time",
			batch:     clover.Batch{ID: "no-time"},
			wantDate:  "Unknown",
			wantDebit: 0,
			wantTip:   0,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Summarize(tt.batch)
			assert.Equal(t, tt.wantDate, row.Date)
			assert.InDelta(t, tt.wantDebit, row.Debit, amountTolerance)
			assert.InDelta(t, tt.wantTip, row.Tip, amountTolerance)
			assert.InDelta(t, tt.wantTotal, row.Total, amountTolerance)
		})
	}
}

func TestMonthRows_CoversEveryDay(t *testing.T) {
	tests := []struct {
		name     string
		month    Month
		wantDays int
	}{
		{name: "june", month: Month{2025, time.June}, wantDays: 30},
		{name: "july", month: Month{2025, time.July}, wantDays: 31},
		{name: "february", month: Month{2025, time.February}, wantDays: 28},
		{name: "leap february", month: Month{2024, time.February}, wantDays: 29},
		{name: "december", month: Month{2025, time.December}, wantDays: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := MonthRows(nil, tt.month)
			require.Len(t, rows, tt.wantDays)

			for i, row := range rows {
				wantDate := fmt.Sprintf("%04d-%02d-%02d", tt.month.Year, int(tt.month.Month), i+1)
				assert.Equal(t, wantDate, row.Date)
				assert.Zero(t, row.Debit)
				assert.Zero(t, row.Tip)
				assert.Zero(t, row.Total)
			}
		})
	}
}

func TestMonthRows_SumsSameDay(t *testing.T) {
	// Batch A 50.00 with 5.00 tip, batch B 30.00 with no tip, same day.
	batches := []clover.Batch{
		batchAt(2025, time.June, 15, 5000, 500, 1),
		batchAt(2025, time.June, 15, 3000, 0, 0),
	}

	rows := MonthRows(batches, Month{2025, time.June})
	require.Len(t, rows, 30)

	day := rows[14]
	assert.Equal(t, "2025-06-15", day.Date)
	assert.InDelta(t, 80.00, day.Total, amountTolerance)
	assert.InDelta(t, 5.00, day.Tip, amountTolerance)
	assert.InDelta(t, 75.00, day.Debit, amountTolerance)

	// Every other day stays zero.
	for i, row := range rows {
		if i == 14 {
			continue
		}
		assert.Zero(t, row.Total, "day %s", row.Date)
	}
}

func TestTotals_MatchColumnSums(t *testing.T) {
	batches := []clover.Batch{
		batchAt(2025, time.June, 1, 10000, 1500, 2),
		batchAt(2025, time.June, 10, 2599, 0, 0),
		batchAt(2025, time.June, 30, 77777, 333, 1),
	}
	rows := MonthRows(batches, Month{2025, time.June})

	var wantDebit, wantTip, wantTotal float64
	for _, row := range rows {
		wantDebit += row.Debit
		wantTip += row.Tip
		wantTotal += row.Total
	}

	debit, tip, total := Totals(rows)
	assert.InDelta(t, wantDebit, debit, amountTolerance)
	assert.InDelta(t, wantTip, tip, amountTolerance)
	assert.InDelta(t, wantTotal, total, amountTolerance)
	assert.InDelta(t, (10000+2599+77777)/100.0, total, amountTolerance)
}

// stubSource feeds canned batches to a Generator.
type stubSource struct {
	batches map[time.Month][]clover.Batch
}

func (s *stubSource) MonthBatches(ctx context.Context, year int, month time.Month) []clover.Batch {
	return s.batches[month]
}

func TestGenerator_MonthRows(t *testing.T) {
	source := &stubSource{batches: map[time.Month][]clover.Batch{
		time.June: {batchAt(2025, time.June, 3, 12345, 600, 1)},
	}}
	gen := NewGenerator(source, slog.Default())

	rows := gen.MonthRows(context.Background(), Month{2025, time.June})
	require.Len(t, rows, 30)
	assert.InDelta(t, 123.45, rows[2].Total, amountTolerance)
	assert.InDelta(t, 6.00, rows[2].Tip, amountTolerance)

	// A month the source knows nothing about still fills out its days.
	rows = gen.MonthRows(context.Background(), Month{2025, time.May})
	require.Len(t, rows, 31)
	_, _, total := Totals(rows)
	assert.Zero(t, total)
}
