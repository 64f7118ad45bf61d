package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clovercli/internal/clover"
)

// dateLayout is the calendar-day key format used for grouping and output.
const dateLayout = "2006-01-02"

// Row is one day's (or one batch's) worth of settled amounts in display
// currency units. Total is the gross sales amount, Tip the portion paid as
// tips, and Debit the remainder.
type Row struct {
	Date  string
	Debit float64
	Tip   float64
	Total float64
}

// Summarize reduces one batch to its settled amounts. Minor currency units
// are converted to display units, absent detail levels read as zero, and tips
// only count when the batch recorded at least one tip transaction.
func Summarize(batch clover.Batch) Row {
	date := "Unknown"
	if batch.CreatedTime != 0 {
		date = batch.CreatedAt().Format(dateLayout)
	}

	total := float64(batch.SalesTotal()) / 100
	tip := float64(batch.TipTotal()) / 100

	return Row{
		Date:  date,
		Debit: total - tip,
		Tip:   tip,
		Total: total,
	}
}

// MonthRows aggregates batch summaries into exactly one row per calendar day
// of the month, ascending, with zero-valued rows for days without activity.
func MonthRows(batches []clover.Batch, m Month) []Row {
	byDate := make(map[string]Row, len(batches))
	for _, batch := range batches {
		summary := Summarize(batch)
		day := byDate[summary.Date]
		day.Date = summary.Date
		day.Debit += summary.Debit
		day.Tip += summary.Tip
		day.Total += summary.Total
		byDate[summary.Date] = day
	}

	rows := make([]Row, 0, m.Days())
	for day := 1; day <= m.Days(); day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
		if row, ok := byDate[date]; ok {
			rows = append(rows, row)
		} else {
			rows = append(rows, Row{Date: date})
		}
	}
	return rows
}

// Totals returns the column-wise sums of the given rows.
func Totals(rows []Row) (debit, tip, total float64) {
	for _, row := range rows {
		debit += row.Debit
		tip += row.Tip
		total += row.Total
	}
	return debit, tip, total
}

// BatchSource supplies the batches for one calendar month. *clover.Client
// satisfies it.
type BatchSource interface {
	MonthBatches(ctx context.Context, year int, month time.Month) []clover.Batch
}

// Generator turns a batch source into per-day report rows.
type Generator struct {
	source BatchSource
	logger *slog.Logger
}

// NewGenerator creates a generator reading from the given source.
func NewGenerator(source BatchSource, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{source: source, logger: logger}
}

// MonthRows fetches one month's batches and aggregates them by calendar day.
// The fetch degrades to an empty month on failure (see clover.Client), so the
// result always has exactly m.Days() rows.
func (g *Generator) MonthRows(ctx context.Context, m Month) []Row {
	batches := g.source.MonthBatches(ctx, m.Year, m.Month)
	rows := MonthRows(batches, m)

	debit, tip, total := Totals(rows)
	g.logger.Info("built month rows",
		slog.String("month", m.Name()),
		slog.Int("batches", len(batches)),
		slog.Int("days", len(rows)),
		slog.Float64("debit", debit),
		slog.Float64("tip", tip),
		slog.Float64("total", total))

	return rows
}
