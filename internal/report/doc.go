// Package report aggregates merchant settlement batches into daily rows.
//
// Summarize is the single place batch amounts are interpreted: minor currency
// units divided by 100, tips gated on a positive tip count, debit as the
// remainder. MonthRows buckets summaries by local calendar day and always
// produces one row per day of the month, zero-filled, ascending.
package report
