package clover

import "time"

// Batch represents a single settlement (closeout) record as returned by the
// merchant API. The nested detail levels are optional in the API response, so
// they are pointer-typed: an absent level decodes to nil and is read as zero.
type Batch struct {
	ID           string        `json:"id"`
	CreatedTime  int64         `json:"createdTime"` // epoch milliseconds
	State        string        `json:"state,omitempty"`
	BatchDetails *BatchDetails `json:"batchDetails,omitempty"`
}

// BatchDetails wraps the per-batch totals block.
type BatchDetails struct {
	BatchTotals *BatchTotals `json:"batchTotals,omitempty"`
}

// BatchTotals carries the aggregated card totals for one batch.
type BatchTotals struct {
	Sales *AmountTotal `json:"sales,omitempty"`
	Tips  *AmountTotal `json:"tips,omitempty"`
}

// AmountTotal is a transaction count plus a total in minor currency units
// (cents). Divide Total by 100 for display units.
type AmountTotal struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
}

// CreatedAt returns the batch creation time in the local time zone.
// The zero CreatedTime maps to the Unix epoch.
func (b Batch) CreatedAt() time.Time {
	return time.UnixMilli(b.CreatedTime)
}

// SalesTotal returns the batch sales total in minor currency units, zero when
// any nesting level is absent.
func (b Batch) SalesTotal() int64 {
	if b.BatchDetails == nil || b.BatchDetails.BatchTotals == nil || b.BatchDetails.BatchTotals.Sales == nil {
		return 0
	}
	return b.BatchDetails.BatchTotals.Sales.Total
}

// TipTotal returns the batch tip total in minor currency units. Tips are only
// counted when the tip transaction count is positive; a zero count means the
// total is a placeholder and is ignored.
func (b Batch) TipTotal() int64 {
	if b.BatchDetails == nil || b.BatchDetails.BatchTotals == nil || b.BatchDetails.BatchTotals.Tips == nil {
		return 0
	}
	tips := b.BatchDetails.BatchTotals.Tips
	if tips.Count <= 0 {
		return 0
	}
	return tips.Total
}

// batchList is the envelope the API wraps collection responses in.
type batchList struct {
	Elements []Batch `json:"elements"`
}
