package exporter

import "fmt"

// formatAmount formats a currency amount with exactly 2 decimal places, so
// 13.4 renders as 13.40.
func formatAmount(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
