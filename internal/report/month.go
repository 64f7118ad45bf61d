package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month identifies one calendar month of one year.
type Month struct {
	Year  int
	Month time.Month
}

// Name returns the display name, e.g. "June 2025".
func (m Month) Name() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

// Key returns the filename-safe form, e.g. "2025_06".
func (m Month) Key() string {
	return fmt.Sprintf("%04d_%02d", m.Year, int(m.Month))
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	// Day 0 of the following month normalizes to this month's last day.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseMonths parses the CLI month selector: a single month number or a
// comma-separated list, each 1-12, all applied to the same year. The returned
// months preserve input order.
func ParseMonths(year int, selector string) ([]Month, error) {
	parts := strings.Split(selector, ",")
	months := make([]Month, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: use a single month (e.g. 6) or a comma-separated list (e.g. 1,2,3)", part)
		}
		if n < 1 || n > 12 {
			return nil, fmt.Errorf("month %d must be between 1 and 12", n)
		}
		months = append(months, Month{Year: year, Month: time.Month(n)})
	}
	return months, nil
}

// PreviousMonth returns the calendar month before the given time, the CLI
// default reporting period.
func PreviousMonth(now time.Time) Month {
	year, month := now.Year(), now.Month()
	if month == time.January {
		return Month{Year: year - 1, Month: time.December}
	}
	return Month{Year: year, Month: month - 1}
}
