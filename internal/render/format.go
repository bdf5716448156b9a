// Package render formats usage summaries for display. Both the terminal
// dashboard and the plain streaming mode share these helpers so the numbers
// read the same everywhere.
package render

import (
	"fmt"
	"strconv"
	"time"
)

// CostPlaceholder marks rows whose model is missing from the price table.
const CostPlaceholder = "—"

// Comma formats an integer with thousands separators.
func Comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// Money formats a dollar amount with enough precision for sub-cent costs.
func Money(v float64) string {
	return fmt.Sprintf("$%.4f", v)
}

// Cost formats an optional per-row cost, showing the placeholder when no
// price is known.
func Cost(v *float64) string {
	if v == nil {
		return CostPlaceholder
	}
	return Money(*v)
}

// Timestamp formats a poll time for status lines.
func Timestamp(t time.Time) string {
	return t.Format("15:04:05")
}
