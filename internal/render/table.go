package render

import (
	"strings"
	"unicode/utf8"

	"github.com/p-reiter/usagewatch/internal/models"
)

// TableHeader is the column order for usage tables.
var TableHeader = []string{"MODEL", "INPUT", "OUTPUT", "CACHED", "REQUESTS", "TOTAL", "EST COST"}

// SummaryCells converts a summary into table cells: one row per model plus
// a trailing TOTAL row. The header is not included.
func SummaryCells(s models.Summary) [][]string {
	cells := make([][]string, 0, len(s.Rows)+1)
	for _, row := range s.Rows {
		cells = append(cells, []string{
			row.Model,
			Comma(row.InputTokens),
			Comma(row.OutputTokens),
			Comma(row.CachedTokens),
			Comma(row.Requests),
			Comma(row.TotalTokens()),
			Cost(row.Cost),
		})
	}
	cells = append(cells, []string{
		"TOTAL",
		Comma(s.Totals.Input),
		Comma(s.Totals.Output),
		Comma(s.Totals.CachedInput),
		Comma(s.Totals.Requests),
		Comma(s.Totals.TotalTokens()),
		Money(s.Totals.Cost),
	})
	return cells
}

// PlainTable renders the summary as an aligned text table. The first column
// is left-aligned, numeric columns right-aligned.
func PlainTable(s models.Summary) string {
	rows := append([][]string{TableHeader}, SummaryCells(s)...)

	widths := make([]int, len(TableHeader))
	for _, row := range rows {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for ri, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			pad := widths[i] - utf8.RuneCountInString(cell)
			if i == 0 {
				b.WriteString(cell)
				b.WriteString(strings.Repeat(" ", pad))
			} else {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			}
		}
		b.WriteString("\n")
		if ri == 0 {
			for i, w := range widths {
				if i > 0 {
					b.WriteString("  ")
				}
				b.WriteString(strings.Repeat("-", w))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
