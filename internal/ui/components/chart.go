// Package components provides reusable UI components for the TUI.
package components

import (
	"github.com/guptarohit/asciigraph"

	"github.com/p-reiter/usagewatch/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderDualLineChart plots two series on one chart, padding the shorter
// series with zeros.
func RenderDualLineChart(a, b []float64, width, height int, caption string) string {
	if len(a) == 0 && len(b) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	maxLen := max(len(a), len(b))
	aData := make([]float64, maxLen)
	bData := make([]float64, maxLen)
	copy(aData, a)
	copy(bData, b)

	return asciigraph.PlotMany([][]float64{aData, bData},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Blue,
			asciigraph.Red,
		),
	)
}
