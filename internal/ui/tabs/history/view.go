package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/p-reiter/usagewatch/internal/render"
	"github.com/p-reiter/usagewatch/internal/ui/components"
	"github.com/p-reiter/usagewatch/internal/ui/styles"
)

// View renders the history tab content.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	m.viewport.SetContent(m.renderContent())
	return m.viewport.View()
}

func (m *Model) renderContent() string {
	if m.loadErr != nil {
		return styles.ErrorStyle.Render(fmt.Sprintf("\n  Failed to load history: %v", m.loadErr))
	}
	if len(m.cycles) == 0 {
		return styles.HelpStyle.Render("\n  No cycles recorded yet.")
	}

	var sections []string

	sections = append(sections, styles.CardStyle.Render(m.renderChart()))
	sections = append(sections, styles.CardStyle.Render(m.renderRecent()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderChart() string {
	chartWidth := max(20, m.width-20)
	caption := fmt.Sprintf("%s per cycle (t to toggle)", m.metric)

	var chart string
	if m.metric == metricTokensVsRequests {
		tokens := make([]float64, 0, len(m.cycles))
		requests := make([]float64, 0, len(m.cycles))
		for _, c := range m.cycles {
			tokens = append(tokens, float64(c.TotalTokens))
			requests = append(requests, float64(c.Requests))
		}
		chart = components.RenderDualLineChart(tokens, requests, chartWidth, 10, caption)
	} else {
		data := make([]float64, 0, len(m.cycles))
		for _, c := range m.cycles {
			switch m.metric {
			case metricCost:
				data = append(data, c.Cost)
			case metricRequests:
				data = append(data, float64(c.Requests))
			default:
				data = append(data, float64(c.TotalTokens))
			}
		}
		chart = components.RenderLineChart(data, chartWidth, 10, caption)
	}

	return styles.CardTitleStyle.Render("Session History") + "\n" + chart
}

func (m *Model) renderRecent() string {
	var lines []string
	lines = append(lines, styles.CardTitleStyle.Render("Recent Cycles"))

	start := max(0, len(m.cycles)-10)
	for i := len(m.cycles) - 1; i >= start; i-- {
		c := m.cycles[i]
		if c.Err != "" {
			lines = append(lines, fmt.Sprintf("%s  %s",
				c.At.Format("15:04:05"),
				styles.ErrorStyle.Render("failed: "+c.Err)))
			continue
		}

		line := fmt.Sprintf("%s  %s tokens  %s requests  %s",
			c.At.Format("15:04:05"),
			render.Comma(c.TotalTokens),
			render.Comma(c.Requests),
			render.Money(c.Cost))
		if c.AlertCount > 0 {
			line += "  " + styles.WarningStyle.Render(fmt.Sprintf("(%d alerts)", c.AlertCount))
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
