package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/p-reiter/usagewatch/internal/render"
	"github.com/p-reiter/usagewatch/internal/ui/styles"
)

// View renders the dashboard tab content.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	m.viewport.SetContent(m.renderContent())
	return m.viewport.View()
}

func (m *Model) renderContent() string {
	result := m.state.Result()
	if result == nil {
		return styles.HelpStyle.Render("\n  Waiting for first poll...")
	}

	var sections []string

	status := fmt.Sprintf("Window %s   •   polled %s",
		result.Window.RangeUTC(), render.Timestamp(result.At))
	sections = append(sections, styles.HelpStyle.Render(status))

	if result.Err != nil {
		sections = append(sections, styles.CardStyle.Render(
			styles.ErrorStyle.Render("Poll failed")+"\n\n"+result.Err.Error()+
				"\n\n"+styles.HelpStyle.Render("Retrying on the next interval."),
		))
	} else {
		sections = append(sections, styles.CardStyle.Render(m.renderTable()))
	}

	if alerts := m.state.AlertLog(); len(alerts) > 0 {
		var lines []string
		lines = append(lines, styles.CardTitleStyle.Render("Spike Alerts"))
		// Newest alerts first.
		for i := len(alerts) - 1; i >= 0; i-- {
			lines = append(lines, styles.WarningStyle.Render("!! ")+alerts[i].Message)
		}
		sections = append(sections, styles.CardStyle.Render(strings.Join(lines, "\n")))
	}

	if m.state.RestartNeeded() {
		sections = append(sections, styles.WarningStyle.Render("  Configuration changed on disk, restart to apply."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTable() string {
	result := m.state.Result()

	rows := render.SummaryCells(result.Summary)
	all := append([][]string{render.TableHeader}, rows...)

	widths := make([]int, len(render.TableHeader))
	for _, row := range all {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for ri, row := range all {
		line := formatRow(row, widths)
		switch {
		case ri == 0:
			line = styles.TableHeaderStyle.Render(line)
		case ri == len(all)-1:
			line = styles.TableTotalStyle.Render(line)
		}
		b.WriteString(line)
		if ri < len(all)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatRow(row []string, widths []int) string {
	var b strings.Builder
	for i, cell := range row {
		if i > 0 {
			b.WriteString("  ")
		}
		pad := widths[i] - lipgloss.Width(cell)
		if i == 0 {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", pad))
		} else {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		}
	}
	return b.String()
}
