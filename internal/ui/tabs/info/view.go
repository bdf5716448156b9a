package info

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/p-reiter/usagewatch/internal/render"
	"github.com/p-reiter/usagewatch/internal/ui/styles"
	"github.com/p-reiter/usagewatch/internal/version"
)

// View renders the info tab content.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, styles.CardStyle.Render(m.renderConfig()))
	sections = append(sections, styles.CardStyle.Render(m.renderSession()))
	sections = append(sections, styles.HelpStyle.Render("  "+version.Info()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderConfig() string {
	rows := [][2]string{
		{"Tracked key", m.config.MaskedKeyID()},
		{"Service tier", m.config.Tier},
		{"Lookback", fmt.Sprintf("%dh", m.config.LookbackHours)},
		{"Bucket width", m.config.BucketWidth},
		{"Poll interval", m.config.PollInterval.String()},
		{"Token threshold", fmt.Sprintf("%s tokens/min", render.Comma(int64(m.config.TokenRateThreshold)))},
		{"Request threshold", fmt.Sprintf("%s requests/min", render.Comma(int64(m.config.RequestRateThreshold)))},
	}
	if m.config.EnvPath != "" {
		rows = append(rows, [2]string{"Env file", m.config.EnvPath})
	}

	var lines []string
	lines = append(lines, styles.CardTitleStyle.Render("Configuration"))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%-18s %s", row[0], row[1]))
	}

	if m.state.RestartNeeded() {
		lines = append(lines, "")
		lines = append(lines, styles.WarningStyle.Render("Env file changed on disk, restart to apply."))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderSession() string {
	var lines []string
	lines = append(lines, styles.CardTitleStyle.Render("Session"))

	lines = append(lines, fmt.Sprintf("%-18s %d", "Cycles", m.state.CycleCount()))
	lines = append(lines, fmt.Sprintf("%-18s %d", "Failed cycles", m.state.FailCount()))

	if last := m.state.LastUpdated(); !last.IsZero() {
		lines = append(lines, fmt.Sprintf("%-18s %s", "Last poll", render.Timestamp(last)))
	} else {
		lines = append(lines, fmt.Sprintf("%-18s %s", "Last poll", "never"))
	}

	return strings.Join(lines, "\n")
}
