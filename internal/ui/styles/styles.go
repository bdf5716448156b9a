// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the usagewatch theme.
var (
	Primary   = lipgloss.Color("63")  // Purple
	Secondary = lipgloss.Color("39")  // Blue
	Subtle    = lipgloss.Color("240") // Gray

	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// TableHeaderStyle styles usage table header rows.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextSecondary)

// TableTotalStyle styles the usage table TOTAL row.
var TableTotalStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// HelpStyle styles secondary help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// ErrorStyle styles error text.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// WarningStyle styles spike alert text.
var WarningStyle = lipgloss.NewStyle().
	Foreground(Warning).
	Bold(true)

// SuccessStyle styles healthy status text.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(Success)
