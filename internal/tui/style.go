package tui

import "github.com/charmbracelet/lipgloss"

// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray   = "#353b52"
	colorWhite  = "#ffffff"
	colorGreen  = "#acfab4"
	colorRed    = "#e61f44"
	colorPurple = "#b9a3eb"
	colorBlue   = "#89ddff"
	colorDim    = "#7a7f99"

	barWidth = 40
	barRune  = "█"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple)).Width(14)
	focusedLabelStyle = labelStyle.Foreground(lipgloss.Color(colorGreen)).Bold(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color(colorBlue))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(colorWhite))
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
)

// Title renders a section heading.
func Title(s string) string { return titleStyle.Render(s) }

// Muted renders informational text.
func Muted(s string) string { return footerStyle.Render(s) }
