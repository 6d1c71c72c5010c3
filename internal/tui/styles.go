package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/subcover/internal/settings"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(18).
			Align(lipgloss.Right).
			PaddingRight(2)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)

	contentStyle = lipgloss.NewStyle().Padding(1, 2)
)

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// renderSwatch draws a block in the overlay color.
func renderSwatch(c settings.Color, width int) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.String())).
		Render(strings.Repeat(" ", width))
}

// renderGauge draws v/maxV as a bar of the given width.
func renderGauge(v, maxV float64, width int) string {
	filled := 0
	if maxV > 0 {
		filled = int(v / maxV * float64(width))
	}
	filled = max(0, min(filled, width))
	return lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
}

func renderStatusBar(connected bool, width int) string {
	var status string
	if connected {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		status = dot + " daemon connected"
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " daemon not running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render("subcover  " + status)
}

func renderHelpBar(editing bool, width int) string {
	help := "←/→: opacity  ↑/↓: corner radius  e: edit  s: save  r: refresh  q: quit"
	if editing {
		help = "tab: next field  enter: submit  esc: cancel"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
