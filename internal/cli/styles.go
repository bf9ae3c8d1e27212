package cli

import (
	"github.com/charmbracelet/lipgloss"

	"devhost/internal/installer"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	statusStyles = map[installer.Status]lipgloss.Style{
		installer.StatusInstalled: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		installer.StatusSkipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		installer.StatusFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func statusStyle(status installer.Status) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
