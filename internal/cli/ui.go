package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	previewStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2)

	previewTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		MarginBottom(1)
)

// RenderPreview frames the report for terminal display. The delivered
// message stays plain text; styling applies to local preview only.
func RenderPreview(report string) string {
	return previewTitleStyle.Render("📋 Report preview (not delivered)") +
		"\n" + previewStyle.Render(report)
}
