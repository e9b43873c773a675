package ui

import "github.com/charmbracelet/lipgloss"

// RenderStatusBar renders the bottom status line: the live watts/trigger
// readout plus any session error.
func RenderStatusBar(width int, line string, errText string) string {
	content := StyleStatusBar.Foreground(ColorGreen).Render(line)
	if errText != "" {
		content += "  " + StyleErr.Render(errText)
	}

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleStatusBar.Width(width).Render(content + padding)
}
