package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/renoua/potato/internal/config"
)

// RenderMenuBar renders the top menu bar with the connection state.
func RenderMenuBar(width int, connState string, live bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	state := ""
	if live {
		state = StyleStateLive.Render(connState)
	} else {
		state = StyleStateDown.Render(connState)
	}

	left := StyleMenuKey.Render(title) +
		"  " + StyleMenuKey.Render("[Q]") + StyleMenuLabel.Render("uit")
	right := state + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleMenuBar.Width(width).Render(left + padding + right)
}
