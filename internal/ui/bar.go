package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renoua/potato/internal/pad"
)

// RenderBar renders the horizontal trigger bar with a centered watts label,
// the terminal equivalent of the OBS overlay window.
func RenderBar(width int, s pad.State) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	filled := int(s.Trigger * float64(inner))
	if filled > inner {
		filled = inner
	}
	bar := StyleBarFill.Render(strings.Repeat("█", filled)) +
		StyleBarEmpty.Render(strings.Repeat("░", inner-filled))

	label := StyleWatts.Render(fmt.Sprintf("%d W", s.Watts))
	content := lipgloss.JoinVertical(lipgloss.Center, bar, label)

	return StylePanelBorder.Width(inner + 2).Render(content)
}

// RenderButtons renders the held-button row beneath the bar.
func RenderButtons(mask pad.ButtonMask) string {
	order := []pad.Button{
		pad.DpadLeft, pad.DpadRight,
		pad.A, pad.B, pad.X, pad.Y,
		pad.LeftShoulder, pad.RightShoulder,
	}

	parts := make([]string, 0, len(order))
	for _, b := range order {
		label := "[" + b.String() + "]"
		if mask.Has(b) {
			parts = append(parts, StyleButtonHeld.Render(label))
		} else {
			parts = append(parts, StyleButtonIdle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
