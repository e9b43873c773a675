package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorGreen     = lipgloss.Color("#00CC33")
	ColorLimeGreen = lipgloss.Color("#00FF41")
	ColorMidGreen  = lipgloss.Color("#008F11")
	ColorDimGreen  = lipgloss.Color("#004A0A")
	ColorWarning   = lipgloss.Color("#FFAA00")
	ColorError     = lipgloss.Color("#FF3300")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorLimeGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorLimeGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStateLive = lipgloss.NewStyle().
			Foreground(ColorLimeGreen).
			Bold(true)

	StyleStateDown = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleBarFill = lipgloss.NewStyle().
			Foreground(ColorLimeGreen)

	StyleBarEmpty = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleWatts = lipgloss.NewStyle().
			Foreground(ColorLimeGreen).
			Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMidGreen)

	StyleButtonHeld = lipgloss.NewStyle().
			Foreground(ColorLimeGreen).
			Bold(true)

	StyleButtonIdle = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleErr = lipgloss.NewStyle().
			Foreground(ColorError)
)
