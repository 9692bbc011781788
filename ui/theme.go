package ui

import "charm.land/lipgloss/v2"

// Rosé Pine Moon palette
// https://rosepinetheme.com/palette/
var (
	// Base tones
	ColorBase    = lipgloss.Color("#232136")
	ColorSurface = lipgloss.Color("#2a273f")
	ColorOverlay = lipgloss.Color("#393552")
	ColorMuted   = lipgloss.Color("#6e6a86")
	ColorSubtle  = lipgloss.Color("#908caa")
	ColorText    = lipgloss.Color("#e0def4")

	// Semantic colors
	ColorLove = lipgloss.Color("#eb6f92") // error, danger
	ColorGold = lipgloss.Color("#f6c177") // warning
	ColorRose = lipgloss.Color("#ea9a97") // accent, secondary
	ColorPine = lipgloss.Color("#3e8fb0") // link
	ColorFoam = lipgloss.Color("#9ccfd8") // info, open
	ColorIris = lipgloss.Color("#c4a7e7") // highlight, focus
)

// BaseHex is ColorBase as a hex string for OSC 11.
const BaseHex = "#232136"

var summaryStyle = lipgloss.NewStyle().
	Foreground(ColorText)

var summaryOpenStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Bold(true)

var summaryFocusStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Bold(true)

var summaryDisabledStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Strikethrough(true)

var caretStyle = lipgloss.NewStyle().
	Foreground(ColorRose)

var headerStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

var contentFocusStyle = lipgloss.NewStyle().
	Foreground(ColorGold)
