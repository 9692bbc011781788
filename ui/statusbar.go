package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	zone "github.com/lrstanley/bubblezone/v2"
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	Document string
	Mode     string
	Open     int
	Total    int
	Disabled bool
	Watching bool
	Message  string // transient feedback, e.g. "copied"
}

// StatusBar is the top status bar component.
type StatusBar struct {
	width int
	zones bool
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar(zones bool) *StatusBar {
	return &StatusBar{zones: zones}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

var statusBarStyle = lipgloss.NewStyle().
	Background(ColorSurface).
	Foreground(ColorText).
	Padding(0, 1)

var statusBarAppNameStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Background(ColorSurface).
	Bold(true)

var statusBarSepStyle = lipgloss.NewStyle().
	Foreground(ColorOverlay).
	Background(ColorSurface)

var statusBarModeStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Background(ColorSurface)

var statusBarTextStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Background(ColorSurface)

var statusBarMutedStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	Background(ColorSurface)

var statusBarWarnStyle = lipgloss.NewStyle().
	Foreground(ColorGold).
	Background(ColorSurface)

const statusBarSep = " │ "

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}

	parts := make([]string, 0, 6)
	parts = append(parts, statusBarAppNameStyle.Render("fold"))

	if s.data.Document != "" {
		parts = append(parts, statusBarTextStyle.Render(s.data.Document))
	}

	if s.data.Mode != "" {
		mode := statusBarModeStyle.Render(s.data.Mode)
		if s.zones {
			mode = zone.Mark(ZoneStatusMode, mode)
		}
		parts = append(parts, mode)
	}

	parts = append(parts, statusBarMutedStyle.Render(fmt.Sprintf("%d/%d open", s.data.Open, s.data.Total)))

	if s.data.Disabled {
		parts = append(parts, statusBarWarnStyle.Render("disabled"))
	}
	if s.data.Watching {
		parts = append(parts, statusBarMutedStyle.Render("watching"))
	}
	if s.data.Message != "" {
		parts = append(parts, statusBarWarnStyle.Render(s.data.Message))
	}

	sep := statusBarSepStyle.Render(statusBarSep)
	content := strings.Join(parts, sep)

	return statusBarStyle.Width(s.width).Render(content)
}
