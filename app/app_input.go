package app

import (
	"slices"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/keys"
	"github.com/kastheco/fold/ui"
	zone "github.com/lrstanley/bubblezone/v2"
)

const wheelLines = 3

func (m *home) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}
	if nav, ok := keys.Navigation(name); ok {
		return m, m.navigate(nav)
	}

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case keys.KeyToggle:
		if p := m.focusedPanel(); p != nil && !p.Disabled() {
			p.Toggle()
		}
	case keys.KeyTab:
		if p := m.focusedPanel(); p != nil && p.Open() {
			m.contentFocus = !m.contentFocus
			m.ScrollIntoView(p.Content())
		}
	case keys.KeyPageUp:
		m.viewport.ScrollUp(m.viewport.Height())
	case keys.KeyPageDown:
		m.viewport.ScrollDown(m.viewport.Height())
	case keys.KeyCopy:
		return m, m.copyFocused()
	case keys.KeyJump:
		n, _ := strconv.Atoi(msg.String())
		return m, m.jump(n - 1)
	case keys.KeyMode:
		return m, m.cycleMode()
	case keys.KeyDisable:
		m.acc.SetDisabled(!m.acc.Disabled())
	case keys.KeyExpandAll:
		m.acc.Show(accordion.All)
	case keys.KeyCollapseAll:
		m.acc.Hide(accordion.All)
	}
	return m, m.settle()
}

// navigate hands a roving key to the accordion. Keys pressed while content
// has focus are left alone by the accordion and scroll the viewport.
func (m *home) navigate(key string) tea.Cmd {
	origin := m.acc.Document().ActiveElement()
	if p := m.focusedPanel(); m.contentFocus && p != nil {
		origin = p.Content()
	}
	ev := &accordion.KeyEvent{Key: key, Origin: origin}
	if err := m.acc.HandleKey(ev); err != nil {
		return m.handleError(err)
	}
	if ev.Consumed() {
		if p := m.focusedPanel(); p != nil {
			m.ScrollIntoView(p.Summary())
		}
		return m.settle()
	}
	if m.contentFocus {
		switch key {
		case accordion.KeyArrowUp:
			m.viewport.ScrollUp(1)
		case accordion.KeyArrowDown:
			m.viewport.ScrollDown(1)
		case accordion.KeyHome:
			if p := m.focusedPanel(); p != nil {
				if row, ok := m.pane.Offset(p.Content()); ok {
					m.viewport.SetYOffset(row)
				}
			}
		case accordion.KeyEnd:
			m.viewport.GotoBottom()
		}
	}
	return nil
}

// jump scrolls to the panel at index, announcing the scroll so plugins can
// react to where it lands.
func (m *home) jump(index int) tea.Cmd {
	p := m.acc.Panel(index)
	if p == nil {
		return nil
	}
	before := accordion.NewEvent(accordion.EventScrollBefore, p, false)
	before.Element = p.Host()
	m.acc.Dispatch(before)

	m.contentFocus = false
	_ = m.acc.Focus(index)
	m.scrollTarget = nil
	m.refresh()
	if row, ok := m.pane.Offset(p.Host()); ok {
		m.viewport.SetYOffset(row)
	}

	after := accordion.NewEvent(accordion.EventScrollAfter, p, false)
	after.Element = p.Host()
	m.acc.Dispatch(after)
	return m.settle()
}

func (m *home) cycleMode() tea.Cmd {
	modes := m.acc.AvailableModes()
	if len(modes) == 0 {
		return nil
	}
	next := modes[(slices.Index(modes, m.acc.Mode())+1)%len(modes)]
	if err := m.acc.SetMode(next); err != nil {
		return m.handleError(err)
	}
	return tea.Batch(m.setMessage("mode: "+next), m.settle())
}

// copyFocused puts the focused panel's plain content on the clipboard.
func (m *home) copyFocused() tea.Cmd {
	p := m.focusedPanel()
	if p == nil {
		return nil
	}
	text := strings.TrimSpace(ansi.Strip(p.Content().Text()))
	if err := m.copy(text); err != nil {
		return m.handleError(err)
	}
	cmd := m.setMessage("copied " + p.Title())
	m.refresh()
	return cmd
}

func (m *home) handleMouse(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	if m.zones {
		if z := zone.Get(ui.ZoneStatusMode); z != nil && z.InBounds(msg) {
			return m, m.cycleMode()
		}
		if z := zone.Get(ui.ZoneHelp); z != nil && z.InBounds(msg) {
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		}
		for i := range m.acc.Len() {
			if z := zone.Get(ui.SummaryZoneID(i)); z != nil && z.InBounds(msg) {
				return m, m.clickPanel(i)
			}
		}
		return m, nil
	}
	// Without zones, map the row under the pointer back to a panel. Row 0
	// is the status bar.
	row := mouse.Y - 1 + m.viewport.YOffset()
	if mouse.Y < 1 || mouse.Y > m.viewport.Height() {
		return m, nil
	}
	i := m.pane.PanelAtRow(row)
	if p := m.acc.Panel(i); p != nil {
		if off, ok := m.pane.Offset(p.Summary()); ok && off == row {
			return m, m.clickPanel(i)
		}
	}
	return m, nil
}

// clickPanel focuses the panel and toggles it unless it is disabled.
func (m *home) clickPanel(i int) tea.Cmd {
	p := m.acc.Panel(i)
	m.contentFocus = false
	p.Focus()
	if !p.Disabled() {
		p.Toggle()
	}
	return m.settle()
}

func (m *home) handleWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		m.viewport.ScrollUp(wheelLines)
	case tea.MouseWheelDown:
		m.viewport.ScrollDown(wheelLines)
	}
	return m, nil
}
