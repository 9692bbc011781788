package keys

import (
	"charm.land/bubbles/v2/key"
	"github.com/kastheco/fold/accordion"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyHome
	KeyEnd
	KeyToggle
	KeyTab    // Tab moves focus between a summary and its content.
	KeyPageUp // Scrolls the viewport while content has focus.
	KeyPageDown
	KeyCopy // Copies the focused panel's plain content.
	KeyJump // Digits 1-9 scroll to a panel.
	KeyMode // Cycles through the available modes.
	KeyDisable
	KeyExpandAll
	KeyCollapseAll
	KeyHelp
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"home":   KeyHome,
	"g":      KeyHome,
	"end":    KeyEnd,
	"G":      KeyEnd,
	"enter":  KeyToggle,
	"space":  KeyToggle,
	"tab":    KeyTab,
	"pgup":   KeyPageUp,
	"pgdown": KeyPageDown,
	"y":      KeyCopy,
	"1":      KeyJump,
	"2":      KeyJump,
	"3":      KeyJump,
	"4":      KeyJump,
	"5":      KeyJump,
	"6":      KeyJump,
	"7":      KeyJump,
	"8":      KeyJump,
	"9":      KeyJump,
	"m":      KeyMode,
	"d":      KeyDisable,
	"E":      KeyExpandAll,
	"C":      KeyCollapseAll,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next"),
	),
	KeyHome: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "first"),
	),
	KeyEnd: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "last"),
	),
	KeyToggle: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("↵/space", "toggle"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "content"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	KeyJump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "jump"),
	),
	KeyMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mode"),
	),
	KeyDisable: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "disable"),
	),
	KeyExpandAll: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "expand all"),
	),
	KeyCollapseAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "collapse all"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Navigation maps a roving key to the accordion key it stands for.
func Navigation(name KeyName) (string, bool) {
	switch name {
	case KeyUp:
		return accordion.KeyArrowUp, true
	case KeyDown:
		return accordion.KeyArrowDown, true
	case KeyHome:
		return accordion.KeyHome, true
	case KeyEnd:
		return accordion.KeyEnd, true
	}
	return "", false
}

// HelpMap adapts the global bindings to the help bubble.
type HelpMap struct{}

func (HelpMap) ShortHelp() []key.Binding {
	return bindings(KeyUp, KeyDown, KeyToggle, KeyMode, KeyHelp, KeyQuit)
}

func (HelpMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		bindings(KeyUp, KeyDown, KeyHome, KeyEnd),
		bindings(KeyToggle, KeyTab, KeyPageUp, KeyPageDown),
		bindings(KeyJump, KeyExpandAll, KeyCollapseAll, KeyCopy),
		bindings(KeyMode, KeyDisable, KeyHelp, KeyQuit),
	}
}

func bindings(names ...KeyName) []key.Binding {
	out := make([]key.Binding, len(names))
	for i, n := range names {
		out[i] = GlobalkeyBindings[n]
	}
	return out
}
