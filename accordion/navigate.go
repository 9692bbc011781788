package accordion

import "github.com/kastheco/fold/markup"

// Navigation keys. Every other key is ignored.
const (
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
	KeyHome      = "Home"
	KeyEnd       = "End"
)

// KeyEvent is a key press observed inside the container. Origin is the
// element that had focus when the key was pressed.
type KeyEvent struct {
	Key    string
	Origin *markup.Element

	consumed bool
}

// Consume stops further handling of the key.
func (e *KeyEvent) Consume() { e.consumed = true }

func (e *KeyEvent) Consumed() bool { return e.consumed }

// HandleKey moves focus between panel summaries. The origin must be a
// panel host or lie inside one outside its content region; keys pressed
// inside content are left alone. A keyDownSelectFrom observer returning a
// number overrides the destination. Disabled panels are skipped and the
// search wraps once. The only error is an override pointing at a panel that
// does not exist.
func (a *Accordion) HandleKey(ev *KeyEvent) error {
	switch ev.Key {
	case KeyArrowUp, KeyArrowDown, KeyHome, KeyEnd:
	default:
		return nil
	}
	index := a.PanelAt(ev.Origin)
	if index < 0 {
		return nil
	}

	dest, ok := a.hooks.FirstInt(HookKeyDownSelectFrom, ev, index)
	if !ok {
		dest, ok = a.destination(ev.Key, index)
	}
	if !ok {
		return nil
	}
	if err := a.Focus(dest); err != nil {
		return err
	}
	ev.Consume()
	return nil
}

func (a *Accordion) destination(key string, index int) (int, bool) {
	last := len(a.panels) - 1
	switch key {
	case KeyArrowUp:
		if i, ok := a.firstActiveFrom(index-1, -1); ok {
			return i, true
		}
		return a.firstActiveFrom(last, -1)
	case KeyArrowDown:
		if i, ok := a.firstActiveFrom(index+1, 1); ok {
			return i, true
		}
		return a.firstActiveFrom(0, 1)
	case KeyHome:
		return a.firstActiveFrom(0, 1)
	case KeyEnd:
		return a.firstActiveFrom(last, -1)
	}
	return 0, false
}

// firstActiveFrom scans from where (inclusive) in direction dir for the
// first panel that is not disabled.
func (a *Accordion) firstActiveFrom(where, dir int) (int, bool) {
	for i := where; i >= 0 && i < len(a.panels); i += dir {
		if !a.panels[i].Disabled() {
			return i, true
		}
	}
	return 0, false
}
