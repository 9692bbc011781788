// Package plugins holds the optional behaviours an accordion can be built
// with: exclusive toggle mode, viewport position holding and scroll focus.
package plugins

import "github.com/kastheco/fold/accordion"

const (
	ToggleName = "togglemode"
	ModeToggle = "toggle"
)

// Toggle keeps at most one panel open while the container is in toggle mode.
type Toggle struct {
	a *accordion.Accordion
}

func NewToggle() *Toggle { return &Toggle{} }

func (t *Toggle) Name() string { return ToggleName }

func (t *Toggle) Defaults() accordion.Settings {
	return accordion.Settings{
		"mode":                   ModeToggle,
		"availableModes":         []string{accordion.ModeFree, ModeToggle},
		"closeAllButFirstOnInit": true,
	}
}

func (t *Toggle) Attach(a *accordion.Accordion) {
	t.a = a
	a.Registry().On(ToggleName, accordion.EventChildrenInitialized, t.childrenInitialized)
	a.Registry().On(ToggleName, accordion.EventPanelShow, t.panelShow)
}

// childrenInitialized closes every panel after the first open one.
func (t *Toggle) childrenInitialized(*accordion.Event) {
	if !t.a.Settings().Bool("closeAllButFirstOnInit") {
		return
	}
	hasOpen := false
	t.a.Each(func(p *accordion.Panel) bool {
		if hasOpen {
			p.Hide(accordion.Instant())
		}
		if p.Open() {
			hasOpen = true
		}
		return false
	})
}

// panelShow defers while a sibling is mid-transition, otherwise closes the
// siblings before the show proceeds. Sibling closes are forced past
// canHidePanel; a listener that cancels a sibling's "panel.hide" cancels
// this show too, so at most one panel stays open.
func (t *Toggle) panelShow(ev *accordion.Event) {
	if t.a.Mode() != ModeToggle || ev.Target == nil {
		return
	}
	if t.a.Animating(ev.Target) {
		ev.Cancel()
		return
	}
	stillOpen := false
	t.a.Each(func(p *accordion.Panel) bool {
		if p == ev.Target {
			return false
		}
		p.Hide(accordion.Force())
		if p.Open() {
			stillOpen = true
		}
		return false
	})
	if stillOpen {
		ev.Cancel()
	}
}
