package plugins

import (
	"slices"

	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/markup"
)

const ScrollerName = "scrollfocus"

// Scroller brings an element into view.
type Scroller interface {
	ScrollIntoView(el *markup.Element)
}

// ScrollFunc adapts a function to Scroller.
type ScrollFunc func(el *markup.Element)

func (f ScrollFunc) ScrollIntoView(el *markup.Element) { f(el) }

// ScrollFocus scrolls panels into view on the events named by scrollToOn and
// opens the panel a scroll lands in on the events named by openOn.
//
// scrollTo gates scrolling. When it is false nothing scrolls, even with a
// Scroller present.
type ScrollFocus struct {
	a        *accordion.Accordion
	scroller Scroller
}

func NewScrollFocus(scroller Scroller) *ScrollFocus {
	return &ScrollFocus{scroller: scroller}
}

func (s *ScrollFocus) Name() string { return ScrollerName }

func (s *ScrollFocus) Defaults() accordion.Settings {
	return accordion.Settings{
		"scrollToOn": []string{accordion.EventPanelShown},
		"scrollTo":   false,
		"openOn":     []string{accordion.EventScrollAfter},
	}
}

func (s *ScrollFocus) Attach(a *accordion.Accordion) {
	s.a = a
	r := a.Registry()
	for _, name := range []string{accordion.EventPanelShow, accordion.EventPanelShown, accordion.EventPanelHide, accordion.EventPanelHidden} {
		r.On(ScrollerName, name, s.scrollToOn)
	}
	r.On(ScrollerName, accordion.EventScrollBefore, s.openOn)
	r.On(ScrollerName, accordion.EventScrollAfter, s.openOn)
}

func (s *ScrollFocus) scrollToOn(ev *accordion.Event) {
	settings := s.a.Settings()
	if s.scroller == nil || ev.Target == nil || !settings.Bool("scrollTo") {
		return
	}
	if slices.Contains(settings.Strings("scrollToOn"), ev.Name) {
		s.scroller.ScrollIntoView(ev.Target.Host())
	}
}

func (s *ScrollFocus) openOn(ev *accordion.Event) {
	if ev.Element == nil || !slices.Contains(s.a.Settings().Strings("openOn"), ev.Name) {
		return
	}
	if p := s.a.Panel(s.a.PanelContaining(ev.Element)); p != nil {
		p.SetOpen(true)
	}
}
