package plugins

import (
	"time"

	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/markup"
)

const (
	SafemodeName = "safemode"

	defaultHold = 310 * time.Millisecond
)

// PositionHolder keeps an element at its current on-screen position for d
// while the layout around it changes.
type PositionHolder interface {
	HoldPosition(el *markup.Element, d time.Duration)
}

// Safemode pins an opening panel in place so content above it collapsing
// does not push it out of view.
type Safemode struct {
	a      *accordion.Accordion
	holder PositionHolder
}

func NewSafemode(holder PositionHolder) *Safemode {
	return &Safemode{holder: holder}
}

func (s *Safemode) Name() string { return SafemodeName }

func (s *Safemode) Defaults() accordion.Settings {
	return accordion.Settings{"safemode": true}
}

func (s *Safemode) Attach(a *accordion.Accordion) {
	s.a = a
	a.Registry().On(SafemodeName, accordion.EventPanelShow, s.panelShow)
}

func (s *Safemode) panelShow(ev *accordion.Event) {
	if s.holder == nil || ev.Target == nil || !s.a.Settings().Bool("safemode") {
		return
	}
	d := defaultHold
	if ms := ev.Target.Settings().Int("slideOptions.speed"); ms > 0 {
		d = time.Duration(ms) * time.Millisecond
	}
	s.holder.HoldPosition(ev.Target.Host(), d)
}
