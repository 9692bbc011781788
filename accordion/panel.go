package accordion

import (
	"time"

	"github.com/kastheco/fold/markup"
	"github.com/kastheco/fold/transition"
)

const (
	defaultSlideSpeed = 300 * time.Millisecond
	defaultEasing     = "ease"
	idPrefix          = "fold-panel-"
)

// Parent is the container side of a panel. A panel holds it as a non-owning
// back-reference; the container owns the panel.
type Parent interface {
	CanShow(p *Panel) bool
	CanHide(p *Panel) bool
	Dispatch(ev *Event) bool
	Disabled() bool
}

type transitionOptions struct {
	events  bool
	force   bool
	instant bool
}

// Option adjusts a single Show or Hide call.
type Option func(*transitionOptions)

// Silent suppresses lifecycle notifications, and with them the chance for
// observers to cancel.
func Silent() Option { return func(o *transitionOptions) { o.events = false } }

// Force skips the container's permission hooks. It never skips the
// cancelable notification.
func Force() Option { return func(o *transitionOptions) { o.force = true } }

// Instant transitions with zero duration.
func Instant() Option { return func(o *transitionOptions) { o.instant = true } }

func buildOptions(opts []Option) transitionOptions {
	o := transitionOptions{events: true}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Panel is one disclosable unit: a summary control and a content region.
// Panels are not safe for concurrent use; drive them from one goroutine.
type Panel struct {
	index   int
	host    *markup.Element
	summary *markup.Element
	content *markup.Element

	parent   Parent
	doc      *markup.Document
	engine   transition.Engine
	settings Settings
	states   *States
	gate     Gate
	closed   bool
}

func newPanel(index int, host *markup.Element, parent Parent, doc *markup.Document, engine transition.Engine, settings Settings) (*Panel, error) {
	if host == nil {
		return nil, constructionErrorf("panel host element is required")
	}
	summaries := host.FindAll(markup.ByClass(settings.String("dom.summary")))
	if len(summaries) != 1 {
		return nil, constructionErrorf("panel must contain exactly one summary element, found %d", len(summaries))
	}
	contents := host.FindAll(markup.ByClass(settings.String("dom.content")))
	if len(contents) != 1 {
		return nil, constructionErrorf("panel must contain exactly one content element, found %d", len(contents))
	}

	p := &Panel{
		index:    index,
		host:     host,
		summary:  summaries[0],
		content:  contents[0],
		parent:   parent,
		doc:      doc,
		engine:   engine,
		settings: settings,
		states:   panelStates(),
	}
	p.states.OnChange(func(name string, on bool) {
		p.host.ToggleClass(p.states.ClassOf(name), on)
	})
	return p, nil
}

// initialize wires ARIA relations and applies the declared initial state
// without a transition: no gate, no notifications.
func (p *Panel) initialize() {
	p.content.SetAttr("role", "region")
	p.content.SetAttr("aria-labelledby", markup.RequireID(p.summary, idPrefix))
	p.summary.SetAttr("aria-controls", markup.RequireID(p.content, idPrefix))

	v, _ := p.summary.Attr("aria-disabled")
	disabled := v == "true"
	open := p.host.HasAttr("open")
	if disabled && p.settings.Bool("closeOnDisable") {
		open = false
	}
	p.settle(open)
	if disabled {
		p.markDisabled(true)
	}
	p.states.Set(StateInitialized)
}

func (p *Panel) settle(open bool) {
	p.applyOpen(open)
	if s, ok := p.engine.(transition.Settler); ok {
		s.Settle(p.content, open)
		return
	}
	noop := func() {}
	if open {
		p.engine.Reveal(p.content, 0, p.easing(), noop)
	} else {
		p.engine.Collapse(p.content, 0, p.easing(), noop)
	}
}

func (p *Panel) applyOpen(open bool) {
	if open {
		p.states.Set(StateOpen)
		p.summary.SetAttr("aria-expanded", "true")
		p.host.SetAttr("open", "")
		return
	}
	p.states.Set(StateClosed)
	p.summary.SetAttr("aria-expanded", "false")
	p.host.RemoveAttr("open")
}

// Show opens the panel. It is a no-op when the panel is already open or a
// transition is in flight. Unless forced, the container may refuse; unless
// silent, any observer may cancel the "panel.show" notification. On
// acceptance the panel is open immediately and "panel.shown" follows once
// the transition engine completes.
func (p *Panel) Show(opts ...Option) {
	if p.closed || p.Open() || !p.gate.Claim() {
		return
	}
	o := buildOptions(opts)
	if !o.force && !p.parent.CanShow(p) {
		p.gate.Release()
		return
	}
	if o.events && !p.parent.Dispatch(NewEvent(EventPanelShow, p, true)) {
		p.gate.Release()
		return
	}
	p.applyOpen(true)
	p.engine.Reveal(p.content, p.duration(o), p.easing(), func() {
		p.gate.Release()
		if o.events {
			p.parent.Dispatch(NewEvent(EventPanelShown, p, false))
		}
	})
}

// Hide is the mirror of Show: closed immediately on acceptance, "panel.hidden"
// after the collapse completes.
func (p *Panel) Hide(opts ...Option) {
	if p.closed || !p.Open() || !p.gate.Claim() {
		return
	}
	o := buildOptions(opts)
	if !o.force && !p.parent.CanHide(p) {
		p.gate.Release()
		return
	}
	if o.events && !p.parent.Dispatch(NewEvent(EventPanelHide, p, true)) {
		p.gate.Release()
		return
	}
	p.applyOpen(false)
	p.engine.Collapse(p.content, p.duration(o), p.easing(), func() {
		p.gate.Release()
		if o.events {
			p.parent.Dispatch(NewEvent(EventPanelHidden, p, false))
		}
	})
}

// Toggle shows a closed panel or hides an open one.
func (p *Panel) Toggle(opts ...Option) {
	if p.Open() {
		p.Hide(opts...)
	} else {
		p.Show(opts...)
	}
}

func (p *Panel) duration(o transitionOptions) time.Duration {
	if o.instant {
		return 0
	}
	if ms := p.settings.Int("slideOptions.speed"); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultSlideSpeed
}

func (p *Panel) easing() string {
	if e := p.settings.String("slideOptions.easing"); e != "" {
		return e
	}
	return defaultEasing
}

func (p *Panel) Open() bool { return p.states.Global() == StateOpen }

// SetOpen shows or hides with default options when state differs.
func (p *Panel) SetOpen(state bool) {
	if p.Open() == state {
		return
	}
	if state {
		p.Show()
	} else {
		p.Hide()
	}
}

func (p *Panel) Disabled() bool { return p.states.Is(StateDisabled) }

// SetDisabled marks the panel inoperable. Disabling closes it when
// closeOnDisable is set; enabling never reopens it. While the container is
// disabled every panel stays disabled, so enabling a single panel is ignored.
func (p *Panel) SetDisabled(state bool) {
	if !state && p.parent.Disabled() {
		return
	}
	p.setDisabled(state)
}

func (p *Panel) setDisabled(state bool) {
	p.markDisabled(state)
	if state && p.settings.Bool("closeOnDisable") {
		p.SetOpen(false)
	}
}

func (p *Panel) markDisabled(state bool) {
	if state {
		p.summary.SetAttr("aria-disabled", "true")
		p.states.Set(StateDisabled)
		return
	}
	p.summary.RemoveAttr("aria-disabled")
	p.states.Unset(StateDisabled)
}

// Set assigns a property from an untyped source such as frontmatter. Only
// "open" and "disabled" exist and both require a bool.
func (p *Panel) Set(name string, v any) error {
	b, ok := v.(bool)
	switch name {
	case "open", "disabled":
		if !ok {
			return contractErrorf("panel %d: %s must be of type bool, got %T", p.index, name, v)
		}
	default:
		return contractErrorf("panel %d: unknown property %q", p.index, name)
	}
	if name == "open" {
		p.SetOpen(b)
	} else {
		p.SetDisabled(b)
	}
	return nil
}

// Animating reports whether a transition is in flight.
func (p *Panel) Animating() bool { return p.gate.Held() }

// Focus moves document focus to the summary control.
func (p *Panel) Focus() { p.doc.Focus(p.summary) }

// Blur drops focus if the summary control holds it.
func (p *Panel) Blur() {
	if p.doc.ActiveElement() == p.summary {
		p.doc.Blur()
	}
}

func (p *Panel) Focused() bool { return p.states.Is(StateFocus) }

func (p *Panel) Index() int { return p.index }
func (p *Panel) Host() *markup.Element { return p.host }
func (p *Panel) Summary() *markup.Element { return p.summary }
func (p *Panel) Content() *markup.Element { return p.content }
func (p *Panel) Parent() Parent { return p.parent }
func (p *Panel) States() *States { return p.states }
func (p *Panel) Settings() Settings { return p.settings }
func (p *Panel) Title() string { return p.summary.OwnText() }
