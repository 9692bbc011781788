// Package accordion coordinates a set of disclosable panels sharing one
// container: guarded show/hide transitions, a hook registry through which
// plugins can veto or observe them, group policy and keyboard roving.
//
// Everything here is single-threaded. The only asynchronous boundary is the
// transition engine's completion callback, which must be delivered on the
// same goroutine that drives the accordion (the Bubble Tea update loop).
package accordion

import (
	"fmt"
	"slices"

	"github.com/kastheco/fold/internal/suggest"
	"github.com/kastheco/fold/markup"
	"github.com/kastheco/fold/transition"
)

// ModeFree lets any number of panels be open.
const ModeFree = "free"

// DefaultSettings returns the core configuration. Plugins extend it and the
// caller's settings override both.
func DefaultSettings() Settings {
	return Settings{
		"mode":           ModeFree,
		"availableModes": []string{ModeFree},
		"dom": map[string]any{
			"container": markup.ContainerIs,
			"panel":     markup.PanelIs,
		},
		"panel": map[string]any{
			"closeOnDisable": true,
			"slideOptions": map[string]any{
				"speed":  int(defaultSlideSpeed.Milliseconds()),
				"easing": defaultEasing,
			},
			"dom": map[string]any{
				"summary": markup.ClassSummary,
				"content": markup.ClassContent,
			},
		},
	}
}

// Options configures New.
type Options struct {
	Settings Settings
	Plugins  []Plugin
	// Engine animates panel content. Defaults to a transition.Queue.
	Engine transition.Engine
	Logger Logger
}

// Accordion owns an ordered, fixed sequence of panels.
type Accordion struct {
	doc      *markup.Document
	root     *markup.Element
	settings Settings
	hooks    *Registry
	engine   transition.Engine
	logger   Logger
	states   *States
	panels   []*Panel
	plugins  []Plugin

	unbindFocus func()
	closed      bool
}

// New builds an accordion over doc.Root, discovers its panels in document
// order and applies their declared initial state. Any structural problem
// aborts construction with ErrConstruction; an unknown configured mode fails
// with ErrContract.
func New(doc *markup.Document, opts Options) (*Accordion, error) {
	if doc == nil || doc.Root == nil {
		return nil, constructionErrorf("host element is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = defaultLogger{}
	}

	layers := []Settings{DefaultSettings()}
	seen := make(map[string]bool)
	for _, p := range opts.Plugins {
		if seen[p.Name()] {
			return nil, constructionErrorf("plugin %q registered twice", p.Name())
		}
		seen[p.Name()] = true
		layers = append(layers, p.Defaults())
	}
	layers = append(layers, opts.Settings)
	settings, err := MergeSettings(layers...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConstruction, err)
	}

	engine := opts.Engine
	if engine == nil {
		engine = transition.NewQueue()
	}

	a := &Accordion{
		doc:      doc,
		root:     doc.Root,
		settings: settings,
		hooks:    NewRegistry(logger),
		engine:   engine,
		logger:   logger,
		states:   containerStates(),
		plugins:  opts.Plugins,
	}
	if mode := a.Mode(); !slices.Contains(a.AvailableModes(), mode) {
		return nil, a.unknownMode(mode)
	}

	panelSettings := settings.Sub("panel")
	for i, host := range a.discover() {
		p, err := newPanel(i, host, a, doc, engine, panelSettings)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}
		a.panels = append(a.panels, p)
	}

	a.states.OnChange(func(name string, on bool) {
		a.root.ToggleClass(a.states.ClassOf(name), on)
	})
	a.unbindFocus = doc.OnFocus(a.trackFocus)
	for _, p := range opts.Plugins {
		p.Attach(a)
	}

	a.states.Set(StateInitialized)
	a.Dispatch(NewEvent(EventInitialized, nil, false))
	for _, p := range a.panels {
		p.initialize()
	}
	a.Dispatch(NewEvent(EventChildrenInitialized, nil, false))
	return a, nil
}

// discover returns the panel hosts owned directly by the root, skipping
// panels of nested accordions.
func (a *Accordion) discover() []*markup.Element {
	isPanel := markup.ByAttr(markup.AttrIs, a.settings.String("dom.panel"))
	isContainer := markup.ByAttr(markup.AttrIs, a.settings.String("dom.container"))
	var hosts []*markup.Element
	for _, host := range a.root.FindAll(isPanel) {
		owner := host.Parent().Closest(isContainer)
		if owner == nil || owner == a.root {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

func (a *Accordion) trackFocus(prev, next *markup.Element) {
	for _, p := range a.panels {
		if next != nil && next == p.summary {
			p.states.Set(StateFocus)
		}
		if prev != nil && prev == p.summary {
			p.states.Set(StateBlur)
		}
	}
}

func (a *Accordion) Document() *markup.Document { return a.doc }
func (a *Accordion) Root() *markup.Element { return a.root }
func (a *Accordion) Registry() *Registry { return a.hooks }
func (a *Accordion) Settings() Settings { return a.settings }
func (a *Accordion) Engine() transition.Engine { return a.engine }
func (a *Accordion) States() *States { return a.states }
func (a *Accordion) Len() int { return len(a.panels) }

// Panels returns the panels in container order.
func (a *Accordion) Panels() []*Panel { return slices.Clone(a.panels) }

// Panel returns the panel at index, or nil.
func (a *Accordion) Panel(index int) *Panel {
	if index < 0 || index >= len(a.panels) {
		return nil
	}
	return a.panels[index]
}

// Each calls fn for every panel in order until fn returns true.
func (a *Accordion) Each(fn func(p *Panel) (stop bool)) {
	for _, p := range a.panels {
		if fn(p) {
			return
		}
	}
}

func (a *Accordion) Mode() string { return a.settings.String("mode") }

func (a *Accordion) AvailableModes() []string { return a.settings.Strings("availableModes") }

// SetMode switches the group policy. Unknown modes fail and leave the
// current mode untouched.
func (a *Accordion) SetMode(mode string) error {
	if !slices.Contains(a.AvailableModes(), mode) {
		return a.unknownMode(mode)
	}
	a.settings.Set("mode", mode)
	return nil
}

func (a *Accordion) unknownMode(mode string) error {
	return contractErrorf("unknown mode %q%s", mode, suggest.Hint(mode, a.AvailableModes()))
}

func (a *Accordion) Disabled() bool { return a.states.Is(StateDisabled) }

// SetDisabled applies state to every panel in order, then to the container.
func (a *Accordion) SetDisabled(state bool) {
	for _, p := range a.panels {
		p.setDisabled(state)
	}
	if state {
		a.states.Set(StateDisabled)
		a.root.SetAttr("aria-disabled", "true")
	} else {
		a.states.Unset(StateDisabled)
		a.root.RemoveAttr("aria-disabled")
	}
}

// Set assigns a container property from an untyped source.
func (a *Accordion) Set(name string, v any) error {
	switch name {
	case "disabled":
		b, ok := v.(bool)
		if !ok {
			return contractErrorf("disabled must be of type bool, got %T", v)
		}
		a.SetDisabled(b)
		return nil
	case "mode":
		s, ok := v.(string)
		if !ok {
			return contractErrorf("mode must be of type string, got %T", v)
		}
		return a.SetMode(s)
	}
	return contractErrorf("unknown property %q", name)
}

// CanShow asks every canShowPanel observer; a single false refuses.
func (a *Accordion) CanShow(p *Panel) bool {
	return a.canPerform("canShow", HookCanShowPanel, p)
}

// CanHide asks every canHidePanel observer; a single false refuses.
func (a *Accordion) CanHide(p *Panel) bool {
	return a.canPerform("canHide", HookCanHidePanel, p)
}

func (a *Accordion) canPerform(action, hook string, p *Panel) bool {
	ok, owner := a.hooks.Gate(hook, p)
	if !ok {
		a.logger.Warnf("%s panel %d was prevented by: %s", action, p.Index(), owner)
	}
	return ok
}

// Dispatch delivers ev to the registry and reports whether it was not
// cancelled.
func (a *Accordion) Dispatch(ev *Event) bool {
	if a.closed {
		return false
	}
	return a.hooks.Dispatch(ev)
}

// Selector picks panels by index for bulk operations. A nil Selector selects
// every panel.
type Selector func(index int) bool

// All selects every panel.
func All(int) bool { return true }

// Index selects a single panel.
func Index(i int) Selector { return func(j int) bool { return i == j } }

// Indices selects a set of panels.
func Indices(is ...int) Selector { return func(j int) bool { return slices.Contains(is, j) } }

// Show shows each selected panel in container order.
func (a *Accordion) Show(sel Selector, opts ...Option) {
	for i, p := range a.panels {
		if sel == nil || sel(i) {
			p.Show(opts...)
		}
	}
}

// Hide hides each selected panel in container order.
func (a *Accordion) Hide(sel Selector, opts ...Option) {
	for i, p := range a.panels {
		if sel == nil || sel(i) {
			p.Hide(opts...)
		}
	}
}

// OpenIndices returns the indices of open panels.
func (a *Accordion) OpenIndices() []int {
	var out []int
	for i, p := range a.panels {
		if p.Open() {
			out = append(out, i)
		}
	}
	return out
}

// Animating reports whether any panel other than except has a transition in
// flight. Pass nil to consider every panel.
func (a *Accordion) Animating(except *Panel) bool {
	for _, p := range a.panels {
		if p != except && p.Animating() {
			return true
		}
	}
	return false
}

// Focus moves focus to the summary of the panel at index.
func (a *Accordion) Focus(index int) error {
	p := a.Panel(index)
	if p == nil {
		return contractErrorf("invalid child index: %d", index)
	}
	p.Focus()
	return nil
}

// FocusedIndex returns the index of the panel whose summary has focus, or -1.
func (a *Accordion) FocusedIndex() int {
	for i, p := range a.panels {
		if p.Focused() {
			return i
		}
	}
	return -1
}

// PanelAt returns the index of the panel whose host is or contains el,
// excluding elements inside the panel's content region, or -1.
func (a *Accordion) PanelAt(el *markup.Element) int {
	if el == nil {
		return -1
	}
	for i, p := range a.panels {
		if p.host.Contains(el) && !p.content.Contains(el) {
			return i
		}
	}
	return -1
}

// PanelContaining returns the index of the panel whose host is or contains
// el, content included, or -1.
func (a *Accordion) PanelContaining(el *markup.Element) int {
	if el == nil {
		return -1
	}
	for i, p := range a.panels {
		if p.host.Contains(el) {
			return i
		}
	}
	return -1
}

// Close tears the accordion down. Panels stop responding and the registry
// is emptied.
func (a *Accordion) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.unbindFocus != nil {
		a.unbindFocus()
	}
	for _, p := range a.panels {
		p.closed = true
	}
	a.panels = nil
	a.hooks.reset()
}
