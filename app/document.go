package app

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/config"
	"github.com/kastheco/fold/config/viewstore"
	"github.com/kastheco/fold/markup"
	"github.com/kastheco/fold/plugins"
	"github.com/kastheco/fold/transition"
)

// LoadOptions control how a document becomes an accordion.
type LoadOptions struct {
	// Mode overrides both the config and the frontmatter.
	Mode   string
	Engine transition.Engine
	Deps   plugins.Deps
}

// Load reads the markdown file at path and builds an accordion over it. The
// frontmatter's mode sits between the config and opts.Mode. Its panels
// entries become initial state; its disabled entry is applied once the
// accordion exists.
func Load(path string, cfg *config.Config, opts LoadOptions) (*accordion.Accordion, markup.Frontmatter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, markup.Frontmatter{}, fmt.Errorf("failed to read document: %w", err)
	}
	doc, fm, err := markup.FromMarkdown(src)
	if err != nil {
		return nil, fm, fmt.Errorf("%s: %w", path, err)
	}

	ps, err := plugins.ByName(cfg.Plugins, opts.Deps)
	if err != nil {
		return nil, fm, fmt.Errorf("failed to build plugins: %w", err)
	}

	if err := markPanels(doc, fm); err != nil {
		return nil, fm, fmt.Errorf("%s: frontmatter: %w", path, err)
	}

	var overrides []accordion.Settings
	if fm.Mode != "" {
		overrides = append(overrides, accordion.Settings{"mode": fm.Mode})
	}
	if opts.Mode != "" {
		overrides = append(overrides, accordion.Settings{"mode": opts.Mode})
	}
	settings, err := cfg.Settings(overrides...)
	if err != nil {
		return nil, fm, fmt.Errorf("failed to merge settings: %w", err)
	}

	a, err := accordion.New(doc, accordion.Options{
		Settings: settings,
		Plugins:  ps,
		Engine:   opts.Engine,
	})
	if err != nil {
		return nil, fm, fmt.Errorf("%s: %w", path, err)
	}
	if fm.Disabled != nil {
		if err := a.Set("disabled", fm.Disabled); err != nil {
			a.Close()
			return nil, fm, fmt.Errorf("%s: frontmatter: %w", path, err)
		}
	}
	return a, fm, nil
}

// markPanels writes the frontmatter's per-panel state into the markup so the
// accordion picks it up as declared initial state. Panels are keyed by their
// 1-based position among the container's own panels.
func markPanels(doc *markup.Document, fm markup.Frontmatter) error {
	if len(fm.Panels) == 0 {
		return nil
	}
	isContainer := markup.ByAttr(markup.AttrIs, markup.ContainerIs)
	var hosts []*markup.Element
	for _, host := range doc.Root.FindAll(markup.ByAttr(markup.AttrIs, markup.PanelIs)) {
		if owner := host.Parent().Closest(isContainer); owner == nil || owner == doc.Root {
			hosts = append(hosts, host)
		}
	}

	positions := make([]int, 0, len(fm.Panels))
	for pos := range fm.Panels {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	for _, pos := range positions {
		if pos < 1 || pos > len(hosts) {
			return fmt.Errorf("%w: no panel at position %d", accordion.ErrContract, pos)
		}
		host := hosts[pos-1]
		props := fm.Panels[pos]
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			on, ok := props[name].(bool)
			switch {
			case name != "open" && name != "disabled":
				return fmt.Errorf("%w: panel %d: unknown property %q", accordion.ErrContract, pos, name)
			case !ok:
				return fmt.Errorf("%w: panel %d: %s must be of type bool, got %T", accordion.ErrContract, pos, name, props[name])
			case name == "open" && on:
				host.SetAttr("open", "")
			case name == "open":
				host.RemoveAttr("open")
			default:
				for _, summary := range host.FindAll(markup.ByClass(markup.ClassSummary)) {
					if on {
						summary.SetAttr("aria-disabled", "true")
					} else {
						summary.RemoveAttr("aria-disabled")
					}
				}
			}
		}
	}
	return nil
}

// snapshot captures what a view store remembers about a.
func snapshot(document string, a *accordion.Accordion) viewstore.View {
	return viewstore.View{
		Document: document,
		Open:     a.OpenIndices(),
		Focused:  a.FocusedIndex(),
		Mode:     a.Mode(),
	}
}

// restore reapplies a remembered view without notifications or animation.
// Indices beyond the document are ignored.
func restore(a *accordion.Accordion, v viewstore.View) {
	if v.Mode != "" && slices.Contains(a.AvailableModes(), v.Mode) {
		_ = a.SetMode(v.Mode)
	}
	// Toggle mode keeps a single open panel: a disabled panel left open
	// counts, then the first remembered one wins.
	exclusive := a.Mode() == plugins.ModeToggle
	opened := false
	for _, p := range a.Panels() {
		if p.Disabled() && p.Open() {
			opened = true
		}
	}
	for _, p := range a.Panels() {
		if p.Disabled() {
			continue
		}
		if slices.Contains(v.Open, p.Index()) && !(exclusive && opened) {
			p.Show(accordion.Silent(), accordion.Instant(), accordion.Force())
			opened = true
		} else {
			p.Hide(accordion.Silent(), accordion.Instant(), accordion.Force())
		}
	}
	if v.Focused >= 0 && v.Focused < a.Len() {
		_ = a.Focus(v.Focused)
	}
}

// absPath resolves path for use as a view store key.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
