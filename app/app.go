package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/config"
	"github.com/kastheco/fold/config/viewstore"
	"github.com/kastheco/fold/internal/sentry"
	"github.com/kastheco/fold/keys"
	"github.com/kastheco/fold/log"
	"github.com/kastheco/fold/markup"
	"github.com/kastheco/fold/plugins"
	"github.com/kastheco/fold/transition"
	"github.com/kastheco/fold/ui"
	zone "github.com/lrstanley/bubblezone/v2"
)

// Options configure an interactive session.
type Options struct {
	Path   string
	Config *config.Config
	// Store remembers open panels between sessions. May be nil.
	Store viewstore.Store
	// Mode overrides the configured and frontmatter mode.
	Mode    string
	Instant bool
	Watch   bool
	// Engine builds the transition engine for each load. Nil selects a
	// spring at the configured motion level.
	Engine func() transition.Engine
}

// Run is the main entrypoint into the application.
func Run(ctx context.Context, opts Options) error {
	defer sentry.RecoverPanic()

	// Every ANSI reset and unstyled cell falls back to the theme base.
	restore := ui.SetTerminalBackground(os.Stdout, ui.BaseHex)
	defer restore()

	zone.NewGlobal()
	m, err := newHome(ctx, opts, true)
	if err != nil {
		return err
	}
	defer m.close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if opts.Watch {
		w, err := watch(opts.Path, p.Send)
		if err != nil {
			return err
		}
		defer w.Close()
		m.watching = true
	}
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// frameMsg drives one animation step.
type frameMsg time.Time

// statusClearMsg drops a transient status message if it is still current.
type statusClearMsg struct{ seq int }

// animator is an engine the view must step once per frame.
type animator interface {
	Step(now time.Time) bool
	Active() bool
	FPS() int
}

// flusher is an engine whose completions are delivered on demand.
type flusher interface {
	Flush() int
}

// hold keeps an element on a fixed screen row until a deadline.
type hold struct {
	row   int
	until time.Time
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	opts     Options
	cfg      *config.Config
	store    viewstore.Store
	document string
	watching bool

	// -- State --

	acc     *accordion.Accordion
	engine  transition.Engine
	ticking bool
	// contentFocus routes navigation keys to the focused panel's content.
	contentFocus bool
	holds        map[*markup.Element]hold
	scrollTarget *markup.Element
	message      string
	messageSeq   int

	// -- UI Components --

	pane      *ui.Pane
	statusBar *ui.StatusBar
	viewport  viewport.Model
	help      help.Model
	zones     bool

	width, height int

	now  func() time.Time
	copy func(string) error
}

func newHome(ctx context.Context, opts Options, zones bool) (*home, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := help.New()
	h.Styles = help.DefaultDarkStyles()

	m := &home{
		ctx:       ctx,
		opts:      opts,
		cfg:       cfg,
		store:     opts.Store,
		document:  absPath(opts.Path),
		holds:     make(map[*markup.Element]hold),
		pane:      ui.NewPane(zones),
		statusBar: ui.NewStatusBar(zones),
		viewport:  viewport.New(),
		help:      h,
		zones:     zones,
		now:       time.Now,
		copy:      clipboard.WriteAll,
	}

	acc, engine, err := m.load()
	if err != nil {
		return nil, err
	}
	m.acc, m.engine = acc, engine
	if m.store != nil && cfg.RestoreState {
		v, err := m.store.Load(m.document)
		switch {
		case err == nil:
			if opts.Mode != "" {
				v.Mode = ""
			}
			restore(acc, v)
		case !errors.Is(err, viewstore.ErrNotFound):
			log.WarningLog.Printf("could not restore view of %s: %v", m.document, err)
		}
	}
	if acc.FocusedIndex() < 0 && acc.Len() > 0 {
		_ = acc.Focus(0)
	}
	m.flush()
	sentry.SetContext(filepath.Base(m.document), acc.Mode())
	return m, nil
}

func (m *home) newEngine() transition.Engine {
	if m.opts.Engine != nil {
		return m.opts.Engine()
	}
	if m.opts.Instant {
		return transition.NewSpring(transition.MotionOff)
	}
	return transition.NewSpring(m.cfg.Motion)
}

func (m *home) load() (*accordion.Accordion, transition.Engine, error) {
	engine := m.newEngine()
	acc, _, err := Load(m.opts.Path, m.cfg, LoadOptions{
		Mode:   m.opts.Mode,
		Engine: engine,
		Deps:   plugins.Deps{Holder: m, Scroller: m},
	})
	if err != nil {
		return nil, nil, err
	}
	// Deliver the completions of instant transitions made during
	// construction so their panels accept requests again.
	switch e := engine.(type) {
	case flusher:
		e.Flush()
	case animator:
		e.Step(m.now())
	}
	return acc, engine, nil
}

// reload rebuilds the accordion from disk, carrying the current view over.
// On failure the previous document stays up.
func (m *home) reload() tea.Cmd {
	acc, engine, err := m.load()
	if err != nil {
		return m.handleError(fmt.Errorf("reload failed: %w", err))
	}
	v := snapshot(m.document, m.acc)
	m.acc.Close()
	m.acc, m.engine = acc, engine
	m.holds = make(map[*markup.Element]hold)
	m.scrollTarget = nil
	m.ticking = false
	restore(acc, v)
	m.flush()
	m.pane.Reset()
	log.InfoLog.Printf("reloaded %s", m.document)
	return m.settle()
}

func (m *home) close() {
	if m.acc != nil {
		m.acc.Close()
	}
}

// updateHandleWindowSizeEvent sets the sizes of the components.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.statusBar.SetSize(msg.Width)
	m.pane.SetSize(msg.Width)
	m.layout()
}

// layout gives the viewport whatever the status bar and help leave over.
func (m *home) layout() {
	helpHeight := lipgloss.Height(m.helpView())
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(max(1, m.height-1-helpHeight))
	m.refresh()
}

func (m *home) Init() tea.Cmd {
	return m.settle()
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case frameMsg:
		m.ticking = false
		if a, ok := m.engine.(animator); ok {
			a.Step(time.Time(msg))
		}
		return m, m.settle()
	case documentChangedMsg:
		return m, m.reload()
	case watchErrMsg:
		return m, m.handleError(msg.err)
	case statusClearMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
			m.refresh()
		}
		return m, nil
	case tea.MouseClickMsg:
		return m.handleMouse(msg)
	case tea.MouseWheelMsg:
		return m.handleWheel(msg)
	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// settle delivers queued completions, redraws and keeps the animation tick
// running while any motion is in flight.
func (m *home) settle() tea.Cmd {
	m.flush()
	m.refresh()
	a, ok := m.engine.(animator)
	if !ok || m.ticking || !a.Active() {
		return nil
	}
	m.ticking = true
	return tea.Tick(time.Second/time.Duration(a.FPS()), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *home) flush() {
	if f, ok := m.engine.(flusher); ok {
		f.Flush()
	}
}

// refresh re-renders the pane into the viewport and applies pending
// scrolls and position holds.
func (m *home) refresh() {
	if m.acc == nil {
		return
	}
	if m.contentFocus && m.focusedPanel() == nil {
		m.contentFocus = false
	}
	if p := m.focusedPanel(); m.contentFocus && !p.Open() {
		m.contentFocus = false
	}
	m.pane.SetSize(m.width)
	m.viewport.SetContent(m.pane.Render(m.acc, ui.Extents(m.acc), m.contentFocus))

	if el := m.scrollTarget; el != nil {
		m.scrollTarget = nil
		if row, ok := m.pane.Offset(el); ok {
			top := m.viewport.YOffset()
			if row < top || row >= top+m.viewport.Height() {
				m.viewport.SetYOffset(row)
			}
		}
	}
	now := m.now()
	for el, h := range m.holds {
		if !now.Before(h.until) {
			delete(m.holds, el)
			continue
		}
		if row, ok := m.pane.Offset(el); ok {
			m.viewport.SetYOffset(max(0, row-h.row))
		}
	}

	open := len(m.acc.OpenIndices())
	m.statusBar.SetData(ui.StatusBarData{
		Document: filepath.Base(m.document),
		Mode:     m.acc.Mode(),
		Open:     open,
		Total:    m.acc.Len(),
		Disabled: m.acc.Disabled(),
		Watching: m.watching,
		Message:  m.message,
	})
}

// HoldPosition keeps el on its current screen row for d.
func (m *home) HoldPosition(el *markup.Element, d time.Duration) {
	row, ok := m.pane.Offset(el)
	if !ok {
		return
	}
	m.holds[el] = hold{row: row - m.viewport.YOffset(), until: m.now().Add(d)}
}

// ScrollIntoView scrolls el to the top of the viewport on the next refresh
// unless it is already visible.
func (m *home) ScrollIntoView(el *markup.Element) {
	m.scrollTarget = el
}

func (m *home) focusedPanel() *accordion.Panel {
	return m.acc.Panel(m.acc.FocusedIndex())
}

func (m *home) helpView() string {
	v := m.help.View(keys.HelpMap{})
	if m.zones {
		v = zone.Mark(ui.ZoneHelp, v)
	}
	return v
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	if err := m.saveView(); err != nil {
		log.ErrorLog.Printf("failed to save view: %v", err)
	}
	return m, tea.Quit
}

func (m *home) saveView() error {
	if m.store == nil || !m.cfg.RestoreState {
		return nil
	}
	return m.store.Save(snapshot(m.document, m.acc))
}

// setMessage shows msg in the status bar for a few seconds.
func (m *home) setMessage(msg string) tea.Cmd {
	m.message = msg
	m.messageSeq++
	seq := m.messageSeq
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case <-time.After(3 * time.Second):
		}
		return statusClearMsg{seq: seq}
	}
}

func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	cmd := m.setMessage(err.Error())
	m.refresh()
	return cmd
}

func (m *home) View() tea.View {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.String(),
		m.viewport.View(),
		m.helpView(),
	)
	if m.zones {
		body = zone.Scan(body)
	}
	v := tea.NewView(ui.FillBackground(body, m.height))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}
