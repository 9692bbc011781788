package accordion

import (
	"errors"
	"testing"

	"github.com/kastheco/fold/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanel_ShowLifecycle(t *testing.T) {
	a, q := newTestAccordion(t, specs(2))
	events := recordEvents(a)
	p := a.Panel(0)

	require.False(t, p.Open())
	p.Show()

	assert.True(t, p.Open(), "open is observable before the transition completes")
	assert.True(t, p.Animating())
	assert.Equal(t, []string{"panel.show:0"}, *events)

	q.Flush()
	assert.False(t, p.Animating())
	assert.Equal(t, []string{"panel.show:0", "panel.shown:0"}, *events)

	expanded, _ := p.Summary().Attr("aria-expanded")
	assert.Equal(t, "true", expanded)
	assert.True(t, p.Host().HasAttr("open"))
	assert.True(t, p.Host().HasClass("fold__panel--open"))
	assert.False(t, p.Host().HasClass("fold__panel--closed"))
}

func TestPanel_HideLifecycle(t *testing.T) {
	a, q := newTestAccordion(t, []markup.PanelSpec{{Title: "A", Open: true}})
	events := recordEvents(a)
	p := a.Panel(0)
	require.True(t, p.Open())
	require.False(t, p.Animating(), "initial state is applied without a transition")

	p.Hide()
	assert.False(t, p.Open())
	assert.True(t, p.Animating())
	assert.False(t, p.Host().HasAttr("open"))
	q.Flush()

	assert.False(t, p.Animating())
	assert.Equal(t, []string{"panel.hide:0", "panel.hidden:0"}, *events)
	expanded, _ := p.Summary().Attr("aria-expanded")
	assert.Equal(t, "false", expanded)
}

func TestPanel_ShowWhenOpenIsNoop(t *testing.T) {
	hooks := 0
	counter := &testPlugin{name: "counter", attach: func(a *Accordion) {
		a.Registry().Hook("counter", HookCanShowPanel, func(...any) any { hooks++; return nil })
	}}
	a, q := newTestAccordion(t, []markup.PanelSpec{{Title: "A", Open: true}}, counter)
	events := recordEvents(a)

	a.Panel(0).Show()
	assert.Equal(t, 0, hooks, "no hook fires")
	assert.Empty(t, *events)
	assert.Equal(t, 0, q.Pending())
	assert.False(t, a.Panel(0).Animating())
}

func TestPanel_AnimatingIgnoresRequests(t *testing.T) {
	a, q := newTestAccordion(t, specs(2))
	events := recordEvents(a)
	p := a.Panel(0)

	p.Show()
	require.True(t, p.Animating())
	p.Hide(Force(), Instant())
	p.Show(Force())
	assert.True(t, p.Open())
	assert.Equal(t, []string{"panel.show:0"}, *events)

	// Other panels are unaffected.
	a.Panel(1).Show()
	assert.True(t, a.Panel(1).Open())

	q.Flush()
	p.Hide()
	assert.False(t, p.Open())
}

func TestPanel_PermissionVeto(t *testing.T) {
	logger := &recordingLogger{}
	veto := &testPlugin{name: "veto", attach: func(a *Accordion) {
		a.Registry().Hook("veto", HookCanShowPanel, func(args ...any) any {
			return args[0].(*Panel).Index() != 1
		})
	}}
	q := newQueue()
	a, err := New(markup.Build(specs(2)...), Options{Plugins: []Plugin{veto}, Engine: q, Logger: logger})
	require.NoError(t, err)
	events := recordEvents(a)

	a.Panel(1).Show()
	assert.False(t, a.Panel(1).Open())
	assert.False(t, a.Panel(1).Animating(), "gate is released after a veto")
	assert.Empty(t, *events, "a refused show emits nothing")
	assert.Equal(t, []string{"canShow panel 1 was prevented by: veto"}, logger.warnings)

	a.Panel(1).Show(Force())
	assert.True(t, a.Panel(1).Open(), "force skips the permission hook")
}

func TestPanel_ForceNeverSkipsCancelableNotification(t *testing.T) {
	canceller := &testPlugin{name: "cancel", attach: func(a *Accordion) {
		a.Registry().On("cancel", EventPanelShow, func(ev *Event) { ev.Cancel() })
		a.Registry().On("cancel", EventPanelHide, func(ev *Event) { ev.Cancel() })
	}}
	a, q := newTestAccordion(t, []markup.PanelSpec{{Title: "A"}, {Title: "B", Open: true}}, canceller)

	a.Panel(0).Show(Force())
	assert.False(t, a.Panel(0).Open())
	assert.False(t, a.Panel(0).Animating())

	a.Panel(1).Hide(Force(), Instant())
	assert.True(t, a.Panel(1).Open())
	assert.Equal(t, 0, q.Pending())

	a.Panel(0).Show(Silent())
	assert.True(t, a.Panel(0).Open(), "silent transitions cannot be cancelled")
}

func TestPanel_SilentEmitsNothing(t *testing.T) {
	a, q := newTestAccordion(t, specs(1))
	events := recordEvents(a)
	a.Panel(0).Show(Silent(), Instant())
	q.Flush()
	a.Panel(0).Hide(Silent())
	q.Flush()
	assert.Empty(t, *events)
}

func TestPanel_StatusExclusiveAcrossTransitions(t *testing.T) {
	a, q := newTestAccordion(t, specs(1))
	p := a.Panel(0)
	check := func() {
		assert.NotEqual(t, p.States().Is(StateOpen), p.States().Is(StateClosed))
	}
	check()
	p.Show()
	check()
	q.Flush()
	check()
	p.Hide()
	check()
	q.Flush()
	check()
}

func TestPanel_Disabled(t *testing.T) {
	a, q := newTestAccordion(t, []markup.PanelSpec{{Title: "A", Open: true}})
	p := a.Panel(0)

	p.SetDisabled(true)
	assert.True(t, p.Disabled())
	assert.False(t, p.Open(), "closeOnDisable hides the panel")
	v, _ := p.Summary().Attr("aria-disabled")
	assert.Equal(t, "true", v)
	q.Flush()

	p.SetDisabled(false)
	assert.False(t, p.Disabled())
	assert.False(t, p.Open(), "enabling never reopens")
	assert.False(t, p.Summary().HasAttr("aria-disabled"))
}

func TestPanel_DisabledWithoutCloseOnDisable(t *testing.T) {
	q := newQueue()
	a, err := New(markup.Build(markup.PanelSpec{Title: "A", Open: true}), Options{
		Engine:   q,
		Logger:   &recordingLogger{},
		Settings: Settings{"panel": map[string]any{"closeOnDisable": false}},
	})
	require.NoError(t, err)
	a.Panel(0).SetDisabled(true)
	assert.True(t, a.Panel(0).Open())
}

func TestPanel_InitialDisabledState(t *testing.T) {
	a, _ := newTestAccordion(t, []markup.PanelSpec{{Title: "A", Open: true, Disabled: true}, {Title: "B", Open: true}})
	assert.True(t, a.Panel(0).Disabled())
	assert.False(t, a.Panel(0).Open(), "a disabled panel starts closed")
	assert.True(t, a.Panel(1).Open())
}

func TestPanel_SetOpen(t *testing.T) {
	a, q := newTestAccordion(t, specs(1))
	events := recordEvents(a)
	p := a.Panel(0)
	p.SetOpen(false)
	assert.Empty(t, *events)
	p.SetOpen(true)
	assert.True(t, p.Open())
	q.Flush()
	p.Toggle()
	assert.False(t, p.Open())
}

func TestPanel_SetRejectsNonBool(t *testing.T) {
	a, _ := newTestAccordion(t, specs(1))
	p := a.Panel(0)

	err := p.Set("open", "yes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContract))
	assert.False(t, p.Open(), "no partial mutation")

	err = p.Set("disabled", 1)
	assert.ErrorIs(t, err, ErrContract)
	assert.False(t, p.Disabled())

	assert.ErrorIs(t, p.Set("color", true), ErrContract)

	require.NoError(t, p.Set("open", true))
	assert.True(t, p.Open())
}

func TestPanel_AriaRelations(t *testing.T) {
	a, _ := newTestAccordion(t, specs(1))
	p := a.Panel(0)
	role, _ := p.Content().Attr("role")
	assert.Equal(t, "region", role)

	summaryID, _ := p.Summary().Attr("id")
	contentID, _ := p.Content().Attr("id")
	labelledBy, _ := p.Content().Attr("aria-labelledby")
	controls, _ := p.Summary().Attr("aria-controls")
	assert.Equal(t, summaryID, labelledBy)
	assert.Equal(t, contentID, controls)
	assert.NotEqual(t, summaryID, contentID)
}

func TestPanel_FocusBlur(t *testing.T) {
	a, _ := newTestAccordion(t, specs(2))
	a.Panel(0).Focus()
	assert.True(t, a.Panel(0).Focused())
	assert.Equal(t, 0, a.FocusedIndex())

	a.Panel(1).Focus()
	assert.False(t, a.Panel(0).Focused())
	assert.True(t, a.Panel(0).States().Is(StateBlur))
	assert.True(t, a.Panel(1).Focused())

	a.Panel(0).Blur()
	assert.True(t, a.Panel(1).Focused(), "blurring an unfocused panel does nothing")
	a.Panel(1).Blur()
	assert.Equal(t, -1, a.FocusedIndex())
}
