package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/markup"
	"github.com/kastheco/fold/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccordion(t *testing.T, specs ...markup.PanelSpec) (*accordion.Accordion, *transition.Queue) {
	t.Helper()
	q := transition.NewQueue()
	a, err := accordion.New(markup.Build(specs...), accordion.Options{Engine: q})
	require.NoError(t, err)
	return a, q
}

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestPane_RendersSummariesAndOpenContent(t *testing.T) {
	a, _ := newAccordion(t,
		markup.PanelSpec{Title: "Alpha", Body: "first body"},
		markup.PanelSpec{Title: "Beta", Body: "second body", Open: true},
	)
	p := NewPane(false)
	p.SetSize(60)
	out := p.Render(a, Extents(a), false)
	plain := ansi.Strip(out)

	assert.Contains(t, plain, "▸ Alpha")
	assert.Contains(t, plain, "▾ Beta")
	assert.NotContains(t, plain, "first body")
	assert.Contains(t, plain, "second body")

	row, ok := p.Offset(a.Panel(1).Host())
	require.True(t, ok)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, p.PanelAtRow(0))
	assert.Equal(t, 1, p.PanelAtRow(row))
	assert.Equal(t, -1, p.PanelAtRow(-1))

	_, ok = p.Offset(a.Panel(0).Content())
	assert.False(t, ok, "collapsed content is not laid out")
	_, ok = p.Offset(a.Panel(1).Content())
	assert.True(t, ok)
}

func TestPane_ClipsToExtent(t *testing.T) {
	body := strings.Repeat("line\n\n", 10)
	a, _ := newAccordion(t, markup.PanelSpec{Title: "A", Body: body, Open: true})
	p := NewPane(false)
	p.SetSize(40)

	full := len(plainLines(p.Render(a, Extents(a), false)))
	half := len(plainLines(p.Render(a, func(*markup.Element) float64 { return 0.5 }, false)))
	none := len(plainLines(p.Render(a, func(*markup.Element) float64 { return 0 }, false)))

	assert.Equal(t, 1, none)
	assert.Greater(t, full, half)
	assert.Greater(t, half, none)
}

func TestPane_TruncatesTitles(t *testing.T) {
	a, _ := newAccordion(t, markup.PanelSpec{Title: strings.Repeat("wide ", 20)})
	p := NewPane(false)
	p.SetSize(20)
	line := plainLines(p.Render(a, Extents(a), false))[0]
	assert.LessOrEqual(t, ansi.StringWidth(line), 20)
	assert.True(t, strings.HasSuffix(line, "…"))
}

func TestPane_ContentFocusMarker(t *testing.T) {
	a, _ := newAccordion(t, markup.PanelSpec{Title: "A", Body: "text", Open: true})
	require.NoError(t, a.Focus(0))
	p := NewPane(false)
	p.SetSize(40)

	assert.NotContains(t, ansi.Strip(p.Render(a, Extents(a), false)), "│")
	assert.Contains(t, ansi.Strip(p.Render(a, Extents(a), true)), "│")
}

func TestPane_HeaderAndTitle(t *testing.T) {
	doc, _, err := markup.FromMarkdown([]byte("---\ntitle: Guide\n---\nIntro text.\n\n## One\nbody\n"))
	require.NoError(t, err)
	a, err := accordion.New(doc, accordion.Options{Engine: transition.NewQueue()})
	require.NoError(t, err)

	p := NewPane(false)
	p.SetSize(60)
	plain := ansi.Strip(p.Render(a, Extents(a), false))
	assert.Contains(t, plain, "Guide")
	assert.Contains(t, plain, "Intro text.")

	row, ok := p.Offset(a.Panel(0).Host())
	require.True(t, ok)
	assert.Equal(t, -1, p.PanelAtRow(0), "header rows belong to no panel")
	assert.Equal(t, 0, p.PanelAtRow(row))
}

func TestRender_Static(t *testing.T) {
	a, q := newAccordion(t,
		markup.PanelSpec{Title: "Alpha", Body: "alpha body"},
		markup.PanelSpec{Title: "Beta", Body: "beta body"},
	)
	a.Panel(0).Show()
	q.Flush()

	out := ansi.Strip(Render(a, 60))
	assert.Contains(t, out, "alpha body")
	assert.NotContains(t, out, "beta body")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestExtents_FallsBackToOpenState(t *testing.T) {
	a, err := accordion.New(markup.Build(markup.PanelSpec{Title: "A", Open: true}, markup.PanelSpec{Title: "B"}), accordion.Options{Engine: stubEngine{}})
	require.NoError(t, err)
	ext := Extents(a)
	assert.Equal(t, 1.0, ext(a.Panel(0).Content()))
	assert.Equal(t, 0.0, ext(a.Panel(1).Content()))
}

// stubEngine completes nothing and reports no extents.
type stubEngine struct{}

func (stubEngine) Reveal(*markup.Element, time.Duration, string, func())   {}
func (stubEngine) Collapse(*markup.Element, time.Duration, string, func()) {}
