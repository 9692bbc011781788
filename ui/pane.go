package ui

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/markup"
	"github.com/kastheco/fold/transition"
	zone "github.com/lrstanley/bubblezone/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
)

const contentIndent = 2

// Pane lays an accordion out as lines of text and remembers which line each
// panel landed on, so the view can scroll to it and map rows back to panels.
type Pane struct {
	width    int
	zones    bool
	markdown *Markdown

	offsets map[*markup.Element]int
	rows    []int
}

// NewPane returns a pane. With zones set, summary rows carry bubblezone
// markers for mouse hit testing.
func NewPane(zones bool) *Pane {
	return &Pane{
		zones:    zones,
		markdown: NewMarkdown("dark"),
		offsets:  make(map[*markup.Element]int),
	}
}

func (p *Pane) SetSize(width int) {
	p.width = width
}

// Reset drops cached markdown.
func (p *Pane) Reset() {
	p.markdown.Reset()
}

// Offset returns the line an element was laid out on. Panel hosts and
// summaries share their summary row; content maps to its first line.
func (p *Pane) Offset(el *markup.Element) (int, bool) {
	n, ok := p.offsets[el]
	return n, ok
}

// PanelAtRow returns the panel owning the given line, or -1.
func (p *Pane) PanelAtRow(row int) int {
	if row < 0 || row >= len(p.rows) {
		return -1
	}
	return p.rows[row]
}

// Render lays out a. extent reports how far each content region is revealed;
// contentFocus marks the focused panel's content as the keyboard target.
func (p *Pane) Render(a *accordion.Accordion, extent func(*markup.Element) float64, contentFocus bool) string {
	p.offsets = make(map[*markup.Element]int)
	p.rows = p.rows[:0]
	var lines []string
	add := func(owner int, ls ...string) {
		for _, l := range ls {
			lines = append(lines, l)
			p.rows = append(p.rows, owner)
		}
	}

	if title, ok := a.Root().Attr("title"); ok && title != "" {
		add(-1, summaryOpenStyle.Render(p.truncate(title, p.width)), "")
	}
	for _, header := range a.Root().FindAll(markup.ByClass(markup.ClassHeader)) {
		add(-1, styleLines(headerStyle, p.markdown.Lines(header.Text(), p.bodyWidth()))...)
		add(-1, "")
	}

	for i, panel := range a.Panels() {
		p.offsets[panel.Host()] = len(lines)
		p.offsets[panel.Summary()] = len(lines)
		add(i, p.summary(panel))

		body := p.markdown.Lines(panel.Content().Text(), p.bodyWidth())
		shown := int(math.Ceil(extent(panel.Content()) * float64(len(body))))
		if shown <= 0 {
			continue
		}
		p.offsets[panel.Content()] = len(lines)
		focused := contentFocus && panel.Focused()
		add(i, p.content(body[:min(shown, len(body))], focused)...)
	}
	return strings.Join(lines, "\n")
}

func (p *Pane) bodyWidth() int {
	return max(10, p.width-contentIndent)
}

func (p *Pane) summary(panel *accordion.Panel) string {
	caret := "▸"
	if panel.Open() {
		caret = "▾"
	}
	style := summaryStyle
	switch {
	case panel.Disabled():
		style = summaryDisabledStyle
	case panel.Focused():
		style = summaryFocusStyle
	case panel.Open():
		style = summaryOpenStyle
	}
	line := caretStyle.Render(caret) + " " + style.Render(p.truncate(panel.Title(), p.width-2))
	if p.zones {
		line = zone.Mark(SummaryZoneID(panel.Index()), line)
	}
	return line
}

func (p *Pane) content(body []string, focused bool) []string {
	if !focused {
		text := indent.String(strings.Join(body, "\n"), contentIndent)
		return p.clip(strings.Split(text, "\n"))
	}
	bar := contentFocusStyle.Render("│") + " "
	out := make([]string, len(body))
	for i, l := range body {
		out[i] = bar + l
	}
	return p.clip(out)
}

func (p *Pane) clip(lines []string) []string {
	if p.width <= 0 {
		return lines
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, p.width, "")
	}
	return lines
}

func (p *Pane) truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func styleLines(style lipgloss.Style, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = style.Render(stripANSI(l))
	}
	return out
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}

// Extents returns an extent function backed by the accordion's transition
// engine, or by open state when the engine cannot report extents.
func Extents(a *accordion.Accordion) func(*markup.Element) float64 {
	if ex, ok := a.Engine().(transition.Extenter); ok {
		return ex.Extent
	}
	return func(content *markup.Element) float64 {
		if p := a.Panel(a.PanelContaining(content)); p != nil && p.Open() {
			return 1
		}
		return 0
	}
}

// Render lays a out once, fully settled, for non-interactive output.
func Render(a *accordion.Accordion, width int) string {
	p := NewPane(false)
	p.SetSize(width)
	return p.Render(a, Extents(a), false) + "\n"
}
