package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/kastheco/fold/log"
	"github.com/muesli/reflow/wordwrap"
)

type renderKey struct {
	width int
	text  string
}

// Markdown renders panel bodies with glamour, caching by width and source.
type Markdown struct {
	style     string
	renderers map[int]*glamour.TermRenderer
	cache     map[renderKey][]string
}

func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = "dark"
	}
	return &Markdown{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
		cache:     make(map[renderKey][]string),
	}
}

// Lines returns text rendered to at most width columns, split into lines.
// Leading and trailing blank lines are dropped.
func (m *Markdown) Lines(text string, width int) []string {
	if strings.TrimSpace(text) == "" || width <= 0 {
		return nil
	}
	key := renderKey{width: width, text: text}
	if lines, ok := m.cache[key]; ok {
		return lines
	}

	rendered, err := m.render(text, width)
	if err != nil {
		log.WarningLog.Printf("markdown render failed, falling back to plain text: %v", err)
		rendered = wordwrap.String(text, width)
	}
	lines := trimBlank(strings.Split(rendered, "\n"))
	m.cache[key] = lines
	return lines
}

func (m *Markdown) render(text string, width int) (string, error) {
	r, ok := m.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		m.renderers[width] = r
	}
	return r.Render(text)
}

// Reset drops cached output, e.g. after the document is reloaded.
func (m *Markdown) Reset() {
	m.cache = make(map[renderKey][]string)
}

func trimBlank(lines []string) []string {
	blank := func(s string) bool { return strings.TrimSpace(stripANSI(s)) == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}
