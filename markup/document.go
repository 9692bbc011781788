package markup

import (
	"io"

	"golang.org/x/net/html"
)

// FocusListener observes focus moving from prev to next. Either may be nil.
type FocusListener func(prev, next *Element)

// Document owns a root element and tracks which element has focus.
type Document struct {
	Root *Element

	active    *Element
	listeners []FocusListener
}

func NewDocument(root *Element) *Document {
	return &Document{Root: root}
}

func (d *Document) ActiveElement() *Element { return d.active }

// OnFocus registers fn and returns a function that removes it.
func (d *Document) OnFocus(fn FocusListener) func() {
	d.listeners = append(d.listeners, fn)
	idx := len(d.listeners) - 1
	return func() {
		if idx < len(d.listeners) {
			d.listeners[idx] = nil
		}
	}
}

// Focus moves focus to el. Focusing the active element is a no-op.
func (d *Document) Focus(el *Element) {
	if el == d.active {
		return
	}
	prev := d.active
	d.active = el
	for _, fn := range d.listeners {
		if fn != nil {
			fn(prev, el)
		}
	}
}

// Blur clears focus.
func (d *Document) Blur() {
	d.Focus(nil)
}

// Render writes the document as HTML, with the attributes the accordion
// maintains (open, aria-expanded, aria-disabled and so on) as they stand.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.Root.Node())
}
