package markup

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Element is an element node in a host document. The markup lives in an
// x/net/html node tree; Element adds class helpers, matching and a text
// payload held as the node's leading text child. Only the accordion
// conventions in this package give any of it meaning.
type Element struct {
	node *html.Node
	tree *tree
}

// tree maps the nodes of one connected element tree back to their wrappers,
// so every element node has exactly one *Element.
type tree struct {
	elements map[*html.Node]*Element
}

// New creates a detached element.
func New(tag string) *Element {
	e := &Element{node: &html.Node{Type: html.ElementNode, Data: tag}}
	e.tree = &tree{elements: map[*html.Node]*Element{e.node: e}}
	return e
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

func (e *Element) Tag() string { return e.node.Data }

// Append attaches children in order and returns e for chaining. A child that
// already has a parent is moved.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil || c.Contains(e) {
			continue
		}
		if c.node.Parent != nil {
			c.node.Parent.RemoveChild(c.node)
		}
		e.node.AppendChild(c.node)
		c.adopt(e.tree)
	}
	return e
}

// adopt moves e and its descendants into t.
func (e *Element) adopt(t *tree) {
	var sub []*Element
	e.walk(func(el *Element) bool {
		sub = append(sub, el)
		return true
	})
	for _, el := range sub {
		if el.tree == t {
			continue
		}
		delete(el.tree.elements, el.node)
		el.tree = t
		t.elements[el.node] = el
	}
}

func (e *Element) Parent() *Element {
	if e.node.Parent == nil {
		return nil
	}
	return e.tree.elements[e.node.Parent]
}

func (e *Element) Children() []*Element {
	var out []*Element
	for n := e.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			out = append(out, e.tree.elements[n])
		}
	}
	return out
}

func (e *Element) attrIndex(name string) int {
	return slices.IndexFunc(e.node.Attr, func(a html.Attribute) bool { return a.Key == name })
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	i := e.attrIndex(name)
	if i < 0 {
		return "", false
	}
	return e.node.Attr[i].Val, true
}

func (e *Element) HasAttr(name string) bool {
	return e.attrIndex(name) >= 0
}

// SetAttr sets an attribute. Setting "class" replaces the class list.
func (e *Element) SetAttr(name, value string) *Element {
	if i := e.attrIndex(name); i >= 0 {
		e.node.Attr[i].Val = value
		return e
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	return e
}

func (e *Element) RemoveAttr(name string) {
	if i := e.attrIndex(name); i >= 0 {
		e.node.Attr = slices.Delete(e.node.Attr, i, i+1)
	}
}

func (e *Element) setClasses(classes []string) {
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

func (e *Element) AddClass(names ...string) *Element {
	classes := e.Classes()
	for _, n := range names {
		if n != "" && !slices.Contains(classes, n) {
			classes = append(classes, n)
		}
	}
	e.setClasses(classes)
	return e
}

func (e *Element) RemoveClass(name string) {
	e.setClasses(slices.DeleteFunc(e.Classes(), func(c string) bool { return c == name }))
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes(), name)
}

// ToggleClass adds or removes name depending on on.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// SetText replaces the element's own text payload.
func (e *Element) SetText(text string) *Element {
	for n := e.node.FirstChild; n != nil; {
		next := n.NextSibling
		if n.Type == html.TextNode {
			e.node.RemoveChild(n)
		}
		n = next
	}
	if text != "" {
		e.node.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, e.node.FirstChild)
	}
	return e
}

// OwnText returns the text payload of e without its descendants.
func (e *Element) OwnText() string {
	var b strings.Builder
	for n := e.node.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return b.String()
}

// Text returns the text of e followed by its descendants in document order,
// separated by newlines.
func (e *Element) Text() string {
	var parts []string
	e.walk(func(el *Element) bool {
		if t := el.OwnText(); t != "" {
			parts = append(parts, t)
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Closest returns the nearest ancestor-or-self matching m, or nil.
func (e *Element) Closest(m Matcher) *Element {
	for n := e; n != nil; n = n.Parent() {
		if m(n) {
			return n
		}
	}
	return nil
}

// FindAll returns every descendant of e (excluding e) matching m, in
// document order.
func (e *Element) FindAll(m Matcher) []*Element {
	var out []*Element
	for _, c := range e.Children() {
		c.walk(func(el *Element) bool {
			if m(el) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

func (e *Element) walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		c.walk(fn)
	}
}

// Matcher selects elements.
type Matcher func(*Element) bool

func ByClass(name string) Matcher {
	return func(e *Element) bool { return e.HasClass(name) }
}

func ByAttr(name, value string) Matcher {
	return func(e *Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

func ByTag(tag string) Matcher {
	return func(e *Element) bool { return e.Tag() == tag }
}
