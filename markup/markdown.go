package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Frontmatter is the optional YAML block at the top of a markdown document.
// Values under Disabled and Panels are left untyped; the accordion setters
// validate them.
type Frontmatter struct {
	Title    string                 `yaml:"title"`
	Mode     string                 `yaml:"mode"`
	Disabled any                    `yaml:"disabled"`
	Panels   map[int]map[string]any `yaml:"panels"`
}

var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return parserInstance
}

var markerRegex = regexp.MustCompile(`\s*\{([a-z ]+)\}\s*$`)

type headingSpan struct {
	title      string
	start, end int
}

// FromMarkdown builds an accordion document from markdown. Every level-2
// heading opens a panel whose content runs until the next level-2 heading.
// A trailing "{open}" or "{disabled}" marker on the heading sets the initial
// state. Anything before the first level-2 heading becomes a header element.
func FromMarkdown(src []byte) (*Document, Frontmatter, error) {
	var fm Frontmatter
	body, raw := splitFrontmatter(src)
	if raw != nil {
		if err := yaml.Unmarshal(raw, &fm); err != nil {
			return nil, fm, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	root := New("section").SetAttr(AttrIs, ContainerIs)
	if fm.Title != "" {
		root.SetAttr("title", fm.Title)
	}

	doc := getParser().Parser().Parse(text.NewReader(body))
	var spans []headingSpan
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 || h.Lines().Len() == 0 {
			continue
		}
		lines := h.Lines()
		var title strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if i > 0 {
				title.WriteByte(' ')
			}
			title.Write(bytes.TrimSpace(seg.Value(body)))
		}
		first, last := lines.At(0), lines.At(lines.Len()-1)
		start := lineStart(body, first.Start)
		end := lineEnd(body, last.Stop)
		if body[start] != '#' {
			end = skipUnderline(body, end)
		}
		spans = append(spans, headingSpan{title: title.String(), start: start, end: end})
	}

	preambleEnd := len(body)
	if len(spans) > 0 {
		preambleEnd = spans[0].start
	}
	if preamble := strings.TrimSpace(string(body[:preambleEnd])); preamble != "" {
		root.Append(New("header").AddClass(ClassHeader).SetText(preamble))
	}

	for i, s := range spans {
		contentEnd := len(body)
		if i+1 < len(spans) {
			contentEnd = spans[i+1].start
		}
		spec := PanelSpec{Body: strings.Trim(string(body[s.end:contentEnd]), "\n")}
		spec.Title, spec.Open, spec.Disabled = parseMarkers(s.title)
		root.Append(NewPanel(spec))
	}
	return NewDocument(root), fm, nil
}

func parseMarkers(title string) (string, bool, bool) {
	m := markerRegex.FindStringSubmatchIndex(title)
	if m == nil {
		return title, false, false
	}
	var open, disabled bool
	for _, f := range strings.Fields(title[m[2]:m[3]]) {
		switch f {
		case "open":
			open = true
		case "disabled":
			disabled = true
		}
	}
	return strings.TrimSpace(title[:m[0]]), open, disabled
}

func splitFrontmatter(src []byte) (body, raw []byte) {
	const fence = "---"
	if !bytes.HasPrefix(src, []byte(fence+"\n")) && !bytes.HasPrefix(src, []byte(fence+"\r\n")) {
		return src, nil
	}
	rest := src[bytes.IndexByte(src, '\n')+1:]
	for off := 0; off < len(rest); {
		nl := bytes.IndexByte(rest[off:], '\n')
		line := rest[off:]
		next := len(rest)
		if nl >= 0 {
			line = rest[off : off+nl]
			next = off + nl + 1
		}
		if string(bytes.TrimRight(line, "\r")) == fence {
			return rest[next:], rest[:off]
		}
		off = next
	}
	return src, nil
}

func lineStart(b []byte, pos int) int {
	for pos > 0 && b[pos-1] != '\n' {
		pos--
	}
	return pos
}

func lineEnd(b []byte, pos int) int {
	for pos < len(b) && b[pos] != '\n' {
		pos++
	}
	if pos < len(b) {
		pos++
	}
	return pos
}

func skipUnderline(b []byte, pos int) int {
	end := lineEnd(b, pos)
	line := strings.TrimSpace(string(b[pos:end]))
	if line != "" && strings.Trim(line, "-=") == "" {
		return end
	}
	return pos
}
