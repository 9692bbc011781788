package markup

// Markup conventions for accordion hosts. A container carries is="fold";
// each panel host carries is="fold-panel" and holds exactly one summary and
// one content element.
const (
	AttrIs       = "is"
	ContainerIs  = "fold"
	PanelIs      = "fold-panel"
	ClassSummary = "fold__summary"
	ClassContent = "fold__content"
	ClassHeader  = "fold__header"
)

// PanelSpec describes one panel for Build.
type PanelSpec struct {
	Title    string
	Body     string
	Open     bool
	Disabled bool
}

// NewPanel builds a well-formed panel host.
func NewPanel(spec PanelSpec) *Element {
	host := New("details").SetAttr(AttrIs, PanelIs)
	if spec.Open {
		host.SetAttr("open", "")
	}
	summary := New("summary").AddClass(ClassSummary).SetText(spec.Title)
	if spec.Disabled {
		summary.SetAttr("aria-disabled", "true")
	}
	content := New("div").AddClass(ClassContent).SetText(spec.Body)
	return host.Append(summary, content)
}

// NewContainer builds a container root around the given panel hosts.
func NewContainer(panels ...*Element) *Element {
	return New("section").SetAttr(AttrIs, ContainerIs).Append(panels...)
}

// Build returns a document holding a container with one panel per spec.
func Build(specs ...PanelSpec) *Document {
	hosts := make([]*Element, 0, len(specs))
	for _, s := range specs {
		hosts = append(hosts, NewPanel(s))
	}
	return NewDocument(NewContainer(hosts...))
}
