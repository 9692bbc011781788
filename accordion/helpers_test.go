package accordion

import (
	"fmt"
	"testing"

	"github.com/kastheco/fold/markup"
	"github.com/kastheco/fold/transition"
	"github.com/stretchr/testify/require"
)

type testPlugin struct {
	name     string
	defaults Settings
	attach   func(a *Accordion)
}

func (p *testPlugin) Name() string { return p.name }
func (p *testPlugin) Defaults() Settings { return p.defaults }
func (p *testPlugin) Attach(a *Accordion) {
	if p.attach != nil {
		p.attach(a)
	}
}

type recordingLogger struct {
	warnings []string
	debug    []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func specs(n int) []markup.PanelSpec {
	out := make([]markup.PanelSpec, n)
	for i := range out {
		out[i] = markup.PanelSpec{Title: fmt.Sprintf("Panel %d", i), Body: fmt.Sprintf("body %d", i)}
	}
	return out
}

func newTestAccordion(t *testing.T, panels []markup.PanelSpec, plugins ...Plugin) (*Accordion, *transition.Queue) {
	t.Helper()
	q := transition.NewQueue()
	a, err := New(markup.Build(panels...), Options{Plugins: plugins, Engine: q, Logger: &recordingLogger{}})
	require.NoError(t, err)
	return a, q
}

// recordEvents captures every lifecycle event name with its panel index.
func recordEvents(a *Accordion) *[]string {
	var log []string
	for _, name := range []string{EventPanelShow, EventPanelShown, EventPanelHide, EventPanelHidden} {
		a.Registry().On("recorder", name, func(ev *Event) {
			log = append(log, fmt.Sprintf("%s:%d", ev.Name, ev.Target.Index()))
		})
	}
	return &log
}

func newQueue() *transition.Queue { return transition.NewQueue() }
