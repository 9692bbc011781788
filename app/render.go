package app

import (
	"strings"

	"github.com/kastheco/fold/config"
	"github.com/kastheco/fold/plugins"
	"github.com/kastheco/fold/transition"
	"github.com/kastheco/fold/ui"
)

// RenderFile lays the document at path out once, with every panel at its
// initial state, for output that is not a terminal.
func RenderFile(path string, cfg *config.Config, mode string, width int) (string, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	q := transition.NewQueue()
	acc, _, err := Load(path, cfg, LoadOptions{
		Mode:   mode,
		Engine: q,
		Deps:   plugins.Deps{},
	})
	if err != nil {
		return "", err
	}
	defer acc.Close()
	q.Flush()
	return ui.Render(acc, width), nil
}

// RenderHTML writes the document's markup as the accordion left it after
// construction, ARIA attributes included.
func RenderHTML(path string, cfg *config.Config, mode string) (string, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	q := transition.NewQueue()
	acc, _, err := Load(path, cfg, LoadOptions{Mode: mode, Engine: q})
	if err != nil {
		return "", err
	}
	defer acc.Close()
	q.Flush()

	var b strings.Builder
	if err := acc.Document().Render(&b); err != nil {
		return "", err
	}
	b.WriteByte('\n')
	return b.String(), nil
}
