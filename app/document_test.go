package app

import (
	"strings"
	"testing"

	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/config"
	"github.com/kastheco/fold/config/viewstore"
	"github.com/kastheco/fold/plugins"
	"github.com/kastheco/fold/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, src string, cfg *config.Config, mode string) (*accordion.Accordion, error) {
	t.Helper()
	a, _, err := Load(writeDoc(t, src), cfg, LoadOptions{Mode: mode, Engine: transition.NewQueue()})
	if a != nil {
		t.Cleanup(a.Close)
	}
	return a, err
}

func TestLoad_Frontmatter(t *testing.T) {
	src := `---
mode: free
panels:
  1:
    open: true
  3:
    disabled: true
    open: true
---
## A
a
## B
b
## C
c
`
	a, err := load(t, src, config.DefaultConfig(), "")
	require.NoError(t, err)
	assert.Equal(t, accordion.ModeFree, a.Mode(), "frontmatter mode overrides plugin defaults")
	assert.Equal(t, []int{0}, a.OpenIndices(), "closeOnDisable closes the disabled panel")
	assert.True(t, a.Panel(2).Disabled())
	assert.False(t, a.Panel(1).Disabled())
}

func TestLoad_FrontmatterOpenKeepsDisabledPanelOpen(t *testing.T) {
	src := "---\npanels:\n  2:\n    open: true\n    disabled: true\n---\n## A\na\n## B\nb\n"
	cfg := freeConfig()
	off := false
	cfg.CloseOnDisable = &off

	a, err := load(t, src, cfg, "")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, a.OpenIndices())
	assert.True(t, a.Panel(1).Disabled())
}

func TestLoad_FrontmatterMarkersCanBeCleared(t *testing.T) {
	src := "---\npanels:\n  1:\n    open: false\n    disabled: false\n---\n## A {open disabled}\na\n"
	a, err := load(t, src, freeConfig(), "")
	require.NoError(t, err)
	assert.Empty(t, a.OpenIndices())
	assert.False(t, a.Panel(0).Disabled())
}

func TestLoad_ModePrecedence(t *testing.T) {
	src := "---\nmode: free\n---\n## A\na\n"
	cfg := config.DefaultConfig()
	cfg.Plugins = []string{plugins.ToggleName}

	a, err := load(t, src, cfg, plugins.ModeToggle)
	require.NoError(t, err)
	assert.Equal(t, plugins.ModeToggle, a.Mode(), "the flag wins over frontmatter")

	cfg.Mode = plugins.ModeToggle
	a, err = load(t, src, cfg, "")
	require.NoError(t, err)
	assert.Equal(t, accordion.ModeFree, a.Mode(), "frontmatter wins over config")
}

func TestLoad_ContainerDisabled(t *testing.T) {
	src := "---\ndisabled: true\n---\n## A {open}\na\n## B\nb\n"
	a, err := load(t, src, freeConfig(), "")
	require.NoError(t, err)
	assert.True(t, a.Disabled())
	assert.Empty(t, a.OpenIndices())
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		cfg    func() *config.Config
		mode   string
		want   string
		target error
	}{
		{
			name:   "panel out of range",
			src:    "---\npanels:\n  4:\n    open: true\n---\n## A\na\n",
			want:   "no panel at position 4",
			target: accordion.ErrContract,
		},
		{
			name:   "zero position",
			src:    "---\npanels:\n  0:\n    open: true\n---\n## A\na\n",
			want:   "no panel at position 0",
			target: accordion.ErrContract,
		},
		{
			name:   "non bool property",
			src:    "---\npanels:\n  1:\n    disabled: \"yes\"\n---\n## A\na\n",
			want:   "disabled must be of type bool, got string",
			target: accordion.ErrContract,
		},
		{
			name:   "unknown property",
			src:    "---\npanels:\n  1:\n    hidden: true\n---\n## A\na\n",
			want:   `unknown property "hidden"`,
			target: accordion.ErrContract,
		},
		{
			name:   "container disabled not bool",
			src:    "---\ndisabled: 1\n---\n## A\na\n",
			want:   "disabled must be of type bool, got int",
			target: accordion.ErrContract,
		},
		{
			name:   "unknown mode",
			src:    "## A\na\n",
			mode:   "toggel",
			want:   "did you mean toggle?",
			target: accordion.ErrContract,
		},
		{
			name: "unknown plugin",
			src:  "## A\na\n",
			cfg: func() *config.Config {
				cfg := config.DefaultConfig()
				cfg.Plugins = []string{"safemod"}
				return cfg
			},
			want:   "did you mean safemode?",
			target: accordion.ErrContract,
		},
		{
			name: "bad frontmatter",
			src:  "---\nmode: [\n---\n## A\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			if tc.cfg != nil {
				cfg = tc.cfg()
			}
			_, err := load(t, tc.src, cfg, tc.mode)
			require.Error(t, err)
			if tc.want != "" {
				assert.Contains(t, err.Error(), tc.want)
			}
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load("/nonexistent/doc.md", config.DefaultConfig(), LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

func TestRestore(t *testing.T) {
	src := "## A {open}\na\n## B\nb\n## C {disabled}\nc\n## D\nd\n"
	a, err := load(t, src, config.DefaultConfig(), "")
	require.NoError(t, err)
	require.Equal(t, plugins.ModeToggle, a.Mode())

	var events int
	a.Registry().On("test", accordion.EventPanelShow, func(*accordion.Event) { events++ })

	restore(a, viewstore.View{Open: []int{1, 2, 3, 9}, Focused: 3, Mode: accordion.ModeFree})
	assert.Equal(t, []int{1, 3}, a.OpenIndices(), "disabled and missing panels are skipped")
	assert.Equal(t, 3, a.FocusedIndex())
	assert.Equal(t, accordion.ModeFree, a.Mode())
	assert.Zero(t, events, "restoring is silent")

	restore(a, viewstore.View{Mode: "gone", Focused: 12})
	assert.Equal(t, accordion.ModeFree, a.Mode(), "unavailable modes are ignored")
	assert.Equal(t, 3, a.FocusedIndex())
}

func TestRestore_ToggleMode(t *testing.T) {
	a, err := load(t, "## A\na\n## B\nb\n## C\nc\n", config.DefaultConfig(), "")
	require.NoError(t, err)
	require.Equal(t, plugins.ModeToggle, a.Mode())

	restore(a, viewstore.View{Open: []int{1, 2}, Focused: 1})
	assert.Equal(t, []int{1}, a.OpenIndices(), "only the first remembered panel opens")

	restore(a, viewstore.View{Open: []int{0, 2}, Focused: 0, Mode: accordion.ModeFree})
	assert.Equal(t, []int{0, 2}, a.OpenIndices(), "free mode restores every panel")
}

func TestRestore_ToggleModeCountsOpenDisabledPanel(t *testing.T) {
	cfg := config.DefaultConfig()
	off := false
	cfg.CloseOnDisable = &off
	a, err := load(t, "## A\na\n## B {open disabled}\nb\n## C\nc\n", cfg, "")
	require.NoError(t, err)
	require.Equal(t, []int{1}, a.OpenIndices())

	restore(a, viewstore.View{Open: []int{0, 2}, Focused: 0})
	assert.Equal(t, []int{1}, a.OpenIndices())
}

func TestSnapshot(t *testing.T) {
	a, err := load(t, "## A\na\n## B {open}\nb\n", freeConfig(), "")
	require.NoError(t, err)
	require.NoError(t, a.Focus(1))

	v := snapshot("/docs/x.md", a)
	assert.Equal(t, viewstore.View{Document: "/docs/x.md", Open: []int{1}, Focused: 1, Mode: accordion.ModeFree}, v)
}

func TestRenderFile(t *testing.T) {
	src := "---\ntitle: Handbook\n---\nIntro.\n\n## Open {open}\n\nvisible body\n\n## Closed\n\nhidden body\n"
	out, err := RenderFile(writeDoc(t, src), freeConfig(), "", 60)
	require.NoError(t, err)

	assert.Contains(t, out, "Handbook")
	assert.Contains(t, out, "Open")
	assert.Contains(t, out, "visible body")
	assert.Contains(t, out, "Closed")
	assert.NotContains(t, out, "hidden body")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
