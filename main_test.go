package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		modeFlag, widthFlag, htmlFlag = "", 0, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"render", "debug", "reset", "version"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"mode", "instant", "watch", "debug"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	assert.NotNil(t, renderCmd.Flags().Lookup("width"))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "fold version "+version+"\n", out)
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("## Shown {open}\n\nbody\n\n## Folded\n\nsecret\n"), 0o644))

	out, err := execute(t, "render", "--width", "40", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Shown")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "Folded")
	assert.NotContains(t, out, "secret")
}

func TestRenderCommand_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("## Shown {open}\n\nbody\n\n## Folded\n\nsecret\n"), 0o644))

	out, err := execute(t, "render", "--html", path)
	require.NoError(t, err)
	assert.Contains(t, out, `<section is="fold"`)
	assert.Contains(t, out, `aria-expanded="true"`)
	assert.Contains(t, out, `aria-expanded="false"`)
	assert.Contains(t, out, `role="region"`)
}

func TestRenderCommand_UnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("## A\na\n"), 0o644))

	_, err := execute(t, "render", "--mode", "toggel", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean toggle?")
}

func TestDebugCommand(t *testing.T) {
	out, err := execute(t, "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "Config: ")
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "views.db")
	assert.Contains(t, out, `"motion": "full"`)
}

func TestResetCommand(t *testing.T) {
	out, err := execute(t, "reset")
	require.NoError(t, err)
	assert.Equal(t, "Forgot 0 document view(s)\n", out)
}
