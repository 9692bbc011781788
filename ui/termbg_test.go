package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetTerminalBackground(t *testing.T) {
	var buf bytes.Buffer
	restore := SetTerminalBackground(&buf, BaseHex)
	assert.Equal(t, "\033]11;#232136\033\\", buf.String())

	buf.Reset()
	restore()
	assert.Equal(t, "\033]111\033\\", buf.String())
}

func TestSetTerminalBackground_EmptyColor(t *testing.T) {
	var buf bytes.Buffer
	restore := SetTerminalBackground(&buf, "")
	assert.Zero(t, buf.Len())
	restore()
	assert.Zero(t, buf.Len())
}

func TestFillBackground(t *testing.T) {
	assert.Equal(t, "a\n\n", FillBackground("a", 3))
	assert.Equal(t, "a\nb", FillBackground("a\nb", 1))
	assert.Equal(t, "a", FillBackground("a", 0))
}
