package sentry

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_Passthrough(t *testing.T) {
	for _, level := range []Level{LevelInfo, LevelWarning, LevelError} {
		var buf bytes.Buffer
		w := NewWriter(&buf, level)

		msg := []byte("WARN panel 2 vetoed\n")
		n, err := w.Write(msg)
		assert.NoError(t, err)
		assert.Equal(t, len(msg), n)
		assert.Equal(t, string(msg), buf.String())
	}
}

func TestWriter_InnerErrorIsReturned(t *testing.T) {
	w := NewWriter(failingWriter{}, LevelError)
	_, err := w.Write([]byte("x"))
	assert.EqualError(t, err, "disk full")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "ERROR reload failed", message([]byte("\x1b[1;31mERROR\x1b[0m reload failed\n")))
	assert.Empty(t, message([]byte("  \n")))
}
