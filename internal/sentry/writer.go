package sentry

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	gosentry "github.com/getsentry/sentry-go"
)

// Level is the severity a Writer reports at.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

var breadcrumbLevels = map[Level]gosentry.Level{
	LevelInfo:    gosentry.LevelInfo,
	LevelWarning: gosentry.LevelWarning,
}

// Writer tees log output to Sentry. At LevelError each write becomes an
// event; below it, a breadcrumb attached to the next event.
type Writer struct {
	inner io.Writer
	level Level
}

func NewWriter(inner io.Writer, level Level) *Writer {
	return &Writer{inner: inner, level: level}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.inner.Write(p)
	if !enabled {
		return n, err
	}
	msg := message(p)
	if msg == "" {
		return n, err
	}
	if w.level >= LevelError {
		gosentry.CaptureMessage(msg)
		return n, err
	}
	gosentry.AddBreadcrumb(&gosentry.Breadcrumb{
		Level:    breadcrumbLevels[w.level],
		Category: "log",
		Message:  msg,
	})
	return n, err
}

// message drops the styling a terminal logger may add.
func message(p []byte) string {
	return strings.TrimSpace(ansi.Strip(string(p)))
}
