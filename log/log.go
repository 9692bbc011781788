package log

import (
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
	"github.com/kastheco/fold/internal/sentry"
)

// LogFileName is the file under os.TempDir() that all loggers write to.
const LogFileName = "fold.log"

var (
	InfoLog    = clog.New(io.Discard)
	WarningLog = clog.New(io.Discard)
	ErrorLog   = clog.New(io.Discard)
)

var logFile *os.File

// Initialize opens the log file and points the global loggers at it. Until it
// is called every logger discards its output, so library users of the
// accordion packages stay silent. With telemetry on, errors are also sent to
// Sentry and the other levels become breadcrumbs.
func Initialize(debug, telemetry bool) {
	path := filepath.Join(os.TempDir(), LogFileName)
	// Stderr when the log file cannot be opened.
	var w io.Writer = os.Stderr
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		logFile = f
		w = f
	}
	if !telemetry {
		setup(w, w, w, debug)
		return
	}
	setup(
		sentry.NewWriter(w, sentry.LevelInfo),
		sentry.NewWriter(w, sentry.LevelWarning),
		sentry.NewWriter(w, sentry.LevelError),
		debug,
	)
}

func setup(info, warning, errs io.Writer, debug bool) {
	level := clog.InfoLevel
	if debug {
		level = clog.DebugLevel
	}
	InfoLog = clog.NewWithOptions(info, clog.Options{Prefix: "INFO", Level: level, ReportTimestamp: true})
	WarningLog = clog.NewWithOptions(warning, clog.Options{Prefix: "WARN", Level: level, ReportTimestamp: true})
	ErrorLog = clog.NewWithOptions(errs, clog.Options{Prefix: "ERROR", Level: level, ReportTimestamp: true, ReportCaller: true})
}

// Close flushes and closes the log file. Safe to call when Initialize failed
// or was never called.
func Close() {
	if logFile == nil {
		return
	}
	_ = logFile.Close()
	logFile = nil
	InfoLog = clog.New(io.Discard)
	WarningLog = clog.New(io.Discard)
	ErrorLog = clog.New(io.Discard)
}

// Path returns the location of the log file.
func Path() string {
	return filepath.Join(os.TempDir(), LogFileName)
}
