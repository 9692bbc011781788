package accordion

import "github.com/kastheco/fold/log"

// Logger receives diagnostics such as which observer vetoed a transition.
// *github.com/charmbracelet/log.Logger satisfies it.
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

// defaultLogger resolves the package loggers at call time so it follows
// log.Initialize.
type defaultLogger struct{}

func (defaultLogger) Warnf(format string, args ...any)  { log.WarningLog.Warnf(format, args...) }
func (defaultLogger) Debugf(format string, args ...any) { log.InfoLog.Debugf(format, args...) }
