package accordion

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction reports a host that cannot back an accordion or panel.
	// Nothing is returned alongside it; there are no half-built objects.
	ErrConstruction = errors.New("construction error")
	// ErrContract reports a value outside a setter's domain: a non-bool for
	// open/disabled, an unknown mode, an out-of-range focus index.
	ErrContract = errors.New("contract violation")
)

func constructionErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConstruction}, args...)...)
}

func contractErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrContract}, args...)...)
}
