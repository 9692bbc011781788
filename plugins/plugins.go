package plugins

import (
	"fmt"

	"github.com/kastheco/fold/accordion"
	"github.com/kastheco/fold/internal/suggest"
)

// Deps are the view collaborators some plugins need. Either may be nil, in
// which case the dependent plugin stays inert.
type Deps struct {
	Holder   PositionHolder
	Scroller Scroller
}

// Names lists every known plugin in registration order.
func Names() []string {
	return []string{ToggleName, SafemodeName, ScrollerName}
}

// ByName builds the plugins named in names, in that order.
func ByName(names []string, deps Deps) ([]accordion.Plugin, error) {
	out := make([]accordion.Plugin, 0, len(names))
	for _, name := range names {
		switch name {
		case ToggleName:
			out = append(out, NewToggle())
		case SafemodeName:
			out = append(out, NewSafemode(deps.Holder))
		case ScrollerName:
			out = append(out, NewScrollFocus(deps.Scroller))
		default:
			return nil, fmt.Errorf("%w: unknown plugin %q%s", accordion.ErrContract, name, suggest.Hint(name, Names()))
		}
	}
	return out, nil
}
