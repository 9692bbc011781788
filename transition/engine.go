// Package transition animates the open/closed extent of panel content.
//
// Engines never call done synchronously: completion is always delivered on a
// later Step or Flush, even for zero-duration transitions, and exactly once
// per request.
package transition

import (
	"time"

	"github.com/kastheco/fold/markup"
)

// Engine reveals or collapses a target over a duration.
type Engine interface {
	Reveal(target *markup.Element, d time.Duration, easing string, done func())
	Collapse(target *markup.Element, d time.Duration, easing string, done func())
}

// Settler is implemented by engines that can place a target at its final
// extent without a transition. Used for initial state.
type Settler interface {
	Settle(target *markup.Element, open bool)
}

// Extenter reports how far a target is revealed, from 0 (collapsed) to 1.
type Extenter interface {
	Extent(target *markup.Element) float64
}

func goal(open bool) float64 {
	if open {
		return 1
	}
	return 0
}
