package accordion

import "github.com/kastheco/fold/markup"

// Lifecycle notifications.
const (
	EventInitialized         = "initialized"
	EventChildrenInitialized = "children.initialized"
	EventPanelShow           = "panel.show"
	EventPanelShown          = "panel.shown"
	EventPanelHide           = "panel.hide"
	EventPanelHidden         = "panel.hidden"
	EventScrollBefore        = "scroll.before"
	EventScrollAfter         = "scroll.after"
)

// Event is a notification passed by reference to every listener in
// registration order. Only cancelable events can be cancelled.
type Event struct {
	Name string
	// Target is the panel the event concerns, nil for container events.
	Target *Panel
	// Element carries an element payload, e.g. the scroll target.
	Element *markup.Element

	cancelable bool
	cancelled  bool
}

func NewEvent(name string, target *Panel, cancelable bool) *Event {
	return &Event{Name: name, Target: target, cancelable: cancelable}
}

func (e *Event) Cancelable() bool { return e.cancelable }

// Cancel vetoes the event. It has no effect on non-cancelable events.
func (e *Event) Cancel() {
	if e.cancelable {
		e.cancelled = true
	}
}

func (e *Event) Cancelled() bool { return e.cancelled }
