package accordion

import "slices"

// State names shared by panels and the container.
const (
	StateInitialized = "initialized"
	StateOpen        = "open"
	StateClosed      = "closed"
	StateFocus       = "focus"
	StateBlur        = "blur"
	StateDisabled    = "disabled"
)

// StateDef declares one named state. Group states are mutually exclusive
// with each other (the single active "global" state); other states are
// independent flags that may unset named peers when set.
type StateDef struct {
	Name   string
	Class  string
	Group  bool
	Unsets []string
}

// StateListener observes a state turning on or off.
type StateListener func(name string, on bool)

// States is a small register of named boolean states with one
// mutually-exclusive group. Presentation is left to listeners.
type States struct {
	defs      []StateDef
	active    map[string]bool
	global    string
	listeners []StateListener
}

func NewStates(defs ...StateDef) *States {
	return &States{defs: defs, active: make(map[string]bool)}
}

func panelStates() *States {
	return NewStates(
		StateDef{Name: StateInitialized, Class: "fold__panel--initialized"},
		StateDef{Name: StateClosed, Class: "fold__panel--closed", Group: true},
		StateDef{Name: StateOpen, Class: "fold__panel--open", Group: true},
		StateDef{Name: StateFocus, Class: "fold__panel--focus", Unsets: []string{StateBlur}},
		StateDef{Name: StateBlur, Class: "fold__panel--blur", Unsets: []string{StateFocus}},
		StateDef{Name: StateDisabled, Class: "fold__panel--disabled"},
	)
}

func containerStates() *States {
	return NewStates(
		StateDef{Name: StateInitialized, Class: "fold--initialized"},
		StateDef{Name: StateDisabled, Class: "fold--disabled"},
	)
}

func (s *States) def(name string) (StateDef, bool) {
	for _, d := range s.defs {
		if d.Name == name {
			return d, true
		}
	}
	return StateDef{}, false
}

func (s *States) Is(name string) bool { return s.active[name] }

// Global returns the active group state, or "".
func (s *States) Global() string { return s.global }

// Set turns name on. Setting a group state turns the previous group state
// off.
func (s *States) Set(name string) {
	d, _ := s.def(name)
	if d.Group && s.global != name {
		if prev := s.global; prev != "" {
			s.change(prev, false)
		}
		s.global = name
	}
	s.change(name, true)
	for _, u := range d.Unsets {
		s.Unset(u)
	}
}

// Unset turns name off.
func (s *States) Unset(name string) {
	if s.global == name {
		s.global = ""
	}
	s.change(name, false)
}

func (s *States) change(name string, on bool) {
	if s.active[name] == on {
		return
	}
	if on {
		s.active[name] = true
	} else {
		delete(s.active, name)
	}
	for _, fn := range s.listeners {
		fn(name, on)
	}
}

// OnChange registers a listener for state transitions.
func (s *States) OnChange(fn StateListener) {
	s.listeners = append(s.listeners, fn)
}

// Active returns the names of active states in declaration order.
func (s *States) Active() []string {
	var out []string
	for _, d := range s.defs {
		if s.active[d.Name] {
			out = append(out, d.Name)
		}
	}
	return out
}

// Classes returns the presentation classes of active states.
func (s *States) Classes() []string {
	var out []string
	for _, d := range s.defs {
		if s.active[d.Name] && d.Class != "" {
			out = append(out, d.Class)
		}
	}
	return slices.Clip(out)
}

// ClassOf returns the presentation class declared for name.
func (s *States) ClassOf(name string) string {
	d, _ := s.def(name)
	return d.Class
}
