package accordion

import (
	"math"
	"reflect"
	"slices"
)

// Hook names.
const (
	HookCanShowPanel      = "canShowPanel"
	HookCanHidePanel      = "canHidePanel"
	HookKeyDownSelectFrom = "keyDownSelectFrom"
)

// HookFunc contributes a value to a named decision. For permission hooks a
// boolean false is the only objection; for keyDownSelectFrom a number is a
// destination index. Anything else means "no opinion".
type HookFunc func(args ...any) any

// Listener observes lifecycle events.
type Listener func(ev *Event)

// Result is one contributor's answer to a hook.
type Result struct {
	Owner string
	Value any
}

type hookEntry struct {
	owner string
	fn    HookFunc
}

type listenerEntry struct {
	owner string
	fn    Listener
}

// Registry maps hook and event names to handlers in registration order.
type Registry struct {
	hooks     map[string][]hookEntry
	listeners map[string][]listenerEntry
	owners    []string
	logger    Logger
}

func NewRegistry(logger Logger) *Registry {
	if logger == nil {
		logger = defaultLogger{}
	}
	return &Registry{
		hooks:     make(map[string][]hookEntry),
		listeners: make(map[string][]listenerEntry),
		logger:    logger,
	}
}

// Hook registers fn for the named hook on behalf of owner.
func (r *Registry) Hook(owner, name string, fn HookFunc) {
	r.hooks[name] = append(r.hooks[name], hookEntry{owner: owner, fn: fn})
	r.addOwner(owner)
}

// On registers fn for the named event on behalf of owner.
func (r *Registry) On(owner, event string, fn Listener) {
	r.listeners[event] = append(r.listeners[event], listenerEntry{owner: owner, fn: fn})
	r.addOwner(owner)
}

// Run invokes every handler for name and collects all results.
func (r *Registry) Run(name string, args ...any) []Result {
	entries := r.hooks[name]
	out := make([]Result, 0, len(entries))
	for _, e := range entries {
		out = append(out, Result{Owner: e.owner, Value: e.fn(args...)})
	}
	return out
}

// Gate runs a permission hook. It returns false and the objecting owner iff
// some result is exactly false; the first objection in registration order
// decides.
func (r *Registry) Gate(name string, args ...any) (bool, string) {
	for _, res := range r.Run(name, args...) {
		if v, ok := res.Value.(bool); ok && !v {
			return false, res.Owner
		}
	}
	return true, ""
}

// FirstInt runs an override hook and returns the first numeric result, of
// any integer or float kind. Values that are not a whole number in int range
// map to -1 so they fail index validation downstream.
func (r *Registry) FirstInt(name string, args ...any) (int, bool) {
	for _, res := range r.Run(name, args...) {
		v := reflect.ValueOf(res.Value)
		switch {
		case !v.IsValid():
			continue
		case v.CanInt():
			i := v.Int()
			if i < math.MinInt || i > math.MaxInt {
				return -1, true
			}
			return int(i), true
		case v.CanUint():
			u := v.Uint()
			if u > math.MaxInt {
				return -1, true
			}
			return int(u), true
		case v.CanFloat():
			f := v.Float()
			if f != math.Trunc(f) || f < math.MinInt || f > math.MaxInt {
				return -1, true
			}
			return int(f), true
		}
	}
	return 0, false
}

// Dispatch delivers ev to every listener and reports whether it survived,
// i.e. was not cancelled. The flag is read after all listeners ran.
func (r *Registry) Dispatch(ev *Event) bool {
	for _, l := range r.listeners[ev.Name] {
		was := ev.Cancelled()
		l.fn(ev)
		if !was && ev.Cancelled() {
			r.logger.Debugf("%s cancelled by: %s", ev.Name, l.owner)
		}
	}
	return !ev.Cancelled()
}

// Owners returns every distinct contributor in first-registration order.
func (r *Registry) Owners() []string {
	return slices.Clone(r.owners)
}

func (r *Registry) addOwner(owner string) {
	if !slices.Contains(r.owners, owner) {
		r.owners = append(r.owners, owner)
	}
}

func (r *Registry) reset() {
	r.hooks = make(map[string][]hookEntry)
	r.listeners = make(map[string][]listenerEntry)
	r.owners = nil
}
