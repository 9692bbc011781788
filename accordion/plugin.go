package accordion

// Plugin is an independent behaviour attached to an accordion. Defaults are
// merged over the core defaults and under the caller's settings; Attach
// registers hooks and listeners on the accordion's registry.
type Plugin interface {
	Name() string
	Defaults() Settings
	Attach(a *Accordion)
}
