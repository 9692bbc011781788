package accordion

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// Settings is a nested configuration map addressed by dotted paths, e.g.
// "panel.slideOptions.speed".
type Settings map[string]any

// Get returns the value at path, or nil.
func (s Settings) Get(path string) any {
	var cur any = map[string]any(s)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur, ok = m[key]
		if !ok {
			return nil
		}
	}
	return cur
}

// Set stores v at path, creating intermediate maps.
func (s Settings) Set(path string, v any) {
	keys := strings.Split(path, ".")
	m := map[string]any(s)
	for _, key := range keys[:len(keys)-1] {
		next, ok := asMap(m[key])
		if !ok {
			next = make(map[string]any)
			m[key] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = v
}

// Sub returns the nested settings at path. The result shares storage with s.
func (s Settings) Sub(path string) Settings {
	m, ok := asMap(s.Get(path))
	if !ok {
		return Settings{}
	}
	return Settings(m)
}

func (s Settings) String(path string) string {
	v, _ := s.Get(path).(string)
	return v
}

func (s Settings) Bool(path string) bool {
	v, _ := s.Get(path).(bool)
	return v
}

// Int accepts any integer or float kind, as produced by TOML, YAML and JSON
// decoders.
func (s Settings) Int(path string) int {
	switch v := s.Get(path).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func (s Settings) Strings(path string) []string {
	switch v := s.Get(path).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Clone deep-copies nested maps and slices.
func (s Settings) Clone() Settings {
	return Settings(cloneMap(s))
}

// MergeSettings layers settings left to right; later layers win, nested maps
// merge key by key and slices are replaced whole. Inputs are not modified.
func MergeSettings(layers ...Settings) (Settings, error) {
	out := map[string]any{}
	for i, layer := range layers {
		if layer == nil {
			continue
		}
		if err := mergo.Merge(&out, cloneMap(layer), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge settings layer %d: %w", i, err)
		}
	}
	return Settings(out), nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Settings:
		return m, true
	}
	return nil, false
}

// cloneMap normalises nested Settings to map[string]any so mergo sees one
// map type throughout.
func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Settings:
		return cloneMap(t)
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
