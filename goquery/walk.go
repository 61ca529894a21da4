// Package goquery provides HTML-backed implementations of recipeclip
// carriers, the structural fingerprinter, and the publisher site parser.
package goquery

import (
	"encoding/json"
	"sort"
)

// The embedded state blobs and framework payloads these helpers walk have no
// contractually stable shape. Access is therefore modeled as best-effort path
// walks over untyped structures, never as typed deserialization: a missing or
// reshaped node yields (zero, false) instead of an error.

// decode parses a JSON document into untyped nested structures.
func decode(raw string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}
	return v, true
}

// at walks one step into a nested structure. Keys address maps; indexes
// address arrays.
func at(v any, key any) (any, bool) {
	switch k := key.(type) {
	case string:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		child, ok := m[k]
		return child, ok
	case int:
		a, ok := v.([]any)
		if !ok || k < 0 || k >= len(a) {
			return nil, false
		}
		return a[k], true
	}
	return nil, false
}

// walk follows a path of map keys and array indexes.
func walk(v any, path ...any) (any, bool) {
	cur := v
	for _, key := range path {
		child, ok := at(cur, key)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

// stringAt returns the non-empty string at the end of a path.
func stringAt(v any, path ...any) (string, bool) {
	node, ok := walk(v, path...)
	if !ok {
		return "", false
	}
	s, ok := node.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// firstValue returns the value of the lexically smallest key of a map node.
// Item collections in state blobs are keyed by opaque post IDs; sorting keeps
// the walk deterministic when more than one item is present.
func firstValue(v any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return m[keys[0]], true
}

// mapValueStrings gathers the string field named field from every value of
// the map at path, in sorted key order.
func mapValueStrings(v any, field string, path ...any) []string {
	node, ok := walk(v, path...)
	if !ok {
		return nil
	}
	m, ok := node.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		if s, ok := stringAt(m[k], field); ok {
			out = append(out, s)
		}
	}
	return out
}
