// Package rawconfig holds user-supplied configuration before defaulting and
// provides dotted-path lookups over it.
//
// A value is missing only when its path does not resolve. Explicit false, 0
// or "" are present values and must never be replaced by a default.
package rawconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawConfig is an arbitrarily nested configuration document.
type RawConfig map[string]any

// Normalize converts a decoded document (TOML, YAML or JSON) into a
// JSON-compatible tree. Numbers become float64, tables become
// map[string]any and arrays become []any.
func Normalize(doc any) (RawConfig, error) {
	if doc == nil {
		return RawConfig{}, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var raw RawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config root must be an object: %w", err)
	}
	if raw == nil {
		raw = RawConfig{}
	}
	return raw, nil
}

// Lookup returns the value at a dotted path and whether it was found.
// A nil value counts as missing.
func (r RawConfig) Lookup(path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}
	var cur any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Has reports whether path resolves to a value.
func (r RawConfig) Has(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Value returns the value at path or def when missing.
func (r RawConfig) Value(path string, def any) any {
	if v, ok := r.Lookup(path); ok {
		return v
	}
	return def
}

// String returns the string at path. Missing or non-string values yield def.
func (r RawConfig) String(path, def string) string {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Bool returns the boolean at path. Missing or non-boolean values yield def.
func (r RawConfig) Bool(path string, def bool) bool {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Int returns the integer at path. Every numeric representation produced by
// the JSON, TOML and YAML decoders is accepted, as are numeric strings.
func (r RawConfig) Int(path string, def int) int {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		return def
	}
	return n
}

// Map returns a deep copy of the table at path, or of def when missing.
func (r RawConfig) Map(path string, def map[string]any) map[string]any {
	v, ok := r.Lookup(path)
	if ok {
		if m, ok := asMap(v); ok {
			return CloneMap(m)
		}
	}
	return CloneMap(def)
}

// Slice returns a deep copy of the array at path, or def when missing.
func (r RawConfig) Slice(path string, def []any) []any {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	switch s := v.(type) {
	case []any:
		return cloneValue(s).([]any)
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	}
	return def
}

// StringSlice returns the string entries of the array at path. A single
// string is treated as a one-element list. Non-string entries are skipped.
func (r RawConfig) StringSlice(path string) []string {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case string:
		return []string{s}
	case []string:
		return append([]string(nil), s...)
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set stores value at a dotted path, creating intermediate tables. An
// existing non-table value on the way is replaced.
func (r RawConfig) Set(path string, value any) {
	if r == nil || path == "" {
		return
	}
	keys := strings.Split(path, ".")
	cur := map[string]any(r)
	for _, key := range keys[:len(keys)-1] {
		next, ok := asMap(cur[key])
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = value
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawConfig:
		return map[string]any(m), true
	}
	return nil, false
}

// CloneMap returns a deep copy of m. Nested tables and arrays are copied
// too; other values are shared.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case RawConfig:
		return RawConfig(CloneMap(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
