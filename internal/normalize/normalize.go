// Package normalize holds the pure coercion helpers the validators use to
// read permissively from JSON-shaped specs and answers. Every helper returns
// a defined fallback instead of failing.
package normalize

import (
	"strconv"
	"strings"
)

// TypeKey canonicalizes a question type key by replacing hyphens with
// underscores (e.g. "case-study" -> "case_study"). Blank input passes
// through unchanged; it never substitutes a default type.
func TypeKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return key
	}
	return strings.ReplaceAll(key, "-", "_")
}

// Text normalizes free text for comparison: lowercase and trimmed.
func Text(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// CollapseSpace lowercases and collapses all whitespace runs to single
// spaces. Used for copy detection between prompt and answer.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ParseNumeric coerces a JSON value to a float64. Numbers pass through,
// strings are parsed, anything else yields def.
func ParseNumeric(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// Number reads a numeric field from a JSON object. The bool reports whether
// the field was present and numeric (or a parseable numeric string).
func Number(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false
	}
	switch v.(type) {
	case float64, float32, int, int64:
		return ParseNumeric(v, 0), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.(string)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// GetString reads a string field from a JSON object, or "" if absent or
// not a string.
func GetString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// AnySlice coerces a JSON value to a slice. Slices pass through, nil yields
// an empty slice, and a scalar is wrapped as a single element.
func AnySlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case nil:
		return nil
	default:
		return []any{v}
	}
}

// StringSlice coerces a JSON value to a string slice, keeping only string
// elements.
func StringSlice(v any) []string {
	var out []string
	for _, e := range AnySlice(v) {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MapSlice coerces a JSON value to a slice of objects, keeping only
// object elements.
func MapSlice(v any) []map[string]any {
	var out []map[string]any
	for _, e := range AnySlice(v) {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// PairSlice coerces a JSON value to a slice of sequences, keeping only
// sequence elements. Used for match-the-following pairs.
func PairSlice(v any) [][]any {
	var out [][]any
	for _, e := range AnySlice(v) {
		if p, ok := e.([]any); ok {
			out = append(out, p)
		}
	}
	return out
}
