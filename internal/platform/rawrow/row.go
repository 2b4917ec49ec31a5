// Package rawrow provides synonym-aware field access over loosely typed
// provider rows. Upstream feeds rename columns between seasons and API
// versions, so every read goes through an ordered candidate-key lookup
// instead of a direct map index.
package rawrow

import (
	"strconv"
	"strings"
)

// Row is one record from an upstream feed, either a CSV row keyed by
// header name or a decoded JSON object.
type Row map[string]any

// Lookup returns the first present, non-empty value among keys, in the
// given priority order. The boolean is the only authoritative absence
// signal; callers must never treat a zero value as "missing".
func Lookup(row Row, keys ...string) (any, bool) {
	if len(row) == 0 {
		return nil, false
	}
	for _, key := range keys {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// String returns the trimmed string form of the first matching key, or ""
// when every candidate is absent.
func String(row Row, keys ...string) string {
	v, ok := Lookup(row, keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// Float coerces the first matching value to a float64. Absent and
// non-numeric values both coerce to 0 so scoring arithmetic stays total.
func Float(row Row, keys ...string) float64 {
	v, ok := Lookup(row, keys...)
	if !ok {
		return 0
	}
	return toFloat(v)
}

// FloatOK is Float plus an explicit presence flag, for callers that must
// distinguish "stat absent" from "stat is zero" (precomputed point columns).
func FloatOK(row Row, keys ...string) (float64, bool) {
	v, ok := Lookup(row, keys...)
	if !ok {
		return 0, false
	}
	return toFloat(v), true
}

// FloatValue coerces a single already-extracted value the way Float does,
// for callers accumulating values outside a Row.
func FloatValue(v any) float64 {
	return toFloat(v)
}

// Int coerces like Float, truncating toward zero.
func Int(row Row, keys ...string) int {
	return int(Float(row, keys...))
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
