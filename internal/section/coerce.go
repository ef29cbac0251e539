package section

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coercion helpers for untrusted JSON-like values.  None of them fail;
// anything unusable reads as the zero value.

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	}
	return nil
}

// firstList returns the first non-empty array found under keys, in order.
func firstList(m map[string]any, keys ...string) []any {
	for _, k := range keys {
		if l := asList(m[k]); len(l) > 0 {
			return l
		}
	}
	return nil
}

// jsonList accepts either an array or a string holding a JSON array.
func jsonList(v any) []any {
	if s, ok := v.(string); ok {
		var out []any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil
		}
		return out
	}
	return asList(v)
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	}
	return ""
}

// str returns the first non-empty string under keys.
func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := scalarString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// strOr is str with a default for the all-empty case.
func strOr(m map[string]any, def string, keys ...string) string {
	if s := str(m, keys...); s != "" {
		return s
	}
	return def
}

func number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numOr(m map[string]any, def float64, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := number(m[k]); ok {
			return f
		}
	}
	return def
}

func intOr(m map[string]any, def int, keys ...string) int {
	for _, k := range keys {
		if f, ok := number(m[k]); ok {
			return int(f)
		}
	}
	return def
}

func boolOr(m map[string]any, def bool, keys ...string) bool {
	for _, k := range keys {
		switch t := m[k].(type) {
		case bool:
			return t
		case string:
			if b, err := strconv.ParseBool(t); err == nil {
				return b
			}
		}
	}
	return def
}

// strList reads an array of scalars as strings, skipping blanks.
func strList(v any) []string {
	var out []string
	for _, x := range asList(v) {
		if s := scalarString(x); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func anyList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// putIf sets m[k] only for non-empty strings.
func putIf(m map[string]any, k, v string) {
	if v != "" {
		m[k] = v
	}
}
