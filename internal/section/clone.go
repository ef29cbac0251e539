package section

// Clone returns a deep copy of s.  Payload maps are copied recursively so
// the result never aliases the original.
func Clone(s Section) Section {
	out := s
	out.Content = CloneMap(s.Content)
	out.Design = CloneMap(s.Design)
	out.Effects = CloneMap(s.Effects)
	out.TextSettings = CloneMap(s.TextSettings)
	return out
}

// CloneList deep-copies a whole section list.  A nil input yields nil.
func CloneList(list []Section) []Section {
	if list == nil {
		return nil
	}
	out := make([]Section, len(list))
	for i := range list {
		out[i] = Clone(list[i])
	}
	return out
}

// CloneMap deep-copies a JSON-like map.  nil stays nil.
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

// CloneValue deep-copies one JSON-like value.
func CloneValue(v any) any { return cloneValue(v) }

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = CloneMap(t[i])
		}
		return out
	default:
		return v
	}
}
