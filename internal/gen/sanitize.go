package gen

import (
	"encoding/json"
	"sort"
)

// SanitizeObject parses raw as a JSON object and checks it against the
// contract. A non-object payload yields MalformedResponseError; missing,
// mistyped or empty required fields yield SchemaViolationError listing every
// offending field. The returned map is always freshly built; the decoded
// input is not shared with the caller.
func SanitizeObject(stage string, raw json.RawMessage, c Contract) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &MalformedResponseError{Stage: stage, Err: err}
	}
	return SanitizeMap(stage, obj, c)
}

// SanitizeMap checks an already-decoded object against the contract. Used
// directly for elements of model-produced arrays.
func SanitizeMap(stage string, obj map[string]any, c Contract) (map[string]any, error) {
	var violations []string

	out := make(map[string]any, len(c.Required)+len(c.Optional))

	for name, kind := range c.Required {
		v, ok := obj[name]
		if !ok || !matchesKind(v, kind) || isEmpty(v, kind) {
			violations = append(violations, name)
			continue
		}
		out[name] = v
	}

	for name, kind := range c.Optional {
		v, ok := obj[name]
		if ok && matchesKind(v, kind) {
			out[name] = v
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		return nil, &SchemaViolationError{Stage: stage, Fields: violations}
	}

	if !c.Strict {
		for name, v := range obj {
			if _, seen := out[name]; seen {
				continue
			}
			if _, req := c.Required[name]; req {
				continue
			}
			if _, opt := c.Optional[name]; opt {
				continue
			}
			out[name] = v
		}
	}

	return out, nil
}

func matchesKind(v any, kind Kind) bool {
	switch kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindNumber:
		_, ok := v.(float64)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindStringList:
		list, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range list {
			if _, ok := item.(string); !ok {
				return false
			}
		}
		return true
	case KindObject:
		_, ok := v.(map[string]any)
		return ok
	case KindObjectList:
		list, ok := v.([]any)
		if !ok {
			return false
		}
		for _, item := range list {
			if _, ok := item.(map[string]any); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func isEmpty(v any, kind Kind) bool {
	switch kind {
	case KindString:
		return v.(string) == ""
	case KindStringList, KindObjectList:
		return len(v.([]any)) == 0
	}
	return false
}

// AsString returns obj[name] as a string, or "" when absent. Sanitized maps
// carry only contract-typed values, so the assertion cannot fail for
// contract fields.
func AsString(obj map[string]any, name string) string {
	s, _ := obj[name].(string)
	return s
}

// AsStringList converts a sanitized []any field to []string.
func AsStringList(obj map[string]any, name string) []string {
	list, ok := obj[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// AsFloat returns obj[name] as a float64, or 0 when absent.
func AsFloat(obj map[string]any, name string) float64 {
	f, _ := obj[name].(float64)
	return f
}

// AsObjectList converts a sanitized []any field to []map[string]any.
func AsObjectList(obj map[string]any, name string) []map[string]any {
	list, ok := obj[name].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
