package query

import (
	"fmt"
	"strconv"
	"strings"
)

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind literalKind
	raw  string
}

func (l literal) equals(value any) (bool, error) {
	switch l.kind {
	case litNull:
		return value == nil, nil
	case litBool:
		got, ok := boolValue(value)
		return ok && got == (l.raw == "true"), nil
	case litNumber:
		want, err := strconv.ParseFloat(l.raw, 64)
		if err != nil {
			return false, fmt.Errorf("query: invalid number %q", l.raw)
		}
		got, ok := numberValue(value)
		return ok && got == want, nil
	default:
		if value == nil {
			return false, nil
		}
		return stringValue(value) == l.raw, nil
	}
}

// lookup resolves a dotted path. An exact key wins over traversal so fields
// that contain dots stay addressable.
func lookup(fields map[string]any, path string) (any, bool) {
	if v, ok := fields[path]; ok {
		return v, true
	}

	var current any = fields
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(typed) {
				return nil, false
			}
			current = typed[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	if n, ok := numberValue(value); ok {
		return n != 0
	}
	return true
}

func boolValue(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return parsed, err == nil
	default:
		return truthy(value), true
	}
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(value)
	}
}
