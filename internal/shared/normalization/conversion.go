package normalization

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible.
// Numbers are rendered without exponent so numeric identifiers survive.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

// AsInt coerces numeric values supported by the REST layer into Go ints.
// Numeric strings are accepted because some backends serialize ids as text.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0
		}
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return int(n)
		}
		if f, err := typed.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(typed)); err == nil {
			return n
		}
	}
	return 0
}

// AsInterfaceSlice normalizes different collection types into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload unwraps the {"data": {...}} envelope into a plain map for normalization routines.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := Lookup(typed, "data"); ok {
			if nested, ok := data.(map[string]any); ok {
				return nested
			}
		}
		return typed
	}
	return nil
}

// Lookup returns the first present key among names. Exact matches win; otherwise keys are
// compared case-insensitively so PascalCase and camelCase payloads resolve the same way.
func Lookup(raw map[string]any, names ...string) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	for _, name := range names {
		if value, ok := raw[name]; ok && value != nil {
			return value, true
		}
	}
	for _, name := range names {
		for key, value := range raw {
			if value != nil && strings.EqualFold(key, name) {
				return value, true
			}
		}
	}
	return nil, false
}

// StringField is Lookup followed by AsString.
func StringField(raw map[string]any, names ...string) string {
	value, _ := Lookup(raw, names...)
	return AsString(value)
}

// IntField is Lookup followed by AsInt.
func IntField(raw map[string]any, names ...string) int {
	value, _ := Lookup(raw, names...)
	return AsInt(value)
}

// HasField reports whether any of names is present with a non-nil value.
func HasField(raw map[string]any, names ...string) bool {
	_, ok := Lookup(raw, names...)
	return ok
}
