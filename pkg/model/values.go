package model

import (
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"strings"
)

// Values maps field ids to submitted, sanitized or stored values.
type Values map[string]any

// Clone returns a shallow copy; slices are copied so callers can mutate them.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := maps.Clone(v)
	for key, value := range out {
		if list, ok := value.([]string); ok {
			out[key] = append([]string(nil), list...)
		}
	}
	return out
}

// Has reports whether id is present, even with a nil value.
func (v Values) Has(id string) bool {
	_, ok := v[id]
	return ok
}

// Truthy reports whether the value at id is truthy. Missing keys are false.
func (v Values) Truthy(id string) bool {
	return Truthy(v[id])
}

// String returns the string form of the value at id.
func (v Values) String(id string) string {
	return String(v[id])
}

// Truthy applies form-submission truthiness: nil, false, zero numbers, "",
// "0" and empty collections are false; everything else is true.
func Truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != "" && typed != "0"
	case []string:
		return len(typed) > 0
	case []any:
		return len(typed) > 0
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case float64:
		return typed != 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	default:
		return true
	}
}

// String converts a scalar into its stored representation. true becomes
// "true" and false becomes the empty string.
func String(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return ""
	case int:
		return strconv.Itoa(typed)
	case []string:
		return strings.Join(typed, ",")
	default:
		return fmt.Sprint(typed)
	}
}

// StringList normalizes list-shaped values. Strings are split on ",", and
// blank entries are dropped after trimming.
func StringList(value any) []string {
	var raw []string
	switch typed := value.(type) {
	case nil:
		return nil
	case []string:
		raw = typed
	case []any:
		raw = make([]string, 0, len(typed))
		for _, item := range typed {
			raw = append(raw, String(item))
		}
	case string:
		raw = strings.Split(typed, ",")
	default:
		raw = []string{String(typed)}
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
