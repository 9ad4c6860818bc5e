package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-publishing/pkg/model"
)

// Hidden input names the settings page posts alongside the option group.
const (
	OptionPageInput = "option_page"
	CSRFInput       = "_csrf"
)

// HiddenField represents a hidden form input emitted alongside the visible
// fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token.
func CSRFToken(token string) HiddenField {
	return Hidden(CSRFInput, token)
}

// OptionPage identifies which option group a submission belongs to.
func OptionPage(group string) HiddenField {
	return Hidden(OptionPageInput, group)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		clean[key] = value
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: clean[name],
		})
	}
	return result
}

// ParseSubmission extracts the values posted for group. Names of the form
// group[id][] decode to []string, group[id] to the last posted string.
// Unchecked checkboxes are simply absent. Inputs outside the group are
// ignored.
func ParseSubmission(form url.Values, group string) model.Values {
	out := make(model.Values)
	prefix := group + "["
	for name, posted := range form {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		end := strings.IndexByte(rest, ']')
		if end <= 0 {
			continue
		}
		id := rest[:end]
		suffix := rest[end+1:]

		switch suffix {
		case "[]":
			list := make([]string, 0, len(posted))
			for _, value := range posted {
				if trimmed := strings.TrimSpace(value); trimmed != "" {
					list = append(list, trimmed)
				}
			}
			out[id] = list
		case "":
			if len(posted) == 0 {
				out[id] = ""
				continue
			}
			out[id] = posted[len(posted)-1]
		}
	}
	return out
}
