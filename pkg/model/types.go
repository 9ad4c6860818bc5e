package model

import (
	"fmt"
	"maps"
	"strings"
)

// RenderKind selects how a field is turned into a form control.
type RenderKind string

const (
	RenderCustom   RenderKind = "custom"
	RenderCheckbox RenderKind = "checkbox"
	RenderTextarea RenderKind = "textarea"
)

// Canonical keys for Field.Extra.
const (
	ExtraPlaceholder   = "placeholder"
	ExtraCheckboxLabel = "checkboxLabel"
)

// Field describes one configurable setting. Descriptions may embed markup and
// are sanitized by renderers, never by the schema.
type Field struct {
	ID          string            `json:"id" yaml:"id"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Render      RenderKind        `json:"render" yaml:"render"`
	Renderer    string            `json:"renderer,omitempty" yaml:"renderer,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Extra       map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
	// ValidateWhen is a rule evaluated against the submission the field is
	// part of. Empty means always.
	ValidateWhen string `json:"validateWhen,omitempty" yaml:"validateWhen,omitempty"`
}

// ComponentName returns the dispatch key used to look up the field renderer.
func (f Field) ComponentName() string {
	if f.Render == RenderCustom {
		return strings.TrimSpace(f.Renderer)
	}
	return string(f.Render)
}

// DefaultString returns the string form of the default value. Booleans follow
// the stored representation: true is "true", false is empty.
func (f Field) DefaultString() string {
	return String(f.Default)
}

// Section groups fields for display.
type Section struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
}

// Schema is an ordered table of fields. It is immutable once built; accessors
// return copies.
type Schema struct {
	section Section
	order   []string
	fields  map[string]Field
}

// NewSchema validates and indexes the provided fields.
func NewSchema(section Section, fields ...Field) (*Schema, error) {
	schema := &Schema{
		section: section,
		order:   make([]string, 0, len(fields)),
		fields:  make(map[string]Field, len(fields)),
	}
	for _, field := range fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return nil, fmt.Errorf("model: field id is required")
		}
		if _, exists := schema.fields[id]; exists {
			return nil, fmt.Errorf("model: duplicate field %q", id)
		}
		switch field.Render {
		case RenderCheckbox, RenderTextarea:
		case RenderCustom:
			if strings.TrimSpace(field.Renderer) == "" {
				return nil, fmt.Errorf("model: field %q uses a custom render without a renderer name", id)
			}
		default:
			return nil, fmt.Errorf("model: field %q has unsupported render kind %q", id, field.Render)
		}
		field.ID = id
		field.Extra = maps.Clone(field.Extra)
		schema.order = append(schema.order, id)
		schema.fields[id] = field
	}
	return schema, nil
}

// MustSchema mirrors NewSchema but panics on error. Useful for package-level
// schema tables.
func MustSchema(section Section, fields ...Field) *Schema {
	schema, err := NewSchema(section, fields...)
	if err != nil {
		panic(err)
	}
	return schema
}

// Section returns the section descriptor.
func (s *Schema) Section() Section {
	return s.section
}

// Field looks up a field descriptor by id.
func (s *Schema) Field(id string) (Field, bool) {
	field, ok := s.fields[id]
	if !ok {
		return Field{}, false
	}
	field.Extra = maps.Clone(field.Extra)
	return field, true
}

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, id := range s.order {
		field, _ := s.Field(id)
		out = append(out, field)
	}
	return out
}

// IDs returns field ids in declaration order.
func (s *Schema) IDs() []string {
	return append([]string(nil), s.order...)
}

// Defaults returns the stored representation of every field default.
func (s *Schema) Defaults() Values {
	out := make(Values, len(s.order))
	for _, id := range s.order {
		out[id] = s.fields[id].DefaultString()
	}
	return out
}
