package render

import (
	"github.com/goliatone/go-publishing/pkg/model"
)

// Context is handed to every field renderer. It mirrors the arguments a host
// settings page passes to its per-field callbacks.
type Context struct {
	// LabelFor is the DOM id of the control, also used by the row label.
	LabelFor string
	// SerializedWithGroup is the option group name used to qualify submitted
	// field names, e.g. "<group>[categories][]".
	SerializedWithGroup string
	// Description is optional help text rendered below the control.
	Description string
	// Field is the descriptor being rendered.
	Field model.Field
	// Value is the currently stored value for the field.
	Value any
	// DependsOn carries the field's ValidateWhen rule so client-side code can
	// toggle dependent controls.
	DependsOn string
}

// ContextFor builds the render context for field within the option group.
func ContextFor(group string, field model.Field, stored model.Values) Context {
	value, ok := stored[field.ID]
	if !ok {
		value = field.Default
	}
	return Context{
		LabelFor:            FieldID(group, field.ID),
		SerializedWithGroup: group,
		Description:         field.Description,
		Field:               field,
		Value:               value,
		DependsOn:           field.ValidateWhen,
	}
}

// FieldID returns the DOM id for a field inside an option group.
func FieldID(group, id string) string {
	if group == "" {
		return id
	}
	return group + "-" + id
}

// FieldName returns the qualified form name for a field inside an option
// group. Multi-valued fields append "[]".
func FieldName(group, id string, multiple bool) string {
	name := id
	if group != "" {
		name = group + "[" + id + "]"
	}
	if multiple {
		name += "[]"
	}
	return name
}
