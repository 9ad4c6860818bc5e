package settings

import (
	"errors"
	"fmt"
)

// Validation notice codes, settings slugs and messages.
const (
	CodeInvalidCategory = "invalid_category"
	CodeInvalidJSON     = "invalid_json"

	SettingCategories  = FieldCategories
	SettingCustomEmbed = "custom_embed"

	MessageInvalidCategory = "Invalid category provided"
	MessageInvalidJSON     = "Invalid JSON provided for custom rules code"
)

// ErrUnknownField reports a submitted key with no descriptor in the schema.
var ErrUnknownField = errors.New("settings: unknown field")

// UnknownFieldError names the offending key and unwraps to ErrUnknownField.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("settings: unknown field %q", e.Field)
}

func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}
