package components

// Canonical component names for the generic controls every host renderer
// provides. Custom renderers register under their own names.
const (
	NameCheckbox = "checkbox"
	NameTextarea = "textarea"
)
