package settings

import "context"

// Category is one selectable taxonomy term.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Taxonomy is the host's category storage.
type Taxonomy interface {
	// ListCategories returns every category in display order.
	ListCategories(ctx context.Context) ([]Category, error)
	// CategoryExists reports whether id names an existing category.
	CategoryExists(ctx context.Context, id string) (bool, error)
}

// ErrorSink accumulates validation notices. render.Notices satisfies it.
type ErrorSink interface {
	AddError(setting, code, message string)
}

// ErrorSinkFunc adapts a function into an ErrorSink.
type ErrorSinkFunc func(setting, code, message string)

// AddError calls fn.
func (fn ErrorSinkFunc) AddError(setting, code, message string) {
	if fn != nil {
		fn(setting, code, message)
	}
}

type discardSink struct{}

func (discardSink) AddError(string, string, string) {}
