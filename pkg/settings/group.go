package settings

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-publishing/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-publishing/pkg/visibility/expr"
)

// Option configures a Group.
type Option func(*Group)

// WithLogger sets the logger used for schema drift and lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Group) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithEvaluator replaces the rule evaluator used for ValidateWhen.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(g *Group) {
		if evaluator != nil {
			g.evaluator = evaluator
		}
	}
}

// WithRenderer replaces the page renderer. The category component is
// registered on it during New.
func WithRenderer(renderer *vanilla.Renderer) Option {
	return func(g *Group) {
		if renderer != nil {
			g.renderer = renderer
		}
	}
}

// WithOptionKey overrides the option group name used to qualify fields.
func WithOptionKey(key string) Option {
	return func(g *Group) {
		if key != "" {
			g.optionKey = key
		}
	}
}

// Group owns the publishing schema and its collaborators, and exposes the
// render and sanitize operations to the settings page.
type Group struct {
	schema     *model.Schema
	optionKey  string
	taxonomy   Taxonomy
	evaluator  visibility.Evaluator
	renderer   *vanilla.Renderer
	logger     *slog.Logger
	sanitizers map[string]sanitizer
}

// New builds the publishing field group backed by taxonomy.
func New(taxonomy Taxonomy, options ...Option) (*Group, error) {
	if taxonomy == nil {
		return nil, fmt.Errorf("settings: taxonomy is required")
	}
	g := &Group{
		schema:    Schema(),
		optionKey: OptionKey,
		taxonomy:  taxonomy,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.evaluator == nil {
		g.evaluator = visibilityexpr.New()
	}
	if g.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
		g.renderer = renderer
	}

	err := g.renderer.Register(CategoriesRenderer, components.Descriptor{
		Renderer: func(ctx context.Context, buf *bytes.Buffer, rc render.Context) error {
			return g.RenderCategorySelect(ctx, buf, rc)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("settings: register category renderer: %w", err)
	}

	g.sanitizers = map[string]sanitizer{
		FieldCategories:         g.sanitizeCategories,
		FieldDevMode:            sanitizeDevMode,
		FieldCustomRules:        g.sanitizeCustomRules,
		FieldCustomRulesEnabled: passThrough,
	}
	return g, nil
}

// Schema returns the field schema.
func (g *Group) Schema() *model.Schema {
	return g.schema
}

// OptionKey returns the option group name.
func (g *Group) OptionKey() string {
	return g.optionKey
}

// Defaults returns the stored representation of every default.
func (g *Group) Defaults() model.Values {
	return g.schema.Defaults()
}

// PageOptions carries the per-request parts of a page render.
type PageOptions struct {
	Title   string
	Action  string
	Notices []render.Notice
	Hidden  []render.HiddenField
	Scripts []string
}

// Render writes the full settings page for stored into w. Missing stored
// values fall back to field defaults.
func (g *Group) Render(ctx context.Context, w io.Writer, stored model.Values, opts PageOptions) error {
	section := g.schema.Section()
	title := opts.Title
	if title == "" {
		title = section.Title
	}
	hidden := render.SortedHiddenFields(render.MergeHiddenFields(
		hiddenMap(opts.Hidden),
		render.OptionPage(g.optionKey),
	))

	return g.renderer.RenderPage(ctx, w, vanilla.Page{
		Title:        title,
		Action:       opts.Action,
		Group:        g.optionKey,
		Section:      section,
		Fields:       g.schema.Fields(),
		Values:       stored,
		Notices:      opts.Notices,
		Hidden:       hidden,
		Localization: Localization(),
		Scripts:      opts.Scripts,
	})
}

// RenderField writes the control for one field, dispatching on its render
// kind.
func (g *Group) RenderField(ctx context.Context, w io.Writer, id string, stored model.Values) error {
	field, ok := g.schema.Field(id)
	if !ok {
		return &UnknownFieldError{Field: id}
	}
	return g.renderer.RenderField(ctx, w, render.ContextFor(g.optionKey, field, stored))
}

func hiddenMap(fields []render.HiddenField) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		out[field.Name] = field.Value
	}
	return out
}
