package vanilla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	rendertemplate "github.com/goliatone/go-publishing/pkg/render/template"
	"github.com/goliatone/go-publishing/pkg/render/template/pongo"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla/components"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry replaces the component registry. The registry is cloned so
// later registrations on the renderer do not leak back to the caller.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry.Clone()
		}
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Localization is a constant object exposed to client-side script as a global
// variable named Object.
type Localization struct {
	Object string
	Data   map[string]string
}

// Page describes one settings page render.
type Page struct {
	Title   string
	Action  string
	Group   string
	Section model.Section
	Fields  []model.Field
	Values  model.Values
	Notices []render.Notice
	Hidden  []render.HiddenField
	// Localization is optional.
	Localization *Localization
	// Scripts are emitted as external script tags after the localization.
	Scripts []string
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	submitLabel string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}
	if cfg.submitLabel == "" {
		cfg.submitLabel = "Save Changes"
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		submitLabel: cfg.submitLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Register adds or replaces a component renderer, typically a custom field
// renderer owned by a settings group.
func (r *Renderer) Register(name string, descriptor components.Descriptor) error {
	return r.registry.Register(name, descriptor)
}

// RenderField dispatches rc.Field to its component and writes the control.
func (r *Renderer) RenderField(ctx context.Context, w io.Writer, rc render.Context) error {
	_, err := r.renderControl(ctx, w, rc)
	return err
}

func (r *Renderer) renderControl(ctx context.Context, w io.Writer, rc render.Context) (components.Descriptor, error) {
	name := rc.Field.ComponentName()
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return components.Descriptor{}, fmt.Errorf("vanilla renderer: component %q not registered for field %q", name, rc.Field.ID)
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(ctx, &control, rc); err != nil {
		return components.Descriptor{}, fmt.Errorf("vanilla renderer: render component %q for field %q: %w", name, rc.Field.ID, err)
	}
	if _, err := w.Write(control.Bytes()); err != nil {
		return components.Descriptor{}, err
	}
	return descriptor, nil
}

// RenderPage renders the full settings page into w.
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, page Page) error {
	if r.templates == nil {
		return fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	rows := make([]any, 0, len(page.Fields))
	for _, field := range page.Fields {
		rc := render.ContextFor(page.Group, field, page.Values)

		var control bytes.Buffer
		descriptor, err := r.renderControl(ctx, &control, rc)
		if err != nil {
			return err
		}

		label := field.Label
		if descriptor.HandlesLabel {
			label = ""
		}
		rows = append(rows, map[string]any{
			"label":     label,
			"label_for": rc.LabelFor,
			"component": descriptor.Name,
			"control":   control.String(),
		})
	}

	messages := make([]string, 0, len(page.Notices))
	for _, notice := range page.Notices {
		messages = append(messages, notice.Message)
	}
	notices := make([]any, 0, len(messages))
	for _, message := range render.MergeFormErrors(nil, messages...) {
		notices = append(notices, message)
	}

	hidden := make([]any, 0, len(page.Hidden))
	for _, field := range page.Hidden {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	scripts := make([]any, 0, len(page.Scripts))
	for _, src := range page.Scripts {
		if src = strings.TrimSpace(src); src != "" {
			scripts = append(scripts, src)
		}
	}

	data := map[string]any{
		"title":        page.Title,
		"action":       page.Action,
		"section":      map[string]any{"key": page.Section.Key, "title": page.Section.Title},
		"rows":         rows,
		"notices":      notices,
		"hidden":       hidden,
		"submit_label": r.submitLabel,
		"scripts":      scripts,
	}
	if loc := page.Localization; loc != nil && strings.TrimSpace(loc.Object) != "" {
		payload, err := json.Marshal(loc.Data)
		if err != nil {
			return fmt.Errorf("vanilla renderer: encode localization: %w", err)
		}
		data["localization"] = map[string]any{
			"object": loc.Object,
			"json":   string(payload),
		}
	}

	if _, err := r.templates.RenderTemplate(PageTemplate, data, w); err != nil {
		return fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return nil
}
