package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-publishing/pkg/visibility/expr"
)

const categoryPageSize = 12

var plainText = bluemonday.StrictPolicy()

// Renderer walks a settings schema in the terminal and collects a submission
// shaped like the one the settings page posts. The result still has to go
// through the group's sanitize step.
type Renderer struct {
	driver       PromptDriver
	taxonomy     settings.Taxonomy
	evaluator    visibility.Evaluator
	outputFormat OutputFormat
	optionKey    string
	theme        Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
// taxonomy supplies the options for category fields.
func New(taxonomy settings.Taxonomy, options ...Option) (*Renderer, error) {
	if taxonomy == nil {
		return nil, errors.New("tui: taxonomy is required")
	}

	r := &Renderer{
		driver:       newSurveyDriver(),
		taxonomy:     taxonomy,
		evaluator:    visibilityexpr.New(),
		outputFormat: OutputFormatJSON,
		optionKey:    settings.OptionKey,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field and serializes the collected submission.
func (r *Renderer) Render(ctx context.Context, schema *model.Schema, stored model.Values) ([]byte, error) {
	values, err := r.Collect(ctx, schema, stored)
	if err != nil {
		return nil, err
	}
	return r.serialize(schema, values)
}

// Collect prompts for every field in schema order, pre-filled from stored.
// Unticked checkboxes and empty category selections are left out, matching
// what a browser posts.
func (r *Renderer) Collect(ctx context.Context, schema *model.Schema, stored model.Values) (model.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, errors.New("tui: schema is required")
	}

	if section := schema.Section(); section.Title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+section.Title); err != nil {
			return nil, err
		}
	}

	collected := make(model.Values)
	for _, field := range schema.Fields() {
		if err := r.promptField(ctx, field, stored, collected); err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", field.ID, err)
		}
	}
	return collected, nil
}

// ShowNotices prints sanitize notices through the driver.
func (r *Renderer) ShowNotices(ctx context.Context, notices []render.Notice) error {
	for _, notice := range notices {
		msg := notice.Message
		if notice.Setting != "" {
			msg = notice.Setting + ": " + msg
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, stored, collected model.Values) error {
	switch field.Render {
	case model.RenderCheckbox:
		return r.promptCheckbox(ctx, field, stored, collected)
	case model.RenderTextarea:
		return r.promptTextarea(ctx, field, stored, collected)
	case model.RenderCustom:
		if field.Renderer == settings.CategoriesRenderer {
			return r.promptCategories(ctx, field, stored, collected)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedField, field.ComponentName())
}

func (r *Renderer) promptCheckbox(ctx context.Context, field model.Field, stored, collected model.Values) error {
	message := field.Extra[model.ExtraCheckboxLabel]
	if message == "" {
		message = field.Label
	}
	checked, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: message,
		Default: model.Truthy(valueOrDefault(field, stored)),
		Help:    helpText(field.Description),
	})
	if err != nil {
		return err
	}
	if checked {
		collected[field.ID] = components.CheckedValue
	}
	return nil
}

func (r *Renderer) promptTextarea(ctx context.Context, field model.Field, stored, collected model.Values) error {
	current := model.String(valueOrDefault(field, stored))
	if field.ValidateWhen != "" {
		enabled, err := r.evaluator.Eval(field.ID, field.ValidateWhen, visibility.Context{Values: collected})
		if err == nil && !enabled {
			collected[field.ID] = current
			return nil
		}
	}

	message := field.Label
	if message == "" {
		message = field.ID
	}
	help := helpText(field.Description)
	if placeholder := field.Extra[model.ExtraPlaceholder]; placeholder != "" {
		help = strings.TrimSpace(help + "\nExample: " + placeholder)
	}
	text, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: message,
		Default: current,
		Help:    help,
	})
	if err != nil {
		return err
	}
	collected[field.ID] = text
	return nil
}

func (r *Renderer) promptCategories(ctx context.Context, field model.Field, stored, collected model.Values) error {
	categories, err := r.taxonomy.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return r.driver.Info(ctx, r.theme.InfoPrefix+"No categories available")
	}

	selected := make(map[string]struct{})
	for _, id := range model.StringList(valueOrDefault(field, stored)) {
		selected[id] = struct{}{}
	}
	options := make([]string, 0, len(categories))
	var defaults []int
	for i, category := range categories {
		options = append(options, category.Name)
		if _, ok := selected[category.ID]; ok {
			defaults = append(defaults, i)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  field.Label,
		Options:  options,
		Defaults: defaults,
		Help:     helpText(field.Description),
		PageSize: categoryPageSize,
	})
	if err != nil {
		return err
	}

	var ids []string
	for _, idx := range picked {
		if idx >= 0 && idx < len(categories) {
			ids = append(ids, categories[idx].ID)
		}
	}
	if len(ids) > 0 {
		collected[field.ID] = ids
	}
	return nil
}

func (r *Renderer) serialize(schema *model.Schema, values model.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		form.Set(render.OptionPageInput, r.optionKey)
		for _, id := range schema.IDs() {
			switch v := values[id].(type) {
			case nil:
			case []string:
				name := render.FieldName(r.optionKey, id, true)
				for _, item := range v {
					form.Add(name, item)
				}
			default:
				form.Set(render.FieldName(r.optionKey, id, false), model.String(v))
			}
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			value := values[key]
			if list, ok := value.([]string); ok {
				value = strings.Join(list, ",")
			}
			fmt.Fprintf(&b, "%s: %s\n", key, model.String(value))
		}
		return []byte(b.String()), nil
	default:
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return payload, nil
	}
}

func valueOrDefault(field model.Field, stored model.Values) any {
	if stored != nil {
		if v, ok := stored[field.ID]; ok {
			return v
		}
	}
	return field.Default
}

// helpText flattens a markup description for the terminal.
func helpText(description string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(description)))
}
