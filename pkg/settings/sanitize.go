package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/visibility"
)

type sanitizeState struct {
	submitted model.Values
	out       model.Values
	sink      ErrorSink
}

type sanitizer func(ctx context.Context, state *sanitizeState, field model.Field)

// Sanitize validates and normalizes a submission before persistence. The
// result has exactly the submitted key set. Values are not encoded here; the
// store encodes them when saving.
//
// Invalid values are reported to sink and replaced by their defaults. The
// returned error is nil unless the submission carries keys the schema does
// not know, in which case those values pass through unchanged and the error
// wraps ErrUnknownField once per key.
func (g *Group) Sanitize(ctx context.Context, submitted model.Values, sink ErrorSink) (model.Values, error) {
	if sink == nil {
		sink = discardSink{}
	}
	state := &sanitizeState{
		submitted: submitted,
		out:       submitted.Clone(),
		sink:      sink,
	}
	if state.out == nil {
		state.out = model.Values{}
	}

	var errs []error
	for _, id := range sortedKeys(submitted) {
		field, ok := g.schema.Field(id)
		fn, known := g.sanitizers[id]
		if !ok || !known {
			g.logger.Warn("settings: unknown field submitted", slog.String("field", id))
			errs = append(errs, &UnknownFieldError{Field: id})
			continue
		}
		fn(ctx, state, field)
	}
	return state.out, errors.Join(errs...)
}

// sanitizeCategories validates every submitted id before joining them. A
// single unknown id rejects the whole list.
func (g *Group) sanitizeCategories(ctx context.Context, state *sanitizeState, field model.Field) {
	ids := model.StringList(state.submitted[field.ID])
	for _, id := range ids {
		exists, err := g.taxonomy.CategoryExists(ctx, id)
		if err != nil {
			g.logger.Error("settings: category lookup failed",
				slog.String("category", id),
				slog.Any("error", err),
			)
		}
		if err != nil || !exists {
			state.sink.AddError(SettingCategories, CodeInvalidCategory, MessageInvalidCategory)
			state.out[field.ID] = field.DefaultString()
			return
		}
	}
	state.out[field.ID] = strings.Join(ids, ",")
}

func sanitizeDevMode(_ context.Context, state *sanitizeState, field model.Field) {
	if model.Truthy(state.submitted[field.ID]) {
		state.out[field.ID] = "true"
		return
	}
	state.out[field.ID] = field.DefaultString()
}

func (g *Group) sanitizeCustomRules(_ context.Context, state *sanitizeState, field model.Field) {
	enabled, err := g.evaluator.Eval(field.ID, field.ValidateWhen, visibility.Context{
		Values: state.submitted,
	})
	if err != nil {
		g.logger.Error("settings: evaluate validation rule",
			slog.String("field", field.ID),
			slog.Any("error", err),
		)
		enabled = true
	}
	if !enabled {
		return
	}
	if !isJSONDocument(model.String(state.submitted[field.ID])) {
		state.out[field.ID] = field.DefaultString()
		state.sink.AddError(SettingCustomEmbed, CodeInvalidJSON, MessageInvalidJSON)
	}
}

func passThrough(context.Context, *sanitizeState, model.Field) {}

// isJSONDocument reports whether raw decodes to a non-null JSON value.
func isJSONDocument(raw string) bool {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return false
	}
	return decoded != nil
}

func sortedKeys(values model.Values) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
