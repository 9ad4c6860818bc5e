// Package publishing is the entry point for the Publishing Settings panel:
// the field group, its sanitize step and the assets the settings page needs.
package publishing

import (
	"context"
	"errors"
	"net/url"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/settings"
)

// Values aliases model.Values for callers that only touch the root package.
type Values = model.Values

// Notice aliases render.Notice.
type Notice = render.Notice

// Category aliases settings.Category.
type Category = settings.Category

// PageOptions aliases settings.PageOptions.
type PageOptions = settings.PageOptions

// NewGroup builds the publishing field group backed by taxonomy.
func NewGroup(taxonomy settings.Taxonomy, options ...settings.Option) (*settings.Group, error) {
	return settings.New(taxonomy, options...)
}

// SanitizeForm decodes a posted settings form for group and sanitizes it.
// Notices are returned alongside the values; err is non-nil only for
// schema drift (settings.ErrUnknownField) or collaborator failures.
func SanitizeForm(ctx context.Context, group *settings.Group, form url.Values) (Values, []Notice, error) {
	if group == nil {
		return nil, nil, errors.New("publishing: settings group is required")
	}
	var notices render.Notices
	submitted := render.ParseSubmission(form, group.OptionKey())
	sanitized, err := group.Sanitize(ctx, submitted, &notices)
	return sanitized, notices.Errors(), err
}
