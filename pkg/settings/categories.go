package settings

import (
	"context"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
)

// RenderCategorySelect writes the category multi-select for rc. Options whose
// id appears in the stored comma-joined value are pre-selected. The
// description, when present, is escaped and appended as help text.
func (g *Group) RenderCategorySelect(ctx context.Context, w io.Writer, rc render.Context) error {
	categories, err := g.taxonomy.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("settings: list categories: %w", err)
	}
	selected := model.StringList(rc.Value)

	var builder strings.Builder
	builder.WriteString(`<select id="`)
	builder.WriteString(html.EscapeString(rc.LabelFor))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(render.FieldName(rc.SerializedWithGroup, FieldCategories, true)))
	builder.WriteString("\" multiple>\n")
	for _, category := range categories {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(category.ID))
		builder.WriteString(`"`)
		if slices.Contains(selected, category.ID) {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(category.Name))
		builder.WriteString("</option>\n")
	}
	builder.WriteString("</select>\n")

	if desc := strings.TrimSpace(rc.Description); desc != "" {
		builder.WriteString(`<p class="description">`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString("</p>\n")
	}

	_, err = io.WriteString(w, builder.String())
	return err
}
