package components

import (
	"bytes"
	"context"
	"html"
	"strings"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
)

// CheckedValue is what a ticked checkbox posts.
const CheckedValue = "1"

// NewDefaultRegistry constructs a registry pre-populated with the generic
// checkbox and textarea controls.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: checkboxRenderer,
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: textareaRenderer,
	})

	return registry
}

func checkboxRenderer(_ context.Context, buf *bytes.Buffer, rc render.Context) error {
	var builder strings.Builder

	builder.WriteString(`<label for="`)
	builder.WriteString(html.EscapeString(rc.LabelFor))
	builder.WriteString(`"><input type="checkbox" id="`)
	builder.WriteString(html.EscapeString(rc.LabelFor))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(render.FieldName(rc.SerializedWithGroup, rc.Field.ID, false)))
	builder.WriteString(`" value="`)
	builder.WriteString(CheckedValue)
	builder.WriteString(`"`)
	if model.Truthy(rc.Value) {
		builder.WriteString(` checked`)
	}
	writeDependsOn(&builder, rc)
	builder.WriteString(`>`)
	if label := strings.TrimSpace(rc.Field.Extra[model.ExtraCheckboxLabel]); label != "" {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(label))
	}
	builder.WriteString("</label>\n")
	writeDescription(&builder, rc.Description)

	buf.WriteString(builder.String())
	return nil
}

func textareaRenderer(_ context.Context, buf *bytes.Buffer, rc render.Context) error {
	var builder strings.Builder

	builder.WriteString(`<textarea id="`)
	builder.WriteString(html.EscapeString(rc.LabelFor))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(render.FieldName(rc.SerializedWithGroup, rc.Field.ID, false)))
	builder.WriteString(`" rows="10" cols="80" class="large-text code"`)
	if placeholder := rc.Field.Extra[model.ExtraPlaceholder]; placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(placeholder))
		builder.WriteString(`"`)
	}
	writeDependsOn(&builder, rc)
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(model.String(rc.Value)))
	builder.WriteString("</textarea>\n")
	writeDescription(&builder, rc.Description)

	buf.WriteString(builder.String())
	return nil
}

func writeDependsOn(builder *strings.Builder, rc render.Context) {
	if rule := strings.TrimSpace(rc.DependsOn); rule != "" {
		builder.WriteString(` data-depends-on="`)
		builder.WriteString(html.EscapeString(rule))
		builder.WriteString(`"`)
	}
}

func writeDescription(builder *strings.Builder, description string) {
	if desc := SanitizeDescription(description); desc != "" {
		builder.WriteString(`<p class="description">`)
		builder.WriteString(desc)
		builder.WriteString("</p>\n")
	}
}
