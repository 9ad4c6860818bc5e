package components_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla/components"
)

func TestRegistryRegisterAndClone(t *testing.T) {
	registry := components.NewDefaultRegistry()

	if diff := cmp.Diff([]string{"checkbox", "textarea"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	clone := registry.Clone()
	clone.MustRegister(" Categories ", components.Descriptor{
		Renderer: func(context.Context, *bytes.Buffer, render.Context) error { return nil },
	})

	if _, ok := registry.Descriptor("categories"); ok {
		t.Fatalf("clone registration leaked into original registry")
	}
	descriptor, ok := clone.Descriptor("CATEGORIES")
	if !ok || descriptor.Name != "categories" {
		t.Fatalf("expected normalized descriptor, got %#v (ok=%v)", descriptor, ok)
	}

	if err := registry.Register("", components.Descriptor{}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := registry.Register("nil", components.Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestCheckboxRenderer(t *testing.T) {
	descriptor, _ := components.NewDefaultRegistry().Descriptor(components.NameCheckbox)
	field := model.Field{
		ID:          "dev_mode",
		Render:      model.RenderCheckbox,
		Default:     false,
		Description: `Saved as "drafts". <script>alert(1)</script>`,
		Extra:       map[string]string{model.ExtraCheckboxLabel: "Enable development mode"},
	}

	var buf bytes.Buffer
	rc := render.ContextFor("opt", field, model.Values{"dev_mode": "true"})
	if err := descriptor.Renderer(context.Background(), &buf, rc); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`id="opt-dev_mode"`,
		`name="opt[dev_mode]"`,
		`value="1" checked>`,
		`Enable development mode</label>`,
		`<p class="description">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script") {
		t.Fatalf("description was not sanitized:\n%s", out)
	}
}

func TestCheckboxRenderer_Unchecked(t *testing.T) {
	descriptor, _ := components.NewDefaultRegistry().Descriptor(components.NameCheckbox)
	field := model.Field{ID: "dev_mode", Render: model.RenderCheckbox, Default: false}

	var buf bytes.Buffer
	if err := descriptor.Renderer(context.Background(), &buf, render.ContextFor("opt", field, nil)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "checked") {
		t.Fatalf("unexpected checked attribute:\n%s", buf.String())
	}
}

func TestTextareaRenderer(t *testing.T) {
	descriptor, _ := components.NewDefaultRegistry().Descriptor(components.NameTextarea)
	field := model.Field{
		ID:           "custom_rules",
		Render:       model.RenderTextarea,
		Extra:        map[string]string{model.ExtraPlaceholder: `{ "rules": [] }`},
		ValidateWhen: "truthy(custom_rules_enabled)",
		Description:  `Read <a href="https://example.com/docs" target="_blank">the docs</a>.`,
	}

	var buf bytes.Buffer
	rc := render.ContextFor("opt", field, model.Values{"custom_rules": `{"rules":[]}</textarea>`})
	if err := descriptor.Renderer(context.Background(), &buf, rc); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`name="opt[custom_rules]"`,
		`placeholder="{ &#34;rules&#34;: [] }"`,
		`data-depends-on="truthy(custom_rules_enabled)"`,
		`{&#34;rules&#34;:[]}&lt;/textarea&gt;</textarea>`,
		`href="https://example.com/docs"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSanitizeDescription(t *testing.T) {
	got := components.SanitizeDescription(`<b onclick="x()">Bold</b> <a href="javascript:alert(1)">bad</a> <em>ok</em>`)
	if strings.Contains(got, "onclick") || strings.Contains(got, "javascript:") || strings.Contains(got, "<b") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if !strings.Contains(got, "<em>ok</em>") {
		t.Fatalf("allowed markup was stripped: %q", got)
	}
	if components.SanitizeDescription("   ") != "" {
		t.Fatalf("expected empty output for blank input")
	}
}
