package render_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("token123"),
		render.OptionPage("publishing"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":    "keep",
		"_csrf":       "token123",
		"option_page": "publishing",
		"version":     "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "option_page", Value: "publishing"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSubmission(t *testing.T) {
	form := url.Values{
		"opt[categories][]":      {"2", " ", "5"},
		"opt[dev_mode]":          {"1"},
		"opt[custom_rules]":      {"first", `{"rules":[]}`},
		"other[dev_mode]":        {"1"},
		"option_page":            {"opt"},
		"opt[broken":             {"x"},
		"opt[custom_rules][x][]": {"nested is ignored"},
	}

	got := render.ParseSubmission(form, "opt")
	want := model.Values{
		"categories":   []string{"2", "5"},
		"dev_mode":     "1",
		"custom_rules": `{"rules":[]}`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestContextFor(t *testing.T) {
	field := model.Field{ID: "dev_mode", Render: model.RenderCheckbox, Default: false, Description: "help"}
	ctx := render.ContextFor("opt", field, model.Values{})
	if ctx.LabelFor != "opt-dev_mode" {
		t.Fatalf("label for = %q", ctx.LabelFor)
	}
	if ctx.Value != false {
		t.Fatalf("value should fall back to default, got %#v", ctx.Value)
	}
	if got := render.FieldName("opt", "categories", true); got != "opt[categories][]" {
		t.Fatalf("field name = %q", got)
	}
}
