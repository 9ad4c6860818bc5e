package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-publishing/pkg/model"
)

func TestNewSchema_PreservesOrderAndDefaults(t *testing.T) {
	schema, err := model.NewSchema(model.Section{Key: "main", Title: "Main"},
		model.Field{ID: "list", Render: model.RenderCustom, Renderer: "list", Default: ""},
		model.Field{ID: "flag", Render: model.RenderCheckbox, Default: false},
		model.Field{ID: "on", Render: model.RenderCheckbox, Default: true},
		model.Field{ID: "body", Render: model.RenderTextarea, Default: "{}"},
	)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}

	if diff := cmp.Diff([]string{"list", "flag", "on", "body"}, schema.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	want := model.Values{"list": "", "flag": "", "on": "true", "body": "{}"}
	if diff := cmp.Diff(want, schema.Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSchema_RejectsInvalidFields(t *testing.T) {
	section := model.Section{Key: "main"}
	cases := map[string][]model.Field{
		"missing id":     {{Render: model.RenderCheckbox}},
		"duplicate":      {{ID: "a", Render: model.RenderCheckbox}, {ID: "a", Render: model.RenderTextarea}},
		"custom unnamed": {{ID: "a", Render: model.RenderCustom}},
		"unknown render": {{ID: "a", Render: "radio"}},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := model.NewSchema(section, fields...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSchema_FieldReturnsCopy(t *testing.T) {
	schema := model.MustSchema(model.Section{Key: "main"},
		model.Field{ID: "a", Render: model.RenderTextarea, Extra: map[string]string{model.ExtraPlaceholder: "x"}},
	)
	field, ok := schema.Field("a")
	if !ok {
		t.Fatalf("field not found")
	}
	field.Extra[model.ExtraPlaceholder] = "mutated"

	again, _ := schema.Field("a")
	if again.Extra[model.ExtraPlaceholder] != "x" {
		t.Fatalf("schema was mutated through accessor copy")
	}
	if field.ComponentName() != "textarea" {
		t.Fatalf("component name = %q", field.ComponentName())
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"0", false},
		{"1", true},
		{"on", true},
		{[]string{}, false},
		{[]string{"1"}, true},
		{0, false},
		{2, true},
		{map[string]int{}, false},
	}
	for _, tc := range cases {
		if got := model.Truthy(tc.value); got != tc.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestStringList(t *testing.T) {
	if diff := cmp.Diff([]string{"2", "5"}, model.StringList("2, 5,")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "3"}, model.StringList([]any{"1", 3})); diff != "" {
		t.Fatalf("any list mismatch (-want +got):\n%s", diff)
	}
	if got := model.StringList(""); got != nil {
		t.Fatalf("expected nil for empty input, got %#v", got)
	}
}
