package vanilla_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla"
	"github.com/goliatone/go-publishing/pkg/renderers/vanilla/components"
)

func TestRenderPage(t *testing.T) {
	renderer := newRenderer(t)
	err := renderer.Register("tags", components.Descriptor{
		HandlesLabel: false,
		Renderer: func(_ context.Context, buf *bytes.Buffer, rc render.Context) error {
			buf.WriteString(`<select id="` + rc.LabelFor + `" multiple></select>` + "\n")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	page := vanilla.Page{
		Title:   "Settings",
		Action:  "/settings",
		Group:   "opt",
		Section: model.Section{Key: "publishing", Title: "Publishing <Settings>"},
		Fields: []model.Field{
			{ID: "tags", Label: "Tags", Render: model.RenderCustom, Renderer: "tags"},
			{ID: "flag", Label: "Flag", Render: model.RenderCheckbox, Default: false},
			{ID: "body", Render: model.RenderTextarea, Default: ""},
		},
		Values: model.Values{"flag": "true", "body": "{}"},
		Notices: []render.Notice{
			{Setting: "tags", Code: "invalid", Message: "Invalid tag"},
			{Setting: "tags", Code: "invalid", Message: "Invalid tag"},
		},
		Hidden: render.SortedHiddenFields(render.MergeHiddenFields(nil, render.OptionPage("opt"), render.CSRFToken("abc"))),
		Localization: &vanilla.Localization{
			Object: "OPT",
			Data:   map[string]string{"option_field_id_flag": "opt-flag"},
		},
	}

	var out bytes.Buffer
	if err := renderer.RenderPage(context.Background(), &out, page); err != nil {
		t.Fatalf("render page: %v", err)
	}
	html := out.String()

	for _, want := range []string{
		`<h1>Settings</h1>`,
		`Publishing &lt;Settings&gt;`,
		`<label for="opt-tags">Tags</label>`,
		`<select id="opt-tags" multiple></select>`,
		`data-component="checkbox"`,
		`name="opt[flag]" value="1" checked`,
		`<textarea id="opt-body" name="opt[body]"`,
		`<input type="hidden" name="_csrf" value="abc">`,
		`<input type="hidden" name="option_page" value="opt">`,
		`var OPT = {"option_field_id_flag":"opt-flag"};`,
		`value="Save Changes"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page:\n%s", want, html)
		}
	}
	if got := strings.Count(html, "Invalid tag"); got != 1 {
		t.Fatalf("expected deduplicated notice, found %d occurrences", got)
	}
}

func TestRenderField_UnknownComponent(t *testing.T) {
	renderer := newRenderer(t)
	rc := render.ContextFor("opt", model.Field{ID: "x", Render: model.RenderCustom, Renderer: "missing"}, nil)

	var out bytes.Buffer
	if err := renderer.RenderField(context.Background(), &out, rc); err == nil {
		t.Fatalf("expected error for unregistered component")
	}
}

func TestRenderPage_WithoutLocalization(t *testing.T) {
	renderer := newRenderer(t)

	var out bytes.Buffer
	err := renderer.RenderPage(context.Background(), &out, vanilla.Page{
		Title:   "Settings",
		Section: model.Section{Key: "s", Title: "S"},
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if strings.Contains(out.String(), "<script>") {
		t.Fatalf("unexpected script block:\n%s", out.String())
	}
}

func TestRenderPage_ScriptsFollowLocalization(t *testing.T) {
	renderer := newRenderer(t)

	var out bytes.Buffer
	err := renderer.RenderPage(context.Background(), &out, vanilla.Page{
		Title:        "Settings",
		Section:      model.Section{Key: "s", Title: "S"},
		Localization: &vanilla.Localization{Object: "CFG", Data: map[string]string{"a": "b"}},
		Scripts:      []string{"/assets/app.js", "  "},
	})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	body := out.String()
	loc := strings.Index(body, `<script>var CFG = {"a":"b"};</script>`)
	src := strings.Index(body, `<script src="/assets/app.js"></script>`)
	if loc < 0 || src < 0 || src < loc {
		t.Fatalf("expected localization before script tag:\n%s", body)
	}
	if strings.Count(body, "<script src=") != 1 {
		t.Fatalf("blank script sources should be skipped:\n%s", body)
	}
}

func newRenderer(t *testing.T) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}
