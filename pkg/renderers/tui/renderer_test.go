package tui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/render"
	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/taxonomy"
)

type stubDriver struct {
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	multiCfgs    []SelectConfig
	confirmCfgs  []ConfirmConfig
	textCfgs     []TextAreaConfig
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmCfgs = append(s.confirmCfgs, cfg)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiCfgs = append(s.multiCfgs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.textCfgs = append(s.textCfgs, cfg)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newRenderer(t *testing.T, driver PromptDriver, opts ...Option) *Renderer {
	t.Helper()
	tax := taxonomy.MustStatic(
		settings.Category{ID: "1", Name: "News"},
		settings.Category{ID: "2", Name: "Sports"},
		settings.Category{ID: "5", Name: "Tech"},
	)
	r, err := New(tax, append([]Option{WithPromptDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestCollect_AllFieldsPrompted(t *testing.T) {
	driver := &stubDriver{
		multiIdx:  [][]int{{0, 2}},
		confirm:   []bool{true, true},
		textAreas: []string{`{"rules":[]}`},
	}
	r := newRenderer(t, driver)

	got, err := r.Collect(context.Background(), settings.Schema(), model.Values{
		settings.FieldCategories: "2",
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := model.Values{
		settings.FieldCategories:         []string{"1", "5"},
		settings.FieldDevMode:            "1",
		settings.FieldCustomRulesEnabled: "1",
		settings.FieldCustomRules:        `{"rules":[]}`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collected mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{1}, driver.multiCfgs[0].Defaults); diff != "" {
		t.Fatalf("stored category should be preselected (-want +got):\n%s", diff)
	}
	if driver.confirmCfgs[0].Message != "Enable development mode" {
		t.Fatalf("unexpected checkbox prompt %q", driver.confirmCfgs[0].Message)
	}
	if diff := cmp.Diff([]string{"Publishing Settings"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_DisabledRulesSkipTextareaPrompt(t *testing.T) {
	driver := &stubDriver{
		multiIdx: [][]int{{}},
		confirm:  []bool{false, false},
	}
	r := newRenderer(t, driver)

	got, err := r.Collect(context.Background(), settings.Schema(), model.Values{
		settings.FieldCustomRules: "kept",
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := model.Values{settings.FieldCustomRules: "kept"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collected mismatch (-want +got):\n%s", diff)
	}
	if len(driver.textCfgs) != 0 {
		t.Fatalf("textarea should not be prompted, got %d prompts", len(driver.textCfgs))
	}
}

func TestCollect_HelpTextIsPlain(t *testing.T) {
	driver := &stubDriver{
		multiIdx: [][]int{{}},
		confirm:  []bool{false, false},
	}
	r := newRenderer(t, driver)

	if _, err := r.Collect(context.Background(), settings.Schema(), nil); err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, cfg := range driver.confirmCfgs {
		if strings.ContainsRune(cfg.Help, '<') {
			t.Fatalf("help text still carries markup: %q", cfg.Help)
		}
	}
}

func TestCollect_DriverAbortPropagates(t *testing.T) {
	r := newRenderer(t, &stubDriver{})
	_, err := r.Collect(context.Background(), settings.Schema(), nil)
	if err == nil {
		t.Fatalf("expected error when driver runs out of answers")
	}
}

func TestCollect_UnsupportedCustomField(t *testing.T) {
	schema := model.MustSchema(model.Section{Key: "k", Title: "T"}, model.Field{
		ID:       "tags",
		Render:   model.RenderCustom,
		Renderer: "tags",
	})
	r := newRenderer(t, &stubDriver{})
	_, err := r.Collect(context.Background(), schema, nil)
	if !errors.Is(err, ErrUnsupportedField) {
		t.Fatalf("expected ErrUnsupportedField, got %v", err)
	}
}

func TestRender_FormOutputMatchesPageSubmission(t *testing.T) {
	driver := &stubDriver{
		multiIdx:  [][]int{{0, 1}},
		confirm:   []bool{true, true},
		textAreas: []string{"{}"},
	}
	r := newRenderer(t, driver, WithOutputFormat(OutputFormatFormURLEncoded))
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	payload, err := r.Render(context.Background(), settings.Schema(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	form, err := url.ParseQuery(string(payload))
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}

	got := render.ParseSubmission(form, settings.OptionKey)
	want := model.Values{
		settings.FieldCategories:         []string{"1", "2"},
		settings.FieldDevMode:            "1",
		settings.FieldCustomRulesEnabled: "1",
		settings.FieldCustomRules:        "{}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	if form.Get(render.OptionPageInput) != settings.OptionKey {
		t.Fatalf("missing option_page in %q", payload)
	}
}

func TestRender_PrettyOutput(t *testing.T) {
	driver := &stubDriver{
		multiIdx: [][]int{{1, 2}},
		confirm:  []bool{true, false},
	}
	r := newRenderer(t, driver, WithOutputFormat(OutputFormatPrettyText))

	payload, err := r.Render(context.Background(), settings.Schema(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "categories: 2,5\ncustom_rules: \ndev_mode: 1\n"
	if diff := cmp.Diff(want, string(payload)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestShowNotices(t *testing.T) {
	driver := &stubDriver{}
	r := newRenderer(t, driver, WithTheme(Theme{ErrorPrefix: "! "}))

	err := r.ShowNotices(context.Background(), []render.Notice{{
		Setting: settings.SettingCustomEmbed,
		Code:    settings.CodeInvalidJSON,
		Message: settings.MessageInvalidJSON,
	}})
	if err != nil {
		t.Fatalf("show notices: %v", err)
	}
	want := []string{"! custom_embed: Invalid JSON provided for custom rules code"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRequiresTaxonomy(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil taxonomy")
	}
}
