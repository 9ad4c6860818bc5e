package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-publishing/pkg/render"
)

func TestNotices_AccumulatesInOrder(t *testing.T) {
	var notices render.Notices
	notices.AddError("categories", "invalid_category", "Invalid category provided")
	notices.AddError("custom_embed", "invalid_json", " Invalid JSON provided for custom rules code ")
	notices.AddError("categories", "invalid_category", "Invalid category provided")
	notices.AddError("ignored", "blank", "   ")

	want := []render.Notice{
		{Setting: "categories", Code: "invalid_category", Message: "Invalid category provided"},
		{Setting: "custom_embed", Code: "invalid_json", Message: "Invalid JSON provided for custom rules code"},
		{Setting: "categories", Code: "invalid_category", Message: "Invalid category provided"},
	}
	if diff := cmp.Diff(want, notices.Errors()); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
	if notices.Len() != 3 {
		t.Fatalf("len = %d, want 3", notices.Len())
	}

	wantMessages := []string{"Invalid category provided", "Invalid JSON provided for custom rules code"}
	if diff := cmp.Diff(wantMessages, notices.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if got := len(notices.ForSetting("categories")); got != 2 {
		t.Fatalf("categories notices = %d, want 2", got)
	}
}

func TestNotices_NilSafe(t *testing.T) {
	var notices *render.Notices
	notices.AddError("a", "b", "c")
	if notices.Len() != 0 || notices.Errors() != nil || notices.Codes() != nil {
		t.Fatalf("nil notices should stay empty")
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
