package expr

import (
	"testing"

	"github.com/goliatone/go-publishing/pkg/visibility"
)

func TestEvaluatorTruthyHelper(t *testing.T) {
	t.Parallel()

	eval := New()

	cases := []struct {
		value any
		want  bool
	}{
		{"1", true},
		{"on", true},
		{true, true},
		{"", false},
		{"0", false},
		{false, false},
		{nil, false},
	}
	for _, tc := range cases {
		ok, err := eval.Eval("custom_rules", "truthy(custom_rules_enabled)", visibility.Context{
			Values: map[string]any{"custom_rules_enabled": tc.value},
		})
		if err != nil {
			t.Fatalf("Eval returned error: %v", err)
		}
		if ok != tc.want {
			t.Fatalf("truthy(%#v) = %v, want %v", tc.value, ok, tc.want)
		}
	}
}

func TestEvaluatorBareIdentifierUsesTruthiness(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("custom_rules", "custom_rules_enabled", visibility.Context{
		Values: map[string]any{"custom_rules_enabled": "1"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for posted checkbox")
	}

	ok, err = eval.Eval("custom_rules", "custom_rules_enabled", visibility.Context{})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if ok {
		t.Fatalf("expected false for missing value")
	}
}

func TestEvaluatorExtrasAndComposition(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("custom_rules", `truthy(enabled) && extras.role == "admin"`, visibility.Context{
		Values: map[string]any{"enabled": "1"},
		Extras: map[string]any{"role": "admin"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true")
	}
}

func TestEvaluatorEmptyRuleAlwaysHolds(t *testing.T) {
	t.Parallel()

	ok, err := New().Eval("field", "  ", visibility.Context{})
	if err != nil || !ok {
		t.Fatalf("expected empty rule to hold, got %v, %v", ok, err)
	}
}

func TestEvaluatorCompileError(t *testing.T) {
	t.Parallel()

	if _, err := New().Eval("field", "a &&", visibility.Context{}); err == nil {
		t.Fatalf("expected compile error")
	}
}
