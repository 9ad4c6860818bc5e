package expr

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/visibility"
)

// Evaluator runs rules with github.com/expr-lang/expr. Values are exposed as
// top-level variables and Extras under `extras`. Undefined variables evaluate
// to nil, and the result is reduced with form truthiness, so a bare
// `custom_rules_enabled` holds when the checkbox was posted as "1".
//
// The helper `truthy(x)` applies the same truthiness inside expressions, e.g.
// `truthy(a) && !truthy(b)`.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*exprvm.Program
}

var _ visibility.Evaluator = (*Evaluator)(nil)

func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*exprvm.Program)}
}

func (e *Evaluator) Eval(fieldPath, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	program, err := e.compile(trimmed)
	if err != nil {
		return false, fmt.Errorf("visibility: field %q: %w", fieldPath, err)
	}

	env := make(map[string]any, len(ctx.Values)+1)
	for key, value := range ctx.Values {
		env[key] = value
	}
	extras := make(map[string]any, len(ctx.Extras))
	for key, value := range ctx.Extras {
		extras[key] = value
	}
	env["extras"] = extras

	result, err := exprlang.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("visibility: field %q: evaluate %q: %w", fieldPath, trimmed, err)
	}
	return model.Truthy(result), nil
}

func (e *Evaluator) compile(rule string) (*exprvm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := exprlang.Compile(rule,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.Function("truthy", truthy),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", rule, err)
	}

	e.mu.Lock()
	e.programs[rule] = program
	e.mu.Unlock()
	return program, nil
}

func truthy(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("truthy expects 1 argument, got %d", len(params))
	}
	return model.Truthy(params[0]), nil
}
