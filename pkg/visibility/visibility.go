// Package visibility decides whether a field participates in a submission or
// is shown on the page, based on a rule string and the sibling values.
package visibility

// Evaluator determines whether a rule holds for the field at fieldPath given
// the current values.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the submission (or the
// stored values when rendering); Extras lets callers inject flags reachable as
// `extras.<name>`.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}
