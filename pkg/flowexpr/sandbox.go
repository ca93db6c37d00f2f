package flowexpr

import (
	"maps"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

// run compiles and executes rewritten expression text against a closed
// namespace: the resolved variable bindings plus the engine's function
// library. Every expr builtin is disabled, so the library is the entire
// reachable surface; an unknown name is a compile error, not a lookup
// into anything ambient.
//
// The supported grammar is what expr-lang natively evaluates: literals,
// arithmetic, boolean logic, comparisons, and list/map construction.
// There is no assignment, control flow, or function definition.
func (e *Engine) run(text string, bindings map[string]any) (any, error) {
	env := make(map[string]any, len(e.lib)+len(bindings))
	maps.Copy(env, e.lib)
	maps.Copy(env, bindings)

	program, err := expr.Compile(text,
		expr.Env(env),
		expr.DisableAllBuiltins(),
		expr.Patch(divisionPatcher{}),
	)
	if err != nil {
		return nil, &EvalError{Text: text, Err: err}
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, &EvalError{Text: text, Err: err}
	}
	return out, nil
}

// divisionPatcher rewrites every / operator into a call to the checked
// divide in the library. The evaluator's native division yields +Inf on
// a zero divisor; the checked form makes it a reported failure.
type divisionPatcher struct{}

func (divisionPatcher) Visit(node *ast.Node) {
	bn, ok := (*node).(*ast.BinaryNode)
	if !ok || bn.Operator != "/" {
		return
	}
	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: divideName},
		Arguments: []ast.Node{bn.Left, bn.Right},
	})
}
