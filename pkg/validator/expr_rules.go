package validator

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dmitrymomot/reqcheck/pkg/cache"
)

var compiledExprs = cache.NewLRU[string, *vm.Program](256)

// exprEnv is the environment boolean expressions are evaluated against.
type exprEnv struct {
	Value   any               `expr:"value"`
	Body    map[string]any    `expr:"body"`
	Query   map[string]any    `expr:"query"`
	Params  map[string]string `expr:"params"`
	Headers map[string]string `expr:"headers"`
}

// Satisfies checks a boolean expression over the field value and the rest of
// the request, for example:
//
//	value == body.passwordConfirmation
//	len(value) > 3 && query.mode != "strict"
//
// The expression is compiled once; syntax errors and non-boolean expressions
// are reported as ErrInvalidExpression. A runtime evaluation error fails the
// rule.
func Satisfies(expression string) (Rule, error) {
	program, err := compiledExprs.GetOrLoad(expression, func() (*vm.Program, error) {
		return expr.Compile(expression, expr.Env(exprEnv{}), expr.AsBool())
	})
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	message := fmt.Sprintf("must satisfy %s", expression)
	return Rule{
		Name:           "satisfies",
		Message:        message,
		NegatedMessage: fmt.Sprintf("must not satisfy %s", expression),
		Check: func(_ context.Context, v Value, meta Meta) Outcome {
			if evalExpr(program, v, meta) {
				return Pass()
			}
			return Fail(message)
		},
	}, nil
}

func evalExpr(program *vm.Program, v Value, meta Meta) bool {
	env := exprEnv{Value: v.Raw()}
	if req := meta.Request; req != nil {
		env.Body = req.Body
		env.Query = req.Query
		env.Params = req.Params
		env.Headers = req.Headers
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}
