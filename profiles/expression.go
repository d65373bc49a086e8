package profiles

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"

	"github.com/notargets/continuity1d/utils"
)

// expression is a compiled user function of the single variable x
type expression struct {
	source string
	expr   *govaluate.EvaluableExpression
	params map[string]interface{}
}

func unary(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("profiles: got %d arguments for function '%s', but needs 1", len(args), name)
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("profiles: argument of '%s' is not a number", name)
		}
		return f(v), nil
	}
}

func binary(name string, f func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("profiles: got %d arguments for function '%s', but needs 2", len(args), name)
		}
		a, okA := args[0].(float64)
		b, okB := args[1].(float64)
		if !okA || !okB {
			return nil, fmt.Errorf("profiles: arguments of '%s' are not numbers", name)
		}
		return f(a, b), nil
	}
}

var expressionFunctions = map[string]govaluate.ExpressionFunction{
	"sin":  unary("sin", math.Sin),
	"cos":  unary("cos", math.Cos),
	"tan":  unary("tan", math.Tan),
	"exp":  unary("exp", math.Exp),
	"log":  unary("log", math.Log),
	"sqrt": unary("sqrt", math.Sqrt),
	"abs":  unary("abs", math.Abs),
	"tanh": unary("tanh", math.Tanh),
	"pow":  binary("pow", math.Pow),
	"min":  binary("min", math.Min),
	"max":  binary("max", math.Max),
}

func compileExpression(src string) (e *expression, err error) {
	var ee *govaluate.EvaluableExpression
	if ee, err = govaluate.NewEvaluableExpressionWithFunctions(src, expressionFunctions); err != nil {
		err = utils.NewConfigurationError("UserFunctions", "unable to parse %q: %v", src, err)
		return
	}
	for _, v := range ee.Vars() {
		if v != "x" && v != "pi" {
			err = utils.NewConfigurationError("UserFunctions", "unknown variable %q in %q, only x and pi are defined", v, src)
			return
		}
	}
	e = &expression{
		source: src,
		expr:   ee,
		params: map[string]interface{}{"pi": math.Pi, "x": 0.},
	}
	// a trial evaluation catches boolean or string valued expressions at setup
	if _, err = e.eval(0.5); err != nil {
		err = utils.NewConfigurationError("UserFunctions", "unable to evaluate %q: %v", src, err)
		e = nil
	}
	return
}

func (e *expression) eval(x float64) (y float64, err error) {
	var (
		res interface{}
		ok  bool
	)
	e.params["x"] = x
	if res, err = e.expr.Evaluate(e.params); err != nil {
		return
	}
	if y, ok = res.(float64); !ok {
		err = fmt.Errorf("profiles: expression %q returned %T, not a number", e.source, res)
	}
	return
}
