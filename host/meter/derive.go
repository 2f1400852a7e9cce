package meter

import (
	"errors"
	"fmt"

	"github.com/Knetic/govaluate"
)

var ErrNotNumeric = errors.New("expression did not produce a number")

// Deriver turns a reading into a user quantity, e.g. "hz * 60 / 2" for
// the rpm of a shaft with two marks per turn. The expression may use the
// variables hz, pulses and gate_ms and the functions min, max and abs.
type Deriver struct {
	source string
	expr   *govaluate.EvaluableExpression
}

// NewDeriver parses the expression once
func NewDeriver(expression string) (*Deriver, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, functions())
	if err != nil {
		return nil, fmt.Errorf("parse expression %q: %w", expression, err)
	}
	for _, v := range expr.Vars() {
		switch v {
		case "hz", "pulses", "gate_ms":
		default:
			return nil, fmt.Errorf("expression %q: unknown variable %q", expression, v)
		}
	}
	return &Deriver{source: expression, expr: expr}, nil
}

// String returns the expression source
func (d *Deriver) String() string {
	return d.source
}

// Eval evaluates the expression for one reading
func (d *Deriver) Eval(hz, pulses, gateMillis uint32) (float64, error) {
	result, err := d.expr.Evaluate(map[string]interface{}{
		"hz":      float64(hz),
		"pulses":  float64(pulses),
		"gate_ms": float64(gateMillis),
	})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", d.source, err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q gave %v", ErrNotNumeric, d.source, result)
	}
	return value, nil
}

func toFloat(arg interface{}) float64 {
	switch t := arg.(type) {
	case int:
		return float64(t)
	case float64:
		return t
	}
	return 0
}

// functions callable from expressions
func functions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"min": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, errors.New("min takes two arguments")
			}
			return min(toFloat(args[0]), toFloat(args[1])), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, errors.New("max takes two arguments")
			}
			return max(toFloat(args[0]), toFloat(args[1])), nil
		},
		"abs": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("abs takes one argument")
			}
			v := toFloat(args[0])
			if v < 0 {
				v = -v
			}
			return v, nil
		},
	}
}
