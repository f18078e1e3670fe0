package tests

import (
	"context"
	"math"
	"testing"

	"github.com/aretw0/exprgen/pkg/ports"
)

// EvaluatorContractTest is a reusable test suite that verifies if an adapter complies with ports.Evaluator.
func EvaluatorContractTest(t *testing.T, ev ports.Evaluator) {
	t.Helper()
	ctx := context.Background()

	// 1. Finite values
	t.Run("Evaluate_Finite", func(t *testing.T) {
		cases := map[string]float64{
			"1+2*3":     7,
			"(1+2)*3":   9,
			"{1+2}*3":   9,
			"2^3^2":     512,
			"7/2":       3.5,
			"log(100)":  2,
			"sin(0)+1":  1,
			"cos(0)":    1,
			"ln(1)":     0,
			"10-2-3":    5,
			"1.5+1.5":   3,
			"tan(0)":    0,
			"2*cos(0)":  2,
			"(((4)))":   4,
			"{(2)}^{2}": 4,
		}
		for expr, want := range cases {
			res := ev.Evaluate(ctx, expr)
			if !res.OK {
				t.Errorf("%q: expected a value, got the sentinel", expr)
				continue
			}
			if math.Abs(res.Value-want) > 1e-9 {
				t.Errorf("%q: got %v, want %v", expr, res.Value, want)
			}
		}
	})

	// 2. Totality: every failure maps to the sentinel
	t.Run("Evaluate_Sentinel", func(t *testing.T) {
		for _, expr := range []string{"", "+", "1+", "(1", "1)", "1/0", "0/0", "log(0)", "ln(0-1)", "x", "9^9^9^9"} {
			res := ev.Evaluate(ctx, expr)
			if res.OK {
				t.Errorf("%q: expected the sentinel, got %v", expr, res.Value)
			}
		}
	})

	// 3. Canceled context
	t.Run("Evaluate_Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		if res := ev.Evaluate(canceled, "1+1"); res.OK {
			t.Errorf("expected the sentinel for a canceled context, got %v", res.Value)
		}
	})
}
