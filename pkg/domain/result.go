package domain

import (
	"math"
	"strconv"
)

// Result is the outcome of evaluating an expression.
// A Result with OK false is the sentinel: evaluation failed, timed out or overflowed.
// No reason is carried by design.
type Result struct {
	Value float64
	OK    bool
}

// Sentinel is the "could not evaluate" outcome.
var Sentinel = Result{Value: math.NaN()}

// Value wraps a finite number. Non-finite numbers collapse to the sentinel.
func Value(v float64) Result {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Sentinel
	}
	return Result{Value: v, OK: true}
}

// Label renders the result as it is stored in a dataset row.
func (r Result) Label() string {
	if !r.OK {
		return SentinelLabel
	}
	return FormatValue(r.Value)
}

// FormatValue renders a finite number in plain decimal notation,
// falling back to exponent notation for very large or very small magnitudes.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
