package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/exprgen/internal/logging"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/observability"
	lua "github.com/yuin/gopher-lua"
)

// DefaultDeadline bounds a single evaluation when no deadline is configured.
const DefaultDeadline = time.Second

var (
	errNotNumber = errors.New("result is not numeric")
	errOverflow  = errors.New("result exceeds the float64 range")
	errDomain    = errors.New("result is not a number")
)

// Evaluator evaluates expressions under a wall-clock deadline.
// It is safe for concurrent use; every call gets its own Lua state.
type Evaluator struct {
	deadline time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithDeadline sets the per-evaluation deadline.
func WithDeadline(d time.Duration) Option {
	return func(e *Evaluator) {
		e.deadline = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithMetrics records evaluation outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{deadline: DefaultDeadline}
	for _, opt := range opts {
		opt(e)
	}
	if e.deadline <= 0 {
		e.deadline = DefaultDeadline
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	return e
}

// Deadline returns the per-evaluation deadline.
func (e *Evaluator) Deadline() time.Duration {
	return e.deadline
}

// Evaluate returns the value of expression or domain.Sentinel.
// It returns within the deadline (or earlier if ctx is done) and never panics.
func (e *Evaluator) Evaluate(ctx context.Context, expression string) domain.Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.deadline)
	defer cancel()

	type outcome struct {
		value float64
		err   error
	}
	done := make(chan outcome, 1)

	source := "return " + Rewrite(expression)
	go func() {
		v, err := run(ctx, source)
		done <- outcome{value: v, err: err}
	}()

	select {
	case o := <-done:
		result := domain.Sentinel
		label := observability.OutcomeOK
		switch {
		case errors.Is(o.err, errOverflow):
			label = observability.OutcomeOverflow
		case o.err != nil && ctx.Err() != nil:
			label = observability.OutcomeTimeout
		case o.err != nil:
			label = observability.OutcomeError
		default:
			result = domain.Value(o.value)
		}
		if o.err != nil {
			e.logger.Debug("evaluation failed", "expression", expression, "err", o.err)
		}
		e.metrics.ObserveEvaluation(label, time.Since(start))
		return result

	case <-ctx.Done():
		// The worker is abandoned; it exits once the VM observes ctx.
		e.logger.Debug("evaluation abandoned", "expression", expression, "deadline", e.deadline)
		e.metrics.ObserveEvaluation(observability.OutcomeTimeout, time.Since(start))
		return domain.Sentinel
	}
}

// Evaluate is a convenience wrapper using a one-off Evaluator.
func Evaluate(expression string, deadline time.Duration) domain.Result {
	return New(WithDeadline(deadline)).Evaluate(context.Background(), expression)
}

// run executes source in a math-only Lua state.
func run(ctx context.Context, source string) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if err := L.CallByParam(lua.P{
		Fn:      L.NewFunction(lua.OpenMath),
		NRet:    0,
		Protect: true,
	}, lua.LString(lua.MathLibName)); err != nil {
		return 0, err
	}
	L.SetGlobal("cot", L.NewFunction(luaCot))

	L.SetContext(ctx)

	fn, err := L.LoadString(source)
	if err != nil {
		return 0, err
	}

	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return 0, err
	}

	ret := L.Get(-1)
	L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: got %s", errNotNumber, ret.Type())
	}

	v := float64(n)
	if math.IsNaN(v) {
		return 0, errDomain
	}
	if math.Abs(v) > math.MaxFloat64 {
		return 0, errOverflow
	}
	return v, nil
}

// luaCot is the reciprocal of tan, so "2/cot(1)" divides by the whole cotangent.
func luaCot(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	L.Push(lua.LNumber(1 / math.Tan(x)))
	return 1
}
