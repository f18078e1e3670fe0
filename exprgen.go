package exprgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/exprgen/internal/logging"
	"github.com/aretw0/exprgen/internal/validator"
	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/evaluator"
	"github.com/aretw0/exprgen/pkg/matrix"
	"github.com/aretw0/exprgen/pkg/observability"
)

// Engine is the high-level entry point for the exprgen library.
// It wires the matrix, evaluator and dataset builder together.
type Engine struct {
	matrix     *matrix.Matrix
	matrixPath string
	evaluator  *evaluator.Evaluator
	builder    *dataset.Builder
	metrics    *observability.Metrics
	logger     *slog.Logger

	deadline    time.Duration
	builderOpts []dataset.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithMatrix uses an already parsed table.
func WithMatrix(m *matrix.Matrix) Option {
	return func(e *Engine) {
		e.matrix = m
	}
}

// WithMatrixPath loads the table from a CSV file.
func WithMatrixPath(path string) Option {
	return func(e *Engine) {
		e.matrixPath = path
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records generation and evaluation metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithDeadline bounds each evaluation.
func WithDeadline(d time.Duration) Option {
	return func(e *Engine) {
		e.deadline = d
	}
}

// WithSeed makes single-worker builds reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.builderOpts = append(e.builderOpts, dataset.WithSeed(seed))
	}
}

// WithWorkers sets the number of candidate-producing goroutines.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.builderOpts = append(e.builderOpts, dataset.WithWorkers(n))
	}
}

// WithMaxAttempts caps the candidates tried per set (0 = unbounded).
func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		e.builderOpts = append(e.builderOpts, dataset.WithMaxAttempts(n))
	}
}

// WithRandomShare sets the fraction of random strings in the invalid set.
func WithRandomShare(share float64) Option {
	return func(e *Engine) {
		e.builderOpts = append(e.builderOpts, dataset.WithRandomShare(share))
	}
}

// New initializes an Engine.
// Without WithMatrix or WithMatrixPath the embedded default table is used.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{deadline: evaluator.DefaultDeadline}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.matrix == nil {
		if eng.matrixPath != "" {
			m, err := matrix.Load(eng.matrixPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load matrix %s: %w", eng.matrixPath, err)
			}
			eng.matrix = m
		} else {
			eng.matrix = matrix.Default()
		}
	}

	eng.evaluator = evaluator.New(
		evaluator.WithDeadline(eng.deadline),
		evaluator.WithLogger(eng.logger),
		evaluator.WithMetrics(eng.metrics),
	)

	builderOpts := append([]dataset.Option{
		dataset.WithLogger(eng.logger),
		dataset.WithMetrics(eng.metrics),
	}, eng.builderOpts...)
	eng.builder = dataset.NewBuilder(eng.matrix, eng.evaluator, builderOpts...)

	eng.logger.Debug("engine ready", "tokens", eng.matrix.Size(), "deadline", eng.deadline)
	return eng, nil
}

// Build generates both sets of a request.
func (e *Engine) Build(ctx context.Context, req dataset.Request) (*domain.Dataset, error) {
	return e.builder.Build(ctx, req)
}

// Evaluate labels a single expression.
func (e *Engine) Evaluate(ctx context.Context, expression string) domain.Result {
	return e.evaluator.Evaluate(ctx, expression)
}

// Validate analyses the table for unreachable tokens and dead ends.
func (e *Engine) Validate() (validator.Report, error) {
	return validator.ValidateMatrix(e.matrix)
}

// Matrix returns the table in use.
func (e *Engine) Matrix() *matrix.Matrix {
	return e.matrix
}

// Metrics returns the metrics sink, which may be nil.
func (e *Engine) Metrics() *observability.Metrics {
	return e.metrics
}
