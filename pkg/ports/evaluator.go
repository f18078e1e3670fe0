package ports

import (
	"context"

	"github.com/aretw0/exprgen/pkg/domain"
)

// Evaluator computes the label of an expression.
// Implementations must be total: every failure maps to domain.Sentinel.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string) domain.Result
}
