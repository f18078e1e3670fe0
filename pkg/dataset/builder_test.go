package dataset

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/evaluator"
	"github.com/aretw0/exprgen/pkg/matrix"
	"github.com/aretw0/exprgen/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constEvaluator returns the same result for every expression.
type constEvaluator struct {
	result domain.Result
}

func (c constEvaluator) Evaluate(context.Context, string) domain.Result {
	return c.result
}

func TestBuild_LabelsAreCorrect(t *testing.T) {
	eval := evaluator.New(evaluator.WithDeadline(time.Second))
	b := NewBuilder(matrix.Default(), eval, WithSeed(1))
	ctx := context.Background()

	ds, err := b.Build(ctx, Request{Valid: 25, Invalid: 20, MaxLength: 10})
	require.NoError(t, err)
	require.Len(t, ds.Valid, 25)
	require.Len(t, ds.Invalid, 20)
	assert.NotEmpty(t, ds.RunID)

	longest := 0
	for _, row := range ds.Valid {
		got := eval.Evaluate(ctx, row.Expression)
		require.True(t, got.OK, row.Expression)
		assert.Equal(t, row.Label, got.Label(), row.Expression)
		longest = max(longest, len(row.Expression)+len(row.Label))
	}
	assert.Equal(t, longest, ds.Longest)

	for _, row := range ds.Invalid {
		assert.Equal(t, domain.SentinelLabel, row.Label, row.Expression)
		assert.False(t, eval.Evaluate(ctx, row.Expression).OK, row.Expression)
	}
}

func TestBuild_SeedIsReproducible(t *testing.T) {
	req := Request{Valid: 10, Invalid: 10, MaxLength: 8}
	ctx := context.Background()

	first, err := NewBuilder(matrix.Default(), evaluator.New(), WithSeed(99)).Build(ctx, req)
	require.NoError(t, err)
	second, err := NewBuilder(matrix.Default(), evaluator.New(), WithSeed(99)).Build(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Invalid, second.Invalid)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestBuild_Workers(t *testing.T) {
	b := NewBuilder(matrix.Default(), evaluator.New(), WithSeed(5), WithWorkers(4))

	ds, err := b.Build(context.Background(), Request{Valid: 40, Invalid: 40, MaxLength: 6})
	require.NoError(t, err)
	assert.Len(t, ds.Valid, 40)
	assert.Len(t, ds.Invalid, 40)
}

func TestBuildInvalid_RandomShare(t *testing.T) {
	b := NewBuilder(matrix.Default(), constEvaluator{domain.Sentinel},
		WithSeed(3),
		WithRandomShare(0.5),
		WithCharset("#"),
	)

	rows, err := b.BuildInvalid(context.Background(), 4, 5)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	random := 0
	for _, row := range rows {
		if row.Expression == "#####" {
			random++
		}
	}
	assert.Equal(t, 2, random)
}

func TestBuildInvalid_DiscardsEvaluableCandidates(t *testing.T) {
	b := NewBuilder(matrix.Default(), constEvaluator{domain.Value(1)},
		WithSeed(3),
		WithMaxAttempts(50),
	)

	rows, err := b.BuildInvalid(context.Background(), 3, 5)
	assert.ErrorIs(t, err, domain.ErrAttemptsExhausted)
	assert.Empty(t, rows)
}

func TestBuildValid_DiscardsSentinel(t *testing.T) {
	b := NewBuilder(matrix.Default(), constEvaluator{domain.Sentinel},
		WithSeed(3),
		WithMaxAttempts(50),
	)

	rows, _, err := b.BuildValid(context.Background(), 1, 5)
	assert.ErrorIs(t, err, domain.ErrAttemptsExhausted)
	assert.Empty(t, rows)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(matrix.Default(), constEvaluator{domain.Sentinel}, WithSeed(1))
	_, _, err := b.BuildValid(ctx, 5, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_RecordsMetrics(t *testing.T) {
	m := observability.NewMetrics()
	b := NewBuilder(matrix.Default(), constEvaluator{domain.Value(2)}, WithSeed(8), WithMetrics(m))

	rows, _, err := b.BuildValid(context.Background(), 3, 4)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	expected := `
# HELP exprgen_dataset_rows Rows accepted into the last built dataset, by set.
# TYPE exprgen_dataset_rows gauge
exprgen_dataset_rows{set="valid"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "exprgen_dataset_rows"))
}

func TestRequest_Validate(t *testing.T) {
	assert.NoError(t, Request{Valid: 1, Invalid: 0, MaxLength: 1}.Validate())

	err := Request{Valid: -1, Invalid: 1, MaxLength: 0}.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "Valid must be at least 0")
	assert.Contains(t, err.Error(), "MaxLength must be greater than 0")

	_, err = NewBuilder(matrix.Default(), evaluator.New()).Build(context.Background(), Request{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
