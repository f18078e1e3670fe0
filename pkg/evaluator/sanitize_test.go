package evaluator

import (
	"strings"
	"testing"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeExpression(t *testing.T) {
	got, err := SanitizeExpression("1+2")
	require.NoError(t, err)
	assert.Equal(t, "1+2", got)

	got, err = SanitizeExpression("1+\x1b[31m2\n")
	require.NoError(t, err)
	assert.Equal(t, "1+[31m2", got)

	_, err = SanitizeExpression("1+\xff")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = SanitizeExpression(strings.Repeat("1", DefaultMaxInputSize+1))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSanitizeExpression_EnvLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "3")

	_, err := SanitizeExpression("1+2")
	require.NoError(t, err)

	_, err = SanitizeExpression("1+22")
	assert.ErrorContains(t, err, "limit=3")
}
