package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "exprgen API", doc.Info.Title)
	for _, path := range []string{"/healthz", "/info", "/evaluate", "/datasets", "/datasets/{runID}/{set}", "/datasets/{runID}", "/metrics"} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	create := doc.Paths.Find("/datasets").Post
	require.NotNil(t, create)
	body := create.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.NoError(t, body.VisitJSON(map[string]any{"valid": 2.0, "invalid": 1.0, "max_length": 8.0}))
	assert.Error(t, body.VisitJSON(map[string]any{"valid": 2.0}), "max_length is required")
	assert.Error(t, body.VisitJSON(map[string]any{"max_length": 0.0}))
}
