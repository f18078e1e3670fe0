package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/exprgen"
	"github.com/aretw0/exprgen/pkg/adapters/memory"
	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine labels everything as 1 and returns a fixed dataset.
type stubEngine struct {
	buildErr error
	built    []dataset.Request
}

func (s *stubEngine) Evaluate(ctx context.Context, expression string) domain.Result {
	if expression == "1/0" {
		return domain.Sentinel
	}
	return domain.Value(1)
}

func (s *stubEngine) Build(ctx context.Context, req dataset.Request) (*domain.Dataset, error) {
	s.built = append(s.built, req)
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	return &domain.Dataset{
		RunID:   "run-1",
		Valid:   []domain.Row{{Expression: "1", Label: "1"}},
		Invalid: []domain.Row{{Expression: "1/0", Label: domain.SentinelLabel}},
		Longest: 2,
	}, nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, NewHandler(&stubEngine{}), "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestEvaluate(t *testing.T) {
	h := NewHandler(&stubEngine{})

	w := do(t, h, "POST", "/evaluate", `{"expression":"2","expressions":["1/0"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got []Evaluation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].Expression)
	assert.Equal(t, "1", got[0].Label)
	require.NotNil(t, got[0].Value)
	assert.Equal(t, 1.0, *got[0].Value)
	assert.Equal(t, domain.SentinelLabel, got[1].Label)
	assert.Nil(t, got[1].Value)
}

func TestEvaluate_BadRequest(t *testing.T) {
	h := NewHandler(&stubEngine{})
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/evaluate", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/evaluate", `{}`).Code)
}

func TestCreateDataset_Stores(t *testing.T) {
	eng := &stubEngine{}
	store := memory.NewStore()
	h := NewHandler(eng, WithStore(store))

	w := do(t, h, "POST", "/datasets", `{"valid":1,"invalid":"1","max_length":4}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []dataset.Request{{Valid: 1, Invalid: 1, MaxLength: 4}}, eng.built)

	var resp DatasetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Stored)
	assert.Equal(t, "run-1", resp.RunID)

	w = do(t, h, "GET", "/datasets", "")
	assert.JSONEq(t, `["run-1"]`, w.Body.String())

	w = do(t, h, "GET", "/datasets/run-1/invalid", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"expression":"1/0","label":"NaN"}]`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/datasets/nope/valid", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/datasets/run-1/other", "").Code)

	assert.Equal(t, http.StatusNoContent, do(t, h, "DELETE", "/datasets/run-1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/datasets/run-1/valid", "").Code)
}

func TestCreateDataset_Errors(t *testing.T) {
	eng := &stubEngine{}
	h := NewHandler(eng)

	w := do(t, h, "POST", "/datasets", `{"valid":1,"invalid":1,"max_length":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MaxLength must be greater than 0")
	assert.Empty(t, eng.built)

	eng.buildErr = domain.ErrAttemptsExhausted
	w = do(t, h, "POST", "/datasets", `{"valid":1,"invalid":1,"max_length":3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// no store configured
	assert.Equal(t, http.StatusNotImplemented, do(t, h, "GET", "/datasets", "").Code)
}

func TestCreateDataset_RealEngine(t *testing.T) {
	eng, err := exprgen.New(exprgen.WithSeed(7))
	require.NoError(t, err)
	h := NewHandler(eng)

	w := do(t, h, "POST", "/datasets", `{"valid":3,"invalid":3,"max_length":6}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp DatasetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Valid, 3)
	assert.Len(t, resp.Invalid, 3)
	assert.False(t, resp.Stored)
	for _, row := range resp.Invalid {
		assert.Equal(t, domain.SentinelLabel, row.Label)
	}
}

func TestMetrics(t *testing.T) {
	m := observability.NewMetrics()
	eng, err := exprgen.New(exprgen.WithMetrics(m))
	require.NoError(t, err)
	h := NewHandler(eng, WithGatherer(m.Registry()))

	require.Equal(t, http.StatusOK, do(t, h, "POST", "/evaluate", `{"expression":"1+1"}`).Code)

	w := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `exprgen_evaluations_total{outcome="ok"} 1`)
}

func TestEvaluate_RejectsOversizedInput(t *testing.T) {
	h := NewHandler(&stubEngine{})
	w := do(t, h, "POST", "/evaluate", `{"expression":"`+strings.Repeat("1", 5000)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "maximum allowed size")
}
