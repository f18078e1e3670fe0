package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/exprgen"
	"github.com/aretw0/exprgen/api"
	"github.com/aretw0/exprgen/internal/logging"
	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/evaluator"
	"github.com/aretw0/exprgen/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the API needs from the generator core.
type Engine interface {
	Evaluate(ctx context.Context, expression string) domain.Result
	Build(ctx context.Context, req dataset.Request) (*domain.Dataset, error)
}

// Server serves the exprgen HTTP API.
type Server struct {
	Engine   Engine
	Store    ports.DatasetStore
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStore persists built datasets and enables the read endpoints.
func WithStore(store ports.DatasetStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithGatherer exposes a metrics registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// EvaluateRequest is the body of POST /evaluate.
// Either Expression or Expressions must be set.
type EvaluateRequest struct {
	Expression  string   `json:"expression,omitempty"`
	Expressions []string `json:"expressions,omitempty"`
}

// Evaluation is one labelled expression.
type Evaluation struct {
	Expression string   `json:"expression"`
	Label      string   `json:"label"`
	Value      *float64 `json:"value,omitempty"`
}

// DatasetResponse is returned by POST /datasets.
type DatasetResponse struct {
	*domain.Dataset
	Stored bool `json:"stored"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}

	r := chi.NewRouter()

	// API documentation
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.Spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/evaluate", s.Evaluate)
	r.Post("/datasets", s.CreateDataset)
	r.Get("/datasets", s.ListDatasets)
	r.Get("/datasets/{runID}/{set}", s.GetDataset)
	r.Delete("/datasets/{runID}", s.DeleteDataset)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>exprgen API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "exprgen-http",
		"version": strings.TrimSpace(exprgen.Version),
	})
}

// Evaluate handles the POST /evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Evaluate: Invalid request body", "err", err)
		return
	}

	exprs := body.Expressions
	if body.Expression != "" {
		exprs = append([]string{body.Expression}, exprs...)
	}
	if len(exprs) == 0 {
		http.Error(w, "expression is required", http.StatusBadRequest)
		return
	}

	out := make([]Evaluation, 0, len(exprs))
	for _, raw := range exprs {
		expr, err := evaluator.SanitizeExpression(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			s.Logger.Warn("Evaluate: Input rejected", "err", err, "size", len(raw))
			return
		}
		res := s.Engine.Evaluate(r.Context(), expr)
		ev := Evaluation{Expression: expr, Label: res.Label()}
		if res.OK {
			v := res.Value
			ev.Value = &v
		}
		out = append(out, ev)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateDataset handles the POST /datasets request.
func (s *Server) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var args map[string]any
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateDataset: Invalid request body", "err", err)
		return
	}

	req, err := dataset.DecodeRequest(args)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ds, err := s.Engine.Build(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrAttemptsExhausted) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, "Build error: "+err.Error(), status)
		s.Logger.Error("Build failed", "err", err)
		return
	}

	resp := DatasetResponse{Dataset: ds}
	if s.Store != nil {
		if err := dataset.Persist(r.Context(), s.Store, ds); err != nil {
			http.Error(w, "Store error: "+err.Error(), http.StatusInternalServerError)
			s.Logger.Error("Persist failed", "err", err, "run_id", ds.RunID)
			return
		}
		resp.Stored = true
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListDatasets handles the GET /datasets request.
func (s *Server) ListDatasets(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, "List error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetDataset handles the GET /datasets/{runID}/{set} request.
func (s *Server) GetDataset(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	set := domain.Set(chi.URLParam(r, "set"))
	if set != domain.SetValid && set != domain.SetInvalid {
		http.Error(w, "set must be valid or invalid", http.StatusBadRequest)
		return
	}

	rows, err := s.Store.Load(r.Context(), chi.URLParam(r, "runID"), set)
	if errors.Is(err, domain.ErrDatasetNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Load error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// DeleteDataset handles the DELETE /datasets/{runID} request.
func (s *Server) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "runID")); err != nil {
		http.Error(w, "Delete error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		http.Error(w, "no dataset store configured", http.StatusNotImplemented)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
