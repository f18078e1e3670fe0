package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/exprgen"
	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/evaluator"
	"github.com/aretw0/exprgen/pkg/matrix"
	"github.com/aretw0/exprgen/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MatrixURI is the resource that describes the character table.
const MatrixURI = "exprgen://matrix"

// Engine defines what the MCP server needs from the generator core.
type Engine interface {
	Evaluate(ctx context.Context, expression string) domain.Result
	Build(ctx context.Context, req dataset.Request) (*domain.Dataset, error)
	Matrix() *matrix.Matrix
}

// EvaluationResponse is the structured output of evaluate_expression.
type EvaluationResponse struct {
	Expression string   `json:"expression" jsonschema_description:"The evaluated expression"`
	Label      string   `json:"label" jsonschema_description:"Decimal value or NaN when the expression is not evaluable"`
	Value      *float64 `json:"value,omitempty" jsonschema_description:"Numeric value, omitted for NaN"`
}

// DatasetResponse is the structured output of generate_dataset.
type DatasetResponse struct {
	RunID   string       `json:"run_id" jsonschema_description:"Identifier of the build"`
	Valid   []domain.Row `json:"valid" jsonschema_description:"Expressions with a finite value"`
	Invalid []domain.Row `json:"invalid" jsonschema_description:"Expressions labelled NaN"`
	Longest int          `json:"longest" jsonschema_description:"Largest expression plus label length among valid rows"`
	Stored  bool         `json:"stored" jsonschema_description:"Whether the rows were persisted"`
}

// TokenInfo describes one row of the character table.
type TokenInfo struct {
	Index     int      `json:"index"`
	Glyph     string   `json:"glyph"`
	Category  string   `json:"category"`
	Start     bool     `json:"start"`
	End       bool     `json:"end"`
	Followers []string `json:"followers"`
}

// Server wraps the exprgen Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	store     ports.DatasetStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// When store is non-nil, generated datasets are persisted.
func NewServer(engine Engine, store ports.DatasetStore) *Server {
	s := &Server{
		engine:    engine,
		store:     store,
		mcpServer: server.NewMCPServer("exprgen-mcp", strings.TrimSpace(exprgen.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	evaluateTool := mcp.NewTool("evaluate_expression",
		mcp.WithDescription("Evaluate an arithmetic expression. Supports + - * / ^, (), {}, sin, cos, tan, cot, log (base 10) and ln."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("The expression to evaluate, e.g. 2^3+log(100)")),
		mcp.WithOutputSchema[EvaluationResponse](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	generateTool := mcp.NewTool("generate_dataset",
		mcp.WithDescription("Generate labelled valid and invalid expressions from the character table."),
		mcp.WithNumber("valid", mcp.Required(), mcp.Description("Number of valid expressions")),
		mcp.WithNumber("invalid", mcp.Required(), mcp.Description("Number of invalid expressions")),
		mcp.WithNumber("max_length", mcp.Required(), mcp.Description("Upper bound on the token count of each expression")),
		mcp.WithOutputSchema[DatasetResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EvaluationResponse, error) {
	raw, ok := args["expression"].(string)
	if !ok {
		return EvaluationResponse{}, fmt.Errorf("%w: expression must be a string", domain.ErrInvalidArgument)
	}
	expr, err := evaluator.SanitizeExpression(raw)
	if err != nil {
		slog.Warn("MCP Evaluate: Input rejected", "err", err, "size", len(raw))
		return EvaluationResponse{}, err
	}

	res := s.engine.Evaluate(ctx, expr)
	resp := EvaluationResponse{Expression: expr, Label: res.Label()}
	if res.OK {
		v := res.Value
		resp.Value = &v
	}
	return resp, nil
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DatasetResponse, error) {
	req, err := dataset.DecodeRequest(args)
	if err != nil {
		return DatasetResponse{}, err
	}

	ds, err := s.engine.Build(ctx, req)
	if err != nil {
		return DatasetResponse{}, fmt.Errorf("generate failed: %w", err)
	}

	resp := DatasetResponse{
		RunID:   ds.RunID,
		Valid:   ds.Valid,
		Invalid: ds.Invalid,
		Longest: ds.Longest,
	}
	if s.store != nil {
		if err := dataset.Persist(ctx, s.store, ds); err != nil {
			return DatasetResponse{}, err
		}
		resp.Stored = true
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MatrixURI, "Character table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(describeMatrix(s.engine.Matrix()))
		if err != nil {
			return nil, fmt.Errorf("failed to encode matrix: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      MatrixURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func describeMatrix(m *matrix.Matrix) []TokenInfo {
	tokens := m.Tokens()
	out := make([]TokenInfo, 0, len(tokens))
	for _, tok := range tokens {
		info := TokenInfo{
			Index:     tok.Index,
			Glyph:     tok.Glyph,
			Category:  tok.Category.String(),
			Start:     m.CanStart(tok.Index),
			End:       m.CanEnd(tok.Index),
			Followers: []string{},
		}
		for _, next := range tokens {
			if m.CanFollow(tok.Index, next.Index) {
				info.Followers = append(info.Followers, next.Glyph)
			}
		}
		out = append(out, info)
	}
	return out
}
