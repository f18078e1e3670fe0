package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/exprgen"
	"github.com/aretw0/exprgen/internal/config"
	"github.com/aretw0/exprgen/internal/presentation/tui"
	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/observability"
)

// App bundles what every subcommand needs.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Engine  *exprgen.Engine
}

// Setup resolves configuration and builds the engine.
func Setup(opts Options) (*App, error) {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := createLogger(cfg)
	if err != nil {
		return nil, err
	}
	metrics := observability.NewMetrics()
	engine, err := createEngine(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Logger: logger, Metrics: metrics, Engine: engine}, nil
}

// Run builds a dataset, writes it to every configured sink and reports on w.
func Run(ctx context.Context, app *App, req dataset.Request, w io.Writer, headless bool) (*domain.Dataset, error) {
	sinks, closeSinks, err := createSinks(ctx, app.Config, app.Logger)
	if err != nil {
		return nil, err
	}
	defer closeSinks()

	r := exprgen.NewRunner(sinks...)
	r.Output = w
	r.Headless = headless
	r.MetricsFile = app.Config.MetricsFile
	if !headless {
		r.Renderer = tui.NewRenderer()
	}

	ds, err := r.Run(ctx, app.Engine, req)
	if err != nil {
		if isInterrupted(err) {
			printSystemMessage(w, "Interrupted.")
		}
		return ds, err
	}

	app.Logger.Info("run finished", "run_id", ds.RunID, "valid", len(ds.Valid), "invalid", len(ds.Invalid))
	return ds, nil
}

// Evaluate labels each expression and prints "expression<TAB>label" lines.
func Evaluate(ctx context.Context, app *App, exprs []string, w io.Writer) {
	for _, expr := range exprs {
		res := app.Engine.Evaluate(ctx, expr)
		fmt.Fprintf(w, "%s\t%s\n", expr, res.Label())
	}
}

// Sample builds n valid and n invalid rows without persisting them and
// prints them as a table.
func Sample(ctx context.Context, app *App, n, maxLength int, w io.Writer) error {
	ds, err := app.Engine.Build(ctx, dataset.Request{Valid: n, Invalid: n, MaxLength: maxLength})
	if err != nil {
		return err
	}
	tui.PrintRows(w, domain.SetValid, ds.Valid)
	fmt.Fprintln(w)
	tui.PrintRows(w, domain.SetInvalid, ds.Invalid)
	return nil
}

// Validate analyses the character table and prints warnings.
// It returns an error only for tables that cannot produce any expression.
func Validate(app *App, w io.Writer) error {
	report, err := app.Engine.Validate()
	for _, warning := range report.Warnings() {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Matrix is valid! %d tokens, %d reachable.\n", app.Engine.Matrix().Size(), len(report.Reachable))
	return nil
}
