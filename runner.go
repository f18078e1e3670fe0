package exprgen

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/ports"
)

// Sink is a named destination for built datasets.
type Sink struct {
	Name  string
	Store ports.DatasetStore
}

// Runner drives a full dataset build: generate, persist and report.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
	Sinks    []Sink
	// MetricsFile, when set, receives a Prometheus textfile export after the run.
	MetricsFile string
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Output must be set before Run.
func NewRunner(sinks ...Sink) *Runner {
	return &Runner{Sinks: sinks}
}

// Run builds the request, saves it to every sink and prints the longest
// metric followed by a summary unless Headless is set.
func (r *Runner) Run(ctx context.Context, engine *Engine, req dataset.Request) (*domain.Dataset, error) {
	writer := r.Output
	if writer == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ds, err := engine.Build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("build error: %w", err)
	}

	fmt.Fprintln(writer, ds.Longest)

	destinations := make([]string, 0, len(r.Sinks))
	for _, sink := range r.Sinks {
		if err := dataset.Persist(ctx, sink.Store, ds); err != nil {
			return ds, fmt.Errorf("%s: %w", sink.Name, err)
		}
		destinations = append(destinations, sink.Name)
	}

	if r.MetricsFile != "" {
		if err := engine.Metrics().WriteTextfile(r.MetricsFile); err != nil {
			return ds, fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if r.Headless {
		return ds, nil
	}

	output := Summary(ds, destinations)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(writer, strings.TrimSpace(output))
	return ds, nil
}

// Summary renders a markdown report of a finished run.
func Summary(ds *domain.Dataset, destinations []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", ds.RunID)
	b.WriteString("| set | rows |\n|---|---|\n")
	fmt.Fprintf(&b, "| valid | %d |\n", len(ds.Valid))
	fmt.Fprintf(&b, "| invalid | %d |\n\n", len(ds.Invalid))
	fmt.Fprintf(&b, "Longest expression plus label: **%d** characters.\n", ds.Longest)
	if len(destinations) > 0 {
		b.WriteString("\nWritten to:\n\n")
		for _, d := range destinations {
			fmt.Fprintf(&b, "- `%s`\n", d)
		}
	}
	return b.String()
}
