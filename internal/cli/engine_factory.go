package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/exprgen"
	"github.com/aretw0/exprgen/internal/config"
	"github.com/aretw0/exprgen/pkg/observability"
)

// resolveMatrixPath picks the character table: the configured path, then
// char_matrix.csv in the working directory, then the embedded default ("").
func resolveMatrixPath(cfg config.Config) string {
	if cfg.Matrix != "" {
		return cfg.Matrix
	}
	if _, err := os.Stat(config.DefaultMatrixPath); err == nil {
		return config.DefaultMatrixPath
	}
	return ""
}

// createEngine initializes an exprgen engine with standard CLI conventions.
func createEngine(cfg config.Config, logger *slog.Logger, metrics *observability.Metrics) (*exprgen.Engine, error) {
	engineOpts := []exprgen.Option{
		exprgen.WithLogger(logger),
		exprgen.WithMetrics(metrics),
		exprgen.WithDeadline(cfg.Deadline),
		exprgen.WithWorkers(cfg.Workers),
		exprgen.WithMaxAttempts(cfg.MaxAttempts),
		exprgen.WithRandomShare(cfg.RandomShare),
	}
	if cfg.Seed != nil {
		engineOpts = append(engineOpts, exprgen.WithSeed(*cfg.Seed))
	}

	if path := resolveMatrixPath(cfg); path != "" {
		logger.Debug("using character table", "path", path)
		engineOpts = append(engineOpts, exprgen.WithMatrixPath(path))
	} else {
		logger.Debug("using embedded character table")
	}

	engine, err := exprgen.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
