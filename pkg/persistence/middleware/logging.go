package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.DatasetStore
	logger *slog.Logger
	name   string
}

// NewLoggingMiddleware logs every write and failure of the wrapped store.
// name identifies the store in log records.
func NewLoggingMiddleware(logger *slog.Logger, name string) Middleware {
	return func(next ports.DatasetStore) ports.DatasetStore {
		return &loggingMiddleware{next: next, logger: logger, name: name}
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, runID string, set domain.Set, rows []domain.Row) error {
	start := time.Now()
	err := m.next.Save(ctx, runID, set, rows)
	if err != nil {
		m.logger.Error("dataset save failed", "store", m.name, "run_id", runID, "set", set, "err", err)
		return err
	}
	m.logger.Info("dataset saved", "store", m.name, "run_id", runID, "set", set, "rows", len(rows), "elapsed", time.Since(start))
	return nil
}

func (m *loggingMiddleware) Load(ctx context.Context, runID string, set domain.Set) ([]domain.Row, error) {
	rows, err := m.next.Load(ctx, runID, set)
	if err != nil {
		m.logger.Debug("dataset load failed", "store", m.name, "run_id", runID, "set", set, "err", err)
	}
	return rows, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, runID string) error {
	err := m.next.Delete(ctx, runID)
	if err != nil {
		m.logger.Error("dataset delete failed", "store", m.name, "run_id", runID, "err", err)
		return err
	}
	m.logger.Info("dataset deleted", "store", m.name, "run_id", runID)
	return nil
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
