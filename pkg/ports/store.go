package ports

import (
	"context"

	"github.com/aretw0/exprgen/pkg/domain"
)

// DatasetStore defines the interface for persisting generated datasets.
type DatasetStore interface {
	// Save replaces the rows stored for a run and set.
	Save(ctx context.Context, runID string, set domain.Set, rows []domain.Row) error

	// Load retrieves the rows of a run and set.
	// Returns domain.ErrDatasetNotFound if nothing was saved.
	Load(ctx context.Context, runID string, set domain.Set) ([]domain.Row, error)

	// Delete removes every set of a run.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of stored runs.
	List(ctx context.Context) ([]string, error)
}
