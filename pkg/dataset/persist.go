package dataset

import (
	"context"
	"fmt"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/ports"
)

// Persist saves both sets of a dataset under its run ID.
func Persist(ctx context.Context, store ports.DatasetStore, ds *domain.Dataset) error {
	if err := store.Save(ctx, ds.RunID, domain.SetValid, ds.Valid); err != nil {
		return fmt.Errorf("failed to save valid set: %w", err)
	}
	if err := store.Save(ctx, ds.RunID, domain.SetInvalid, ds.Invalid); err != nil {
		return fmt.Errorf("failed to save invalid set: %w", err)
	}
	return nil
}
