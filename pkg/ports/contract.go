package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDatasetStoreContract runs a suite of tests to verify that a DatasetStore implementation
// adheres to the defined interface contract.
func RunDatasetStoreContract(t *testing.T, store DatasetStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	valid := []domain.Row{
		{Expression: "1+2", Label: "3"},
		{Expression: "sin(0)*{4}", Label: "0"},
		{Expression: "7/2", Label: "3.5"},
	}
	invalid := []domain.Row{
		{Expression: "1/0", Label: domain.SentinelLabel},
		{Expression: `a,"b`, Label: domain.SentinelLabel},
	}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, domain.SetValid, valid))
		require.NoError(t, store.Save(ctx, runID, domain.SetInvalid, invalid))

		loaded, err := store.Load(ctx, runID, domain.SetValid)
		require.NoError(t, err)
		assert.Equal(t, valid, loaded)

		loaded, err = store.Load(ctx, runID, domain.SetInvalid)
		require.NoError(t, err)
		assert.Equal(t, invalid, loaded)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		replacement := valid[:1]
		require.NoError(t, store.Save(ctx, runID, domain.SetValid, replacement))

		loaded, err := store.Load(ctx, runID, domain.SetValid)
		require.NoError(t, err)
		assert.Equal(t, replacement, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID, domain.SetValid)
		assert.ErrorIs(t, err, domain.ErrDatasetNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := runID + "-2"
		require.NoError(t, store.Save(ctx, other, domain.SetValid, valid))
		defer func() {
			_ = store.Delete(ctx, other)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, runID)
		assert.Contains(t, runs, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, runID))

		_, err := store.Load(ctx, runID, domain.SetValid)
		assert.ErrorIs(t, err, domain.ErrDatasetNotFound, "Load after Delete should return ErrDatasetNotFound")
		_, err = store.Load(ctx, runID, domain.SetInvalid)
		assert.ErrorIs(t, err, domain.ErrDatasetNotFound)
	})
}
