package middleware

import "github.com/aretw0/exprgen/pkg/ports"

// Middleware allows wrapping a DatasetStore to add behavior.
type Middleware func(ports.DatasetStore) ports.DatasetStore

// Chain applies middlewares so the first one is the outermost.
func Chain(store ports.DatasetStore, mws ...Middleware) ports.DatasetStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
