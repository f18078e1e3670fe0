package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/exprgen"
	"github.com/aretw0/exprgen/internal/config"
	"github.com/aretw0/exprgen/internal/logging"
	"github.com/aretw0/exprgen/pkg/adapters/file"
	"github.com/aretw0/exprgen/pkg/adapters/redis"
	"github.com/aretw0/exprgen/pkg/persistence/middleware"
)

// Interrupted is the cancellation cause of a run stopped by a signal.
type Interrupted struct {
	Signal os.Signal
}

func (e *Interrupted) Error() string {
	return "interrupted by " + e.Signal.String()
}

// WithInterrupt returns a context cancelled on SIGINT or SIGTERM, recording
// the received signal as the cancellation cause.
func WithInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			cancel(&Interrupted{Signal: sig})
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(context.Canceled) }
}

// InterruptSignal returns the signal that stopped ctx, or nil.
func InterruptSignal(ctx context.Context) os.Signal {
	var in *Interrupted
	if errors.As(context.Cause(ctx), &in) {
		return in.Signal
	}
	return nil
}

// createLogger configures the application logger from the configured level.
// It always writes to Stderr so Stdout only carries results.
func createLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// createSinks returns the dataset destinations configured for a run and a
// function releasing them.
func createSinks(ctx context.Context, cfg config.Config, logger *slog.Logger) ([]exprgen.Sink, func(), error) {
	files := file.New(cfg.OutputDir, file.WithFlatLayout())
	sinks := []exprgen.Sink{
		{Name: cfg.OutputDir, Store: middleware.Chain(files, middleware.NewLoggingMiddleware(logger, "file"))},
	}
	closer := func() {}

	if cfg.Redis.Addr == "" {
		return sinks, closer, nil
	}

	var opts []redis.Option
	if cfg.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
	}
	if cfg.Redis.TTL > 0 {
		opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
	}
	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, closer, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("redis sink enabled", "addr", cfg.Redis.Addr)

	sinks = append(sinks, exprgen.Sink{
		Name:  "redis://" + cfg.Redis.Addr,
		Store: middleware.Chain(store, middleware.NewLoggingMiddleware(logger, "redis")),
	})
	return sinks, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close redis", "err", err)
		}
	}, nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
