package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/exprgen/api"
	"github.com/aretw0/exprgen/internal/cli"
	httpAdapter "github.com/aretw0/exprgen/pkg/adapters/http"
	"github.com/aretw0/exprgen/pkg/adapters/memory"
	"github.com/aretw0/exprgen/pkg/adapters/redis"
	"github.com/aretw0/exprgen/pkg/ports"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Starts exprgen in server mode, exposing evaluation, dataset builds and metrics over HTTP.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		app, err := cli.Setup(optionsFromFlags(cmd))
		if err != nil {
			fmt.Printf("Error initializing exprgen: %v\n", err)
			os.Exit(1)
		}

		doc, err := api.Load(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		app.Logger.Debug("api document loaded", "title", doc.Info.Title, "version", doc.Info.Version, "paths", doc.Paths.Len())

		store, closeStore, err := createStore(cmd, app)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer closeStore()

		handler := httpAdapter.NewHandler(app.Engine,
			httpAdapter.WithStore(store),
			httpAdapter.WithGatherer(app.Metrics.Registry()),
			httpAdapter.WithLogger(app.Logger),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting exprgen Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding builds a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("exprgen Server stopped gracefully")
		}
	},
}

// createStore picks the dataset store for the long-running servers:
// Redis when configured, otherwise memory.
func createStore(cmd *cobra.Command, app *cli.App) (ports.DatasetStore, func(), error) {
	addr, _ := cmd.Flags().GetString("redis")
	if addr == "" {
		addr = app.Config.Redis.Addr
	}
	if addr == "" {
		return memory.NewStore(), func() {}, nil
	}

	var opts []redis.Option
	if app.Config.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(app.Config.Redis.Prefix))
	}
	if app.Config.Redis.TTL > 0 {
		opts = append(opts, redis.WithTTL(app.Config.Redis.TTL))
	}
	store := redis.New(addr, app.Config.Redis.Password, app.Config.Redis.DB, opts...)
	if err := store.Ping(cmd.Context()); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return store, func() { store.Close() }, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Store datasets in Redis at this address (default in memory)")
}
