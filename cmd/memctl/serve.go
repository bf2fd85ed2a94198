package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/memkit/memkit/internal/httpapi"
)

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the allocator simulation over HTTP",
		Long: `Starts the JSON HTTP service used by browser front ends. The service
holds one arena, created by POST /init; all allocator state lives in this
process and is lost on exit.

Example:
  memctl serve --addr :5002
  curl -X POST localhost:5002/init -d '{"total_size": 1000}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":5002", "Listen address")
	return cmd
}

func runServe(addr string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewServer(log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
