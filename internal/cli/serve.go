// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2dChan/polygrid/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	grid gridOpts
	addr string
}

func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grid queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, &opts)
		},
	}
	addGridFlags(cmd, &opts.grid)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	g, err := opts.grid.build(cmd)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(g, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
