package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cineflixx/cfx/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the local movie catalog proxy.
//
// Exposes /api/movies backed by the configured catalog source. Source
// failures are absorbed by the handler, so clients always get a page.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	source, err := r.requireCatalog()
	if err != nil {
		return err
	}

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := int(cmd.Int("port"))
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(server.NewMoviesHandler(source, r.logger))

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.logger.Infof("serving movie proxy on %v", addr)
	r.writePlain("Listening on http://%s/api/movies\n", addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
