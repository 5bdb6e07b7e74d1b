package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tfx/internal/server"
	"github.com/desertthunder/tfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP endpoints until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}

	e, err := r.open(ctx)
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "component", "server")
	api := server.NewAPI(e, r.store, logger)
	srv := server.NewHTTPServer(cfg, server.NewHandler(api, cfg, logger))

	url := fmt.Sprintf("http://%s/config.json", server.Addr(cfg))
	r.writePlain("Serving on http://%s (Ctrl+C to stop)\n", server.Addr(cfg))

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open %s to download the configuration\n", url)
		}
	}

	return server.Serve(ctx, srv, logger)
}
