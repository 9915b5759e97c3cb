package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jamx/internal/server"
)

// Stub serves a canned backend until interrupted.
func (r *Runner) Stub(ctx context.Context, cmd *cli.Command) error {
	stub := server.NewStubBackend(server.StubOptions{
		Tempo: cmd.Float("tempo"),
		Key:   cmd.String("key"),
		Fail:  cmd.String("fail"),
	})

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = port
	}

	router := server.NewStubRouter(stub,
		server.Logging(r.logger),
		server.BearerAuth(r.config.Backend.Token),
	)

	r.logger.Debug("stub routes", "patterns", router.Patterns())

	if err := server.Serve(ctx, cfg.Addr(), router, r.logger, nil); err != nil {
		return fmt.Errorf("stub backend failed: %w", err)
	}
	return nil
}
