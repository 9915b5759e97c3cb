package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Open launches the backend's home page in the system browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	target := r.config.Backend.URL
	r.logger.Info("opening backend page", "url", target)

	if err := r.openBrowser(target); err != nil {
		return fmt.Errorf("could not open browser: %w", err)
	}
	return r.writePlain("Opened %s\n", target)
}
