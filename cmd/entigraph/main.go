// Command entigraph collects monitoring entities and builds topology graphs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/entigraph/internal/adapters/driving/cli"
	"github.com/custodia-labs/entigraph/internal/logger"
)

// version is injected at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run() error {
	// Interrupts cancel in-flight requests and stop watch mode.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetWiring(newWiring())

	return cli.Execute(ctx)
}
