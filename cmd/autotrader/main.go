package main

import (
	"context"
	"os"

	"github.com/mgiraud/autotrader/internal/client/cli"
	"github.com/mgiraud/autotrader/internal/client/config"
	"github.com/mgiraud/autotrader/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	log := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
