package main

import (
	"context"
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/finvault/bankcore/infra/initializer"
	"github.com/finvault/bankcore/pkg/config"
	"github.com/finvault/bankcore/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	if cfg.Env == "development" {
		if err := initializer.SeedDevelopmentData(context.Background(), deps.Uow, deps.Logger); err != nil {
			return fmt.Errorf("failed to seed development data: %w", err)
		}
	}

	app := webapi.SetupApp(deps.Uow, cfg, deps.Logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	return app.Listen(addr)
}
