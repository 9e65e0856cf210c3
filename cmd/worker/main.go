package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/charmbracelet/log"

	"github.com/finvault/bankcore/infra/initializer"
	"github.com/finvault/bankcore/internal/worker"
	"github.com/finvault/bankcore/pkg/config"
	transfersvc "github.com/finvault/bankcore/pkg/service/transfer"
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

	transferSvc := transfersvc.NewService(deps.Uow, deps.Logger)
	scheduledSvc := transfersvc.NewScheduledService(deps.Uow, transferSvc)

	w := worker.New(scheduledSvc, cfg.Worker, deps.Logger)
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	deps.Logger.Info("shutting down worker")
	<-w.Stop().Done()
	return nil
}
