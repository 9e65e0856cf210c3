// Package webapi exposes the back-office REST surface over Fiber.
package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/finvault/bankcore/pkg/config"
	"github.com/finvault/bankcore/pkg/repository"
	accountsvc "github.com/finvault/bankcore/pkg/service/account"
	transfersvc "github.com/finvault/bankcore/pkg/service/transfer"
)

// SetupApp builds the Fiber application with all middleware and routes.
func SetupApp(uow repository.UnitOfWork, cfg *config.App, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("bankcore is up")
	})

	transferSvc := transfersvc.NewService(uow, logger)
	scheduledSvc := transfersvc.NewScheduledService(uow, transferSvc)
	accountSvc := accountsvc.NewService(uow, logger)

	AuthRoutes(app, cfg.Auth, logger)
	AccountRoutes(app, accountSvc, transferSvc.Limits(), cfg, logger)
	TransferRoutes(app, transferSvc, cfg, logger)
	ScheduledTransferRoutes(app, scheduledSvc, cfg, logger)

	return app
}
