package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finvault/bankcore/pkg/config"
	accountsvc "github.com/finvault/bankcore/pkg/service/account"
	transfersvc "github.com/finvault/bankcore/pkg/service/transfer"
)

// AccountRoutes registers the read endpoints the dashboard uses.
func AccountRoutes(app *fiber.App, svc *accountsvc.Service, limitLedger *transfersvc.LimitLedger, cfg *config.App, logger *slog.Logger) {
	app.Get("/accounts/:id", JwtProtected(cfg.Auth.Jwt), GetAccount(svc, logger))
	app.Get("/accounts/:id/transactions", JwtProtected(cfg.Auth.Jwt), GetTransactions(svc, logger))
	app.Get("/accounts/:id/limits", JwtProtected(cfg.Auth.Jwt), GetLimits(limitLedger, logger))
}

// GetAccount returns a handler fetching one account.
func GetAccount(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		a, err := svc.Get(c.Context(), id)
		if err != nil {
			return DomainErrorJSON(c, "Account not found", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account", toAccountResponse(a))
	}
}

// GetTransactions returns a handler listing an account's ledger rows.
func GetTransactions(svc *accountsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		rows, err := svc.ListTransactions(c.Context(), id)
		if err != nil {
			logger.Error("failed to list transactions", "accountID", id, "error", err)
			return DomainErrorJSON(c, "Failed to list transactions", err)
		}
		out := make([]TransactionResponse, 0, len(rows))
		for _, tx := range rows {
			out = append(out, toTransactionResponse(tx))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions", out)
	}
}

// GetLimits returns a handler reading an account's limit ledger, applying
// the same lazy creation and calendar resets a transfer attempt would.
func GetLimits(limitLedger *transfersvc.LimitLedger, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		l, err := limitLedger.Get(c.Context(), id)
		if err != nil {
			logger.Error("failed to read limits", "accountID", id, "error", err)
			return DomainErrorJSON(c, "Failed to read limits", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Limits", toLimitsResponse(l))
	}
}
