package webapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/config"
	transfersvc "github.com/finvault/bankcore/pkg/service/transfer"
)

// InternalTransferRequest moves funds between two accounts addressed by
// internal id.
type InternalTransferRequest struct {
	SourceAccountID      string `json:"source_account_id" validate:"required,uuid"`
	DestinationAccountID string `json:"destination_account_id" validate:"required,uuid"`
	Amount               string `json:"amount" validate:"required"`
	Description          string `json:"description" validate:"max=255"`
}

// ExternalTransferRequest addresses the destination by account number.
type ExternalTransferRequest struct {
	SourceAccountID          string `json:"source_account_id" validate:"required,uuid"`
	DestinationAccountNumber string `json:"destination_account_number" validate:"required"`
	Amount                   string `json:"amount" validate:"required"`
	Description              string `json:"description" validate:"max=255"`
}

// TransferRoutes registers HTTP routes for immediate transfers.
//
// Routes:
//   - POST /transfers/internal      : Execute an internal transfer.
//   - POST /transfers/external      : Execute an external transfer.
//   - GET  /transfers               : List transfers for ?account_id=.
//   - GET  /transfers/:id           : Fetch one transfer.
//   - PUT  /transfers/:id/cancel    : Cancel a not-yet-terminal transfer.
//   - POST /transfers/:id/retry     : Re-execute a failed transfer.
func TransferRoutes(app *fiber.App, svc *transfersvc.Service, cfg *config.App, logger *slog.Logger) {
	app.Post("/transfers/internal", JwtProtected(cfg.Auth.Jwt), InternalTransfer(svc, logger))
	app.Post("/transfers/external", JwtProtected(cfg.Auth.Jwt), ExternalTransfer(svc, logger))
	app.Get("/transfers", JwtProtected(cfg.Auth.Jwt), ListTransfers(svc, logger))
	app.Get("/transfers/:id", JwtProtected(cfg.Auth.Jwt), GetTransfer(svc, logger))
	app.Put("/transfers/:id/cancel", JwtProtected(cfg.Auth.Jwt), CancelTransfer(svc, logger))
	app.Post("/transfers/:id/retry", JwtProtected(cfg.Auth.Jwt), RetryTransfer(svc, logger))
}

// InternalTransfer returns a handler executing an internal transfer.
func InternalTransfer(svc *transfersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[InternalTransferRequest](c)
		if input == nil {
			return err
		}
		sourceID, destID, amount, ok := parseInternal(c, input)
		if !ok {
			return nil
		}
		rec, err := svc.TransferInternal(c.Context(), sourceID, destID, amount, input.Description)
		if err != nil {
			logger.Error("internal transfer rejected", "error", err)
			return DomainErrorJSON(c, "Transfer failed", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", toTransferResponse(rec))
	}
}

// ExternalTransfer returns a handler executing an external transfer.
func ExternalTransfer(svc *transfersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ExternalTransferRequest](c)
		if input == nil {
			return err
		}
		sourceID, err := uuid.Parse(input.SourceAccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		rec, err := svc.TransferExternal(c.Context(), sourceID, input.DestinationAccountNumber, amount, input.Description)
		if err != nil {
			logger.Error("external transfer rejected", "error", err)
			return DomainErrorJSON(c, "Transfer failed", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", toTransferResponse(rec))
	}
}

// ListTransfers returns a handler listing transfers for an account.
func ListTransfers(svc *transfersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Query("account_id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account_id query parameter must be a valid UUID")
		}
		recs, err := svc.ListByAccount(c.Context(), accountID)
		if err != nil {
			logger.Error("failed to list transfers", "accountID", accountID, "error", err)
			return DomainErrorJSON(c, "Failed to list transfers", err)
		}
		out := make([]TransferResponse, 0, len(recs))
		for _, rec := range recs {
			out = append(out, toTransferResponse(rec))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfers", out)
	}
}

// GetTransfer returns a handler fetching one transfer by id.
func GetTransfer(svc *transfersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transfer ID", err.Error())
		}
		rec, err := svc.Get(c.Context(), id)
		if err != nil {
			return DomainErrorJSON(c, "Transfer not found", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer", toTransferResponse(rec))
	}
}

// CancelTransfer returns a handler cancelling a not-yet-terminal transfer.
func CancelTransfer(svc *transfersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transfer ID", err.Error())
		}
		rec, err := svc.Cancel(c.Context(), id)
		if err != nil {
			logger.Error("cancel rejected", "transferID", id, "error", err)
			return DomainErrorJSON(c, "Cancel rejected", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer cancelled", toTransferResponse(rec))
	}
}

// RetryTransfer returns a handler re-executing a failed transfer as a fresh
// attempt.
func RetryTransfer(svc *transfersvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transfer ID", err.Error())
		}
		rec, err := svc.Retry(c.Context(), id)
		if err != nil {
			logger.Error("retry rejected", "transferID", id, "error", err)
			return DomainErrorJSON(c, "Retry rejected", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transfer retried", toTransferResponse(rec))
	}
}

func parseInternal(c *fiber.Ctx, input *InternalTransferRequest) (sourceID, destID uuid.UUID, amount decimal.Decimal, ok bool) {
	sourceID, err := uuid.Parse(input.SourceAccountID)
	if err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		return
	}
	destID, err = uuid.Parse(input.DestinationAccountID)
	if err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		return
	}
	amount, err = decimal.NewFromString(input.Amount)
	if err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		return
	}
	ok = true
	return
}
