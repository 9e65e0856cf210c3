package webapi

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/config"
	"github.com/finvault/bankcore/pkg/domain/transfer"
	transfersvc "github.com/finvault/bankcore/pkg/service/transfer"
)

// CreateScheduledTransferRequest registers a recurring transfer definition.
// Exactly one of destination_account_id (Internal) or
// destination_account_number (External) must be set.
type CreateScheduledTransferRequest struct {
	SourceAccountID          string `json:"source_account_id" validate:"required,uuid"`
	DestinationAccountID     string `json:"destination_account_id" validate:"omitempty,uuid"`
	DestinationAccountNumber string `json:"destination_account_number"`
	Amount                   string `json:"amount" validate:"required"`
	Description              string `json:"description" validate:"max=255"`
	RecurrenceType           string `json:"recurrence_type" validate:"required,oneof=OneTime Daily Weekly Monthly Quarterly Annually"`
	RecurrenceDay            *int   `json:"recurrence_day" validate:"omitempty,min=1,max=31"`
	ScheduledDate            string `json:"scheduled_date" validate:"required"`
}

// UpdateScheduledTransferRequest mutates an existing definition; absent
// fields are left unchanged.
type UpdateScheduledTransferRequest struct {
	Amount         *string `json:"amount"`
	Description    *string `json:"description" validate:"omitempty,max=255"`
	ScheduledDate  *string `json:"scheduled_date"`
	RecurrenceType *string `json:"recurrence_type" validate:"omitempty,oneof=OneTime Daily Weekly Monthly Quarterly Annually"`
	RecurrenceDay  *int    `json:"recurrence_day" validate:"omitempty,min=1,max=31"`
}

// ScheduledTransferRoutes registers HTTP routes for recurring transfer
// definitions.
//
// Routes:
//   - POST   /scheduledtransfers            : Create a definition.
//   - GET    /scheduledtransfers            : List definitions for ?account_id=.
//   - GET    /scheduledtransfers/:id        : Fetch one definition.
//   - PUT    /scheduledtransfers/:id        : Update a definition.
//   - DELETE /scheduledtransfers/:id        : Cancel a definition.
//   - PUT    /scheduledtransfers/:id/pause  : Pause an active definition.
//   - PUT    /scheduledtransfers/:id/resume : Resume a paused definition.
func ScheduledTransferRoutes(app *fiber.App, svc *transfersvc.ScheduledService, cfg *config.App, logger *slog.Logger) {
	app.Post("/scheduledtransfers", JwtProtected(cfg.Auth.Jwt), CreateScheduledTransfer(svc, logger))
	app.Get("/scheduledtransfers", JwtProtected(cfg.Auth.Jwt), ListScheduledTransfers(svc, logger))
	app.Get("/scheduledtransfers/:id", JwtProtected(cfg.Auth.Jwt), GetScheduledTransfer(svc, logger))
	app.Put("/scheduledtransfers/:id", JwtProtected(cfg.Auth.Jwt), UpdateScheduledTransfer(svc, logger))
	app.Delete("/scheduledtransfers/:id", JwtProtected(cfg.Auth.Jwt), CancelScheduledTransfer(svc, logger))
	app.Put("/scheduledtransfers/:id/pause", JwtProtected(cfg.Auth.Jwt), PauseScheduledTransfer(svc, logger))
	app.Put("/scheduledtransfers/:id/resume", JwtProtected(cfg.Auth.Jwt), ResumeScheduledTransfer(svc, logger))
}

// CreateScheduledTransfer returns a handler creating an Active definition.
func CreateScheduledTransfer(svc *transfersvc.ScheduledService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateScheduledTransferRequest](c)
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
		scheduledDate, err := time.Parse(time.RFC3339, input.ScheduledDate)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid scheduled date", "scheduled_date must be RFC 3339")
		}

		var dest transfer.Destination
		switch {
		case input.DestinationAccountID != "":
			destID, err := uuid.Parse(input.DestinationAccountID)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
			}
			dest = transfer.InternalDestination(destID)
		case input.DestinationAccountNumber != "":
			dest = transfer.ExternalDestination(input.DestinationAccountNumber)
		default:
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid destination", "either destination_account_id or destination_account_number is required")
		}

		def, err := svc.Create(c.Context(), transfersvc.CreateParams{
			SourceAccountID: sourceID,
			Destination:     dest,
			Amount:          amount,
			Description:     input.Description,
			Recurrence:      transfer.RecurrenceType(input.RecurrenceType),
			RecurrenceDay:   input.RecurrenceDay,
			ScheduledDate:   scheduledDate,
		})
		if err != nil {
			logger.Error("failed to create scheduled transfer", "error", err)
			return DomainErrorJSON(c, "Failed to create scheduled transfer", err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Scheduled transfer created", toScheduledTransferResponse(def))
	}
}

// ListScheduledTransfers returns a handler listing definitions for an
// account.
func ListScheduledTransfers(svc *transfersvc.ScheduledService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID, err := uuid.Parse(c.Query("account_id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "account_id query parameter must be a valid UUID")
		}
		defs, err := svc.ListByAccount(c.Context(), accountID)
		if err != nil {
			logger.Error("failed to list scheduled transfers", "accountID", accountID, "error", err)
			return DomainErrorJSON(c, "Failed to list scheduled transfers", err)
		}
		out := make([]ScheduledTransferResponse, 0, len(defs))
		for _, def := range defs {
			out = append(out, toScheduledTransferResponse(def))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Scheduled transfers", out)
	}
}

// GetScheduledTransfer returns a handler fetching one definition.
func GetScheduledTransfer(svc *transfersvc.ScheduledService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid scheduled transfer ID", err.Error())
		}
		def, err := svc.Get(c.Context(), id)
		if err != nil {
			return DomainErrorJSON(c, "Scheduled transfer not found", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Scheduled transfer", toScheduledTransferResponse(def))
	}
}

// UpdateScheduledTransfer returns a handler mutating a definition.
func UpdateScheduledTransfer(svc *transfersvc.ScheduledService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid scheduled transfer ID", err.Error())
		}
		input, err := BindAndValidate[UpdateScheduledTransferRequest](c)
		if input == nil {
			return err
		}

		params := transfersvc.UpdateParams{
			Description:   input.Description,
			RecurrenceDay: input.RecurrenceDay,
		}
		if input.Amount != nil {
			amount, err := decimal.NewFromString(*input.Amount)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid amount", err.Error())
			}
			params.Amount = &amount
		}
		if input.ScheduledDate != nil {
			scheduledDate, err := time.Parse(time.RFC3339, *input.ScheduledDate)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid scheduled date", "scheduled_date must be RFC 3339")
			}
			params.ScheduledDate = &scheduledDate
		}
		if input.RecurrenceType != nil {
			recurrence := transfer.RecurrenceType(*input.RecurrenceType)
			params.Recurrence = &recurrence
		}

		def, err := svc.Update(c.Context(), id, params)
		if err != nil {
			logger.Error("failed to update scheduled transfer", "scheduledTransferID", id, "error", err)
			return DomainErrorJSON(c, "Failed to update scheduled transfer", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Scheduled transfer updated", toScheduledTransferResponse(def))
	}
}

// CancelScheduledTransfer returns a handler terminally cancelling a
// definition.
func CancelScheduledTransfer(svc *transfersvc.ScheduledService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid scheduled transfer ID", err.Error())
		}
		def, err := svc.Cancel(c.Context(), id)
		if err != nil {
			logger.Error("cancel rejected", "scheduledTransferID", id, "error", err)
			return DomainErrorJSON(c, "Cancel rejected", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Scheduled transfer cancelled", toScheduledTransferResponse(def))
	}
}

// PauseScheduledTransfer returns a handler pausing an active definition.
func PauseScheduledTransfer(svc *transfersvc.ScheduledService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid scheduled transfer ID", err.Error())
		}
		def, err := svc.Pause(c.Context(), id)
		if err != nil {
			logger.Error("pause rejected", "scheduledTransferID", id, "error", err)
			return DomainErrorJSON(c, "Pause rejected", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Scheduled transfer paused", toScheduledTransferResponse(def))
	}
}

// ResumeScheduledTransfer returns a handler resuming a paused definition.
func ResumeScheduledTransfer(svc *transfersvc.ScheduledService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid scheduled transfer ID", err.Error())
		}
		def, err := svc.Resume(c.Context(), id)
		if err != nil {
			logger.Error("resume rejected", "scheduledTransferID", id, "error", err)
			return DomainErrorJSON(c, "Resume rejected", err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Scheduled transfer resumed", toScheduledTransferResponse(def))
	}
}
