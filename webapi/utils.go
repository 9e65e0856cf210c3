package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/domain/transfer"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorResponseJSON writes a response following RFC 9457 Problem Details.
func ErrorResponseJSON(c *fiber.Ctx, status int, title, detail string) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// DomainErrorJSON maps a domain error to its status code and writes the
// problem response.
func DomainErrorJSON(c *fiber.Ctx, title string, err error) error {
	return ErrorResponseJSON(c, ErrorToStatusCode(err), title, err.Error())
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
// Validation failures are client rejections; execution failures surface as
// internal errors with their generic reason.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, transfer.ErrTransferNotFound),
		errors.Is(err, transfer.ErrScheduledNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, transfer.ErrSourceNotFound),
		errors.Is(err, transfer.ErrDestinationNotFound):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transfer.ErrSelfTransfer):
		return fiber.StatusBadRequest
	case errors.Is(err, transfer.ErrSourceInactive),
		errors.Is(err, transfer.ErrDestinationInactive),
		errors.Is(err, transfer.ErrInsufficientBalance),
		errors.Is(err, limits.ErrBelowTransactionMin),
		errors.Is(err, limits.ErrAboveTransactionMax),
		errors.Is(err, limits.ErrDailyLimitExceeded),
		errors.Is(err, limits.ErrMonthlyLimitExceeded):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, transfer.ErrCancelNotAllowed),
		errors.Is(err, transfer.ErrRetryNotAllowed),
		errors.Is(err, transfer.ErrScheduledNotActive),
		errors.Is(err, transfer.ErrScheduledNotPaused),
		errors.Is(err, transfer.ErrScheduledFinished):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure it writes the 400 problem response and
// returns a nil struct with the write result, so handlers can return that
// error directly without the global error handler replacing the response.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
