package webapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/domain/transfer"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want int
	}{
		{account.ErrAccountNotFound, fiber.StatusNotFound},
		{transfer.ErrTransferNotFound, fiber.StatusNotFound},
		{transfer.ErrScheduledNotFound, fiber.StatusNotFound},
		{transfer.ErrSourceNotFound, fiber.StatusUnprocessableEntity},
		{transfer.ErrDestinationNotFound, fiber.StatusUnprocessableEntity},
		{transfer.ErrInvalidAmount, fiber.StatusBadRequest},
		{transfer.ErrSelfTransfer, fiber.StatusBadRequest},
		{transfer.ErrSourceInactive, fiber.StatusUnprocessableEntity},
		{transfer.ErrDestinationInactive, fiber.StatusUnprocessableEntity},
		{transfer.ErrInsufficientBalance, fiber.StatusUnprocessableEntity},
		{limits.ErrAboveTransactionMax, fiber.StatusUnprocessableEntity},
		{transfer.ErrCancelNotAllowed, fiber.StatusConflict},
		{transfer.ErrRetryNotAllowed, fiber.StatusConflict},
		{transfer.ErrScheduledFinished, fiber.StatusConflict},
		{transfer.ErrExecutionFailed, fiber.StatusInternalServerError},
		{errors.New("driver: bad connection"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.err.Error(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ErrorToStatusCode(tc.err))
		})
	}
}

func TestErrorToStatusCodeWrapped(t *testing.T) {
	t.Parallel()
	wrapped := fmt.Errorf("%w: 4000 remaining today", limits.ErrDailyLimitExceeded)
	assert.Equal(t, fiber.StatusUnprocessableEntity, ErrorToStatusCode(wrapped),
		"wrapped limit errors must keep their mapping")
}
