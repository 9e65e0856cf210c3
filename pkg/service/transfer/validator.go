package transfer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/domain/transfer"
	"github.com/finvault/bankcore/pkg/repository"
)

// Validated carries the resolved records a successful validation produces.
// The executor consumes it without re-resolving anything except the balance
// and limit re-checks it performs under row locks.
type Validated struct {
	Source      *account.Account
	Destination *account.Account
}

// Validate runs the transfer checks in order, short-circuiting on the first
// failure. All checks are side-effect-free.
//
// Order: source exists and active, amount positive, destination resolves and
// active, not a self-transfer, balance sufficient. The limit check comes
// last and lives in the executor, where it runs against the row-locked
// limits record.
func Validate(
	ctx context.Context,
	uow repository.UnitOfWork,
	sourceID uuid.UUID,
	dest transfer.Destination,
	amount decimal.Decimal,
) (*Validated, error) {
	source, err := uow.Accounts().Get(ctx, sourceID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, transfer.ErrSourceNotFound
		}
		return nil, err
	}
	if !source.IsActive {
		return nil, transfer.ErrSourceInactive
	}

	if !amount.IsPositive() {
		return nil, transfer.ErrInvalidAmount
	}

	destination, err := resolveDestination(ctx, uow, dest)
	if err != nil {
		return nil, err
	}
	if !destination.IsActive {
		return nil, transfer.ErrDestinationInactive
	}

	if isSelfTransfer(source, destination, dest) {
		return nil, transfer.ErrSelfTransfer
	}

	if !source.CanCover(amount) {
		return nil, transfer.ErrInsufficientBalance
	}

	return &Validated{Source: source, Destination: destination}, nil
}

func resolveDestination(ctx context.Context, uow repository.UnitOfWork, dest transfer.Destination) (*account.Account, error) {
	var (
		destination *account.Account
		err         error
	)
	switch dest.Type() {
	case transfer.TypeExternal:
		destination, err = uow.Accounts().GetByNumber(ctx, dest.AccountNumber())
	default:
		destination, err = uow.Accounts().Get(ctx, dest.AccountID())
	}
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, transfer.ErrDestinationNotFound
		}
		return nil, err
	}
	return destination, nil
}

// isSelfTransfer compares by id for internal transfers and by account number
// for external ones, matching how the destination was addressed.
func isSelfTransfer(source, destination *account.Account, dest transfer.Destination) bool {
	if dest.Type() == transfer.TypeExternal {
		return source.AccountNumber == dest.AccountNumber()
	}
	return source.ID == destination.ID
}

// IsValidationError reports whether err is one of the expected, typed
// rejection reasons rather than an infrastructure failure.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, transfer.ErrSourceNotFound),
		errors.Is(err, transfer.ErrSourceInactive),
		errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transfer.ErrDestinationNotFound),
		errors.Is(err, transfer.ErrDestinationInactive),
		errors.Is(err, transfer.ErrSelfTransfer),
		errors.Is(err, transfer.ErrInsufficientBalance),
		errors.Is(err, limits.ErrBelowTransactionMin),
		errors.Is(err, limits.ErrAboveTransactionMax),
		errors.Is(err, limits.ErrDailyLimitExceeded),
		errors.Is(err, limits.ErrMonthlyLimitExceeded):
		return true
	}
	return false
}
