package transfer

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/transfer"
	"github.com/finvault/bankcore/pkg/repository"
)

// Request carries the parameters of one transfer execution, whether it
// originates from an API call or from a scheduled definition.
type Request struct {
	SourceAccountID uuid.UUID
	Destination     transfer.Destination
	Amount          decimal.Decimal
	Description     string
	ScheduledDate   *time.Time
}

// Executor performs the money movement as a single unit of work: transfer
// record, both balance mutations, both ledger rows, and the limit
// consumption all commit or roll back together.
type Executor struct {
	uow         repository.UnitOfWork
	limitLedger *LimitLedger
	logger      *slog.Logger
	now         func() time.Time
}

// NewExecutor creates an Executor bound to the given unit of work.
func NewExecutor(uow repository.UnitOfWork, limitLedger *LimitLedger, logger *slog.Logger) *Executor {
	return &Executor{uow: uow, limitLedger: limitLedger, logger: logger, now: time.Now}
}

// Execute validates and performs one transfer.
//
// Validation failures are returned as typed reasons with nothing persisted
// beyond the limit-counter reset, which is calendar truth rather than
// consumption. Execution failures roll back every write, record a Failed
// transfer with a generic reason, and surface ErrExecutionFailed; the
// original error is logged, not returned.
func (e *Executor) Execute(ctx context.Context, req Request) (*transfer.Transfer, error) {
	now := e.now().UTC()
	rec := &transfer.Transfer{
		ID:              uuid.New(),
		SourceAccountID: req.SourceAccountID,
		Type:            req.Destination.Type(),
		Amount:          req.Amount,
		Description:     req.Description,
		Status:          transfer.StatusProcessing,
		TransferDate:    now,
		ScheduledDate:   req.ScheduledDate,
		CreatedDate:     now,
	}

	err := e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		validated, err := Validate(ctx, uow, req.SourceAccountID, req.Destination, req.Amount)
		if err != nil {
			return err
		}
		rec.DestinationAccountID = validated.Destination.ID
		rec.DestinationAccountNumber = validated.Destination.AccountNumber

		// Lazy creation and calendar resets commit in their own
		// transaction, so a reset survives even when this attempt fails.
		// Runs only after the source checks passed; a bogus request must
		// not mint a limits row.
		if _, err := e.limitLedger.Prepare(ctx, req.SourceAccountID); err != nil {
			return err
		}

		if err := uow.Transfers().Create(ctx, rec); err != nil {
			return err
		}

		source, destination, err := lockPair(ctx, uow, validated.Source.ID, validated.Destination.ID)
		if err != nil {
			return err
		}
		// The balance may have moved between validation and lock
		// acquisition; re-check under the lock so two concurrent transfers
		// cannot both spend the same funds.
		if !source.CanCover(req.Amount) {
			return transfer.ErrInsufficientBalance
		}

		// The limits row gets the same treatment: re-read under a row lock
		// and check against the current counters, or two concurrent
		// transfers could both pass against stale usage and double-spend
		// the headroom.
		lim, err := uow.Limits().GetForUpdate(ctx, req.SourceAccountID)
		if err != nil {
			return err
		}
		if err := lim.Check(req.Amount); err != nil {
			return err
		}

		if err := uow.Accounts().UpdateBalance(ctx, source.ID, source.Balance.Sub(req.Amount)); err != nil {
			return err
		}
		if err := uow.Accounts().UpdateBalance(ctx, destination.ID, destination.Balance.Add(req.Amount)); err != nil {
			return err
		}

		sourceTx := account.NewTransaction(source.ID, account.TransactionTransferOut,
			req.Amount, "Transfer to account "+destination.AccountNumber, now)
		destTx := account.NewTransaction(destination.ID, account.TransactionTransferIn,
			req.Amount, "Transfer from account "+source.AccountNumber, now)
		if err := uow.Transactions().Create(ctx, sourceTx); err != nil {
			return err
		}
		if err := uow.Transactions().Create(ctx, destTx); err != nil {
			return err
		}

		rec.Complete(sourceTx.ID, destTx.ID, now)
		if err := uow.Transfers().Update(ctx, rec); err != nil {
			return err
		}

		lim.Consume(req.Amount)
		return uow.Limits().Update(ctx, lim)
	})
	if err == nil {
		e.logger.Info("transfer completed",
			"transferID", rec.ID,
			"sourceAccountID", rec.SourceAccountID,
			"destinationAccountID", rec.DestinationAccountID,
			"amount", req.Amount,
		)
		return rec, nil
	}

	if IsValidationError(err) {
		e.logger.Info("transfer rejected",
			"sourceAccountID", req.SourceAccountID,
			"amount", req.Amount,
			"reason", err,
		)
		return nil, err
	}

	// Execution failure: everything above rolled back. Record the failed
	// attempt with a user-safe reason; the real error stays in the logs.
	e.logger.Error("transfer execution failed",
		"transferID", rec.ID,
		"sourceAccountID", req.SourceAccountID,
		"amount", req.Amount,
		"error", err,
	)
	rec.Fail(transfer.ErrExecutionFailed.Error())
	if recordErr := e.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Transfers().Create(ctx, rec)
	}); recordErr != nil {
		e.logger.Error("failed to record failed transfer", "transferID", rec.ID, "error", recordErr)
	}
	return rec, transfer.ErrExecutionFailed
}

// lockPair acquires row locks on both accounts in ascending id order, so two
// transfers targeting each other's accounts in opposite directions cannot
// deadlock.
func lockPair(ctx context.Context, uow repository.UnitOfWork, a, b uuid.UUID) (source, destination *account.Account, err error) {
	first, second := a, b
	if bytes.Compare(b[:], a[:]) < 0 {
		first, second = b, a
	}
	locked := make(map[uuid.UUID]*account.Account, 2)
	for _, id := range []uuid.UUID{first, second} {
		row, err := uow.Accounts().GetForUpdate(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		locked[id] = row
	}
	return locked[a], locked[b], nil
}
