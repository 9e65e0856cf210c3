// Package transfer implements the funds transfer engine: validation,
// atomic execution, per-account limits, the retry/cancel state machine, and
// the recurring transfer lifecycle.
package transfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/domain/transfer"
	"github.com/finvault/bankcore/pkg/repository"
)

// Service is the entry point for immediate transfers: execution, lookup,
// cancel and retry.
type Service struct {
	uow         repository.UnitOfWork
	executor    *Executor
	limitLedger *LimitLedger
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wires the transfer service and its executor onto the given
// unit of work.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	limitLedger := NewLimitLedger(uow, logger)
	return &Service{
		uow:         uow,
		executor:    NewExecutor(uow, limitLedger, logger),
		limitLedger: limitLedger,
		logger:      logger,
		now:         time.Now,
	}
}

// Limits exposes the limit ledger for the read endpoint.
func (s *Service) Limits() *LimitLedger { return s.limitLedger }

// TransferInternal moves funds between two accounts addressed by internal
// id.
func (s *Service) TransferInternal(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal, description string) (*transfer.Transfer, error) {
	return s.executor.Execute(ctx, Request{
		SourceAccountID: sourceID,
		Destination:     transfer.InternalDestination(destinationID),
		Amount:          amount,
		Description:     description,
	})
}

// TransferExternal moves funds to a destination addressed by account
// number. The number must still resolve to an account known to this system.
func (s *Service) TransferExternal(ctx context.Context, sourceID uuid.UUID, destinationNumber string, amount decimal.Decimal, description string) (*transfer.Transfer, error) {
	return s.executor.Execute(ctx, Request{
		SourceAccountID: sourceID,
		Destination:     transfer.ExternalDestination(destinationNumber),
		Amount:          amount,
		Description:     description,
	})
}

// Get returns a transfer by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	var rec *transfer.Transfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rec, err = uow.Transfers().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListByAccount returns all transfers where the account is the source.
func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.Transfer, error) {
	var recs []*transfer.Transfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		recs, err = uow.Transfers().ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Cancel moves a transfer that has not yet reached a terminal state to
// Cancelled. Completed, Failed and already-cancelled transfers reject it.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	var rec *transfer.Transfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rec, err = uow.Transfers().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := rec.Cancel(); err != nil {
			return err
		}
		return uow.Transfers().Update(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transfer cancelled", "transferID", id)
	return rec, nil
}

// Retry re-executes a failed transfer with its original parameters,
// producing a fresh Transfer record. The failed record is left as-is; retry
// is a new attempt, not an in-place repair.
func (s *Service) Retry(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	var original *transfer.Transfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		original, err = uow.Transfers().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !original.CanRetry() {
		return nil, transfer.ErrRetryNotAllowed
	}

	dest := transfer.InternalDestination(original.DestinationAccountID)
	if original.Type == transfer.TypeExternal {
		dest = transfer.ExternalDestination(original.DestinationAccountNumber)
	}
	s.logger.Info("retrying failed transfer", "transferID", id)
	return s.executor.Execute(ctx, Request{
		SourceAccountID: original.SourceAccountID,
		Destination:     dest,
		Amount:          original.Amount,
		Description:     original.Description,
		ScheduledDate:   original.ScheduledDate,
	})
}
