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

// ScheduledService owns the lifecycle of recurring transfer definitions and
// materializes due occurrences into concrete executions.
type ScheduledService struct {
	uow      repository.UnitOfWork
	executor *Executor
	logger   *slog.Logger
	now      func() time.Time
}

// NewScheduledService wires the scheduled-transfer lifecycle manager onto
// the same executor immediate transfers use.
func NewScheduledService(uow repository.UnitOfWork, svc *Service) *ScheduledService {
	return &ScheduledService{
		uow:      uow,
		executor: svc.executor,
		logger:   svc.logger,
		now:      time.Now,
	}
}

// CreateParams are the caller-supplied fields of a new definition.
type CreateParams struct {
	SourceAccountID uuid.UUID
	Destination     transfer.Destination
	Amount          decimal.Decimal
	Description     string
	Recurrence      transfer.RecurrenceType
	RecurrenceDay   *int
	ScheduledDate   time.Time
}

// UpdateParams are the mutable fields of an existing definition. Nil fields
// are left unchanged.
type UpdateParams struct {
	Amount        *decimal.Decimal
	Description   *string
	ScheduledDate *time.Time
	Recurrence    *transfer.RecurrenceType
	RecurrenceDay *int
}

// Create registers a new Active definition with its first execution date
// seeded from the recurrence rule.
func (s *ScheduledService) Create(ctx context.Context, params CreateParams) (*transfer.ScheduledTransfer, error) {
	if !params.Amount.IsPositive() {
		return nil, transfer.ErrInvalidAmount
	}
	now := s.now().UTC()
	def := &transfer.ScheduledTransfer{
		ID:              uuid.New(),
		SourceAccountID: params.SourceAccountID,
		Type:            params.Destination.Type(),
		Amount:          params.Amount,
		Description:     params.Description,
		Recurrence:      params.Recurrence,
		RecurrenceDay:   params.RecurrenceDay,
		Status:          transfer.ScheduledActive,
		ScheduledDate:   params.ScheduledDate,
		CreatedDate:     now,
	}
	if params.Destination.Type() == transfer.TypeExternal {
		def.DestinationAccountNumber = params.Destination.AccountNumber()
	} else {
		def.DestinationAccountID = params.Destination.AccountID()
	}
	def.NextExecutionDate = transfer.NextExecution(now, params.ScheduledDate, params.Recurrence, params.RecurrenceDay)

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.ScheduledTransfers().Create(ctx, def)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("scheduled transfer created",
		"scheduledTransferID", def.ID,
		"recurrence", def.Recurrence,
		"nextExecutionDate", def.NextExecutionDate,
	)
	return def, nil
}

// Get returns a definition by id.
func (s *ScheduledService) Get(ctx context.Context, id uuid.UUID) (*transfer.ScheduledTransfer, error) {
	var def *transfer.ScheduledTransfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		def, err = uow.ScheduledTransfers().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

// ListByAccount returns all definitions whose source is the given account.
func (s *ScheduledService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.ScheduledTransfer, error) {
	var defs []*transfer.ScheduledTransfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		defs, err = uow.ScheduledTransfers().ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// Update mutates an active or paused definition and recomputes its next
// execution date. Cancelled and completed definitions reject updates.
func (s *ScheduledService) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*transfer.ScheduledTransfer, error) {
	return s.mutate(ctx, id, func(def *transfer.ScheduledTransfer) error {
		if !def.Mutable() {
			return transfer.ErrScheduledFinished
		}
		if params.Amount != nil {
			if !params.Amount.IsPositive() {
				return transfer.ErrInvalidAmount
			}
			def.Amount = *params.Amount
		}
		if params.Description != nil {
			def.Description = *params.Description
		}
		if params.ScheduledDate != nil {
			def.ScheduledDate = *params.ScheduledDate
		}
		if params.Recurrence != nil {
			def.Recurrence = *params.Recurrence
		}
		if params.RecurrenceDay != nil {
			def.RecurrenceDay = params.RecurrenceDay
		}
		def.NextExecutionDate = transfer.NextExecution(s.now().UTC(), def.ScheduledDate, def.Recurrence, def.RecurrenceDay)
		return nil
	})
}

// Pause suspends an Active definition.
func (s *ScheduledService) Pause(ctx context.Context, id uuid.UUID) (*transfer.ScheduledTransfer, error) {
	return s.mutate(ctx, id, func(def *transfer.ScheduledTransfer) error {
		return def.Pause()
	})
}

// Resume reactivates a Paused definition, recomputing its next execution
// from now.
func (s *ScheduledService) Resume(ctx context.Context, id uuid.UUID) (*transfer.ScheduledTransfer, error) {
	return s.mutate(ctx, id, func(def *transfer.ScheduledTransfer) error {
		return def.Resume(s.now().UTC())
	})
}

// Cancel terminally cancels an Active or Paused definition.
func (s *ScheduledService) Cancel(ctx context.Context, id uuid.UUID) (*transfer.ScheduledTransfer, error) {
	return s.mutate(ctx, id, func(def *transfer.ScheduledTransfer) error {
		return def.Cancel()
	})
}

func (s *ScheduledService) mutate(ctx context.Context, id uuid.UUID, apply func(*transfer.ScheduledTransfer) error) (*transfer.ScheduledTransfer, error) {
	var def *transfer.ScheduledTransfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		def, err = uow.ScheduledTransfers().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(def); err != nil {
			return err
		}
		return uow.ScheduledTransfers().Update(ctx, def)
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

// MaterializeDue executes every Active definition whose next execution date
// has passed, up to limit definitions per call. Each definition advances
// regardless of the execution outcome: a failed materialization leaves a
// Failed transfer record and moves on to the next occurrence rather than
// retrying every tick.
func (s *ScheduledService) MaterializeDue(ctx context.Context, asOf time.Time, limit int) (int, error) {
	var due []*transfer.ScheduledTransfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		due, err = uow.ScheduledTransfers().ListDue(ctx, asOf)
		return err
	})
	if err != nil {
		return 0, err
	}
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	executed := 0
	for _, def := range due {
		if err := s.materialize(ctx, def); err != nil {
			s.logger.Error("materialization failed",
				"scheduledTransferID", def.ID,
				"error", err,
			)
			continue
		}
		executed++
	}
	return executed, nil
}

func (s *ScheduledService) materialize(ctx context.Context, def *transfer.ScheduledTransfer) error {
	now := s.now().UTC()
	scheduled := def.NextExecutionDate
	_, execErr := s.executor.Execute(ctx, Request{
		SourceAccountID: def.SourceAccountID,
		Destination:     def.Destination(),
		Amount:          def.Amount,
		Description:     def.Description,
		ScheduledDate:   &scheduled,
	})

	// The advance must commit even when the execution failed, so the error
	// is carried out of the transaction boundary instead of returned inside
	// it.
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		current, err := uow.ScheduledTransfers().Get(ctx, def.ID)
		if err != nil {
			return err
		}
		if execErr != nil {
			// Advance past the failed occurrence; retry stays an explicit
			// user action on the Failed transfer record.
			if current.Recurrence == transfer.RecurrenceOneTime {
				current.Status = transfer.ScheduledCompleted
			} else {
				current.NextExecutionDate = transfer.NextExecution(now, current.ScheduledDate, current.Recurrence, current.RecurrenceDay)
			}
			return uow.ScheduledTransfers().Update(ctx, current)
		}
		current.RecordExecution(now)
		return uow.ScheduledTransfers().Update(ctx, current)
	})
	if err != nil {
		return err
	}
	return execErr
}
