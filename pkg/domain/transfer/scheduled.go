package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduledStatus is the closed set of states for a recurring transfer
// definition.
type ScheduledStatus string

const (
	ScheduledActive    ScheduledStatus = "Active"
	ScheduledPaused    ScheduledStatus = "Paused"
	ScheduledCancelled ScheduledStatus = "Cancelled"
	ScheduledCompleted ScheduledStatus = "Completed"
)

// ScheduledTransfer is a recurring transfer definition. It is not itself a
// ledger mutation; an external trigger materializes due occurrences into
// concrete Transfer executions.
type ScheduledTransfer struct {
	ID                       uuid.UUID
	SourceAccountID          uuid.UUID
	DestinationAccountID     uuid.UUID
	DestinationAccountNumber string
	Type                     Type
	Amount                   decimal.Decimal
	Description              string
	Recurrence               RecurrenceType
	RecurrenceDay            *int
	Status                   ScheduledStatus
	ScheduledDate            time.Time
	NextExecutionDate        time.Time
	LastExecutionDate        *time.Time
	ExecutionCount           int
	CreatedDate              time.Time
}

// Pause suspends an active definition.
func (s *ScheduledTransfer) Pause() error {
	if s.Status != ScheduledActive {
		return ErrScheduledNotActive
	}
	s.Status = ScheduledPaused
	return nil
}

// Resume reactivates a paused definition and recomputes the next execution
// from now.
func (s *ScheduledTransfer) Resume(now time.Time) error {
	if s.Status != ScheduledPaused {
		return ErrScheduledNotPaused
	}
	s.Status = ScheduledActive
	s.NextExecutionDate = NextExecution(now, s.ScheduledDate, s.Recurrence, s.RecurrenceDay)
	return nil
}

// Cancel terminally cancels an active or paused definition.
func (s *ScheduledTransfer) Cancel() error {
	if s.Status == ScheduledCancelled || s.Status == ScheduledCompleted {
		return ErrScheduledFinished
	}
	s.Status = ScheduledCancelled
	return nil
}

// Mutable reports whether the definition still accepts updates.
func (s *ScheduledTransfer) Mutable() bool {
	return s.Status == ScheduledActive || s.Status == ScheduledPaused
}

// RecordExecution advances the definition after a successful
// materialization: stamps the execution, bumps the count, and either
// completes a one-time definition or recomputes the next occurrence.
func (s *ScheduledTransfer) RecordExecution(now time.Time) {
	s.LastExecutionDate = &now
	s.ExecutionCount++
	if s.Recurrence == RecurrenceOneTime {
		s.Status = ScheduledCompleted
		return
	}
	s.NextExecutionDate = NextExecution(now, s.ScheduledDate, s.Recurrence, s.RecurrenceDay)
}

// Destination returns the definition's target as the transfer union type.
func (s *ScheduledTransfer) Destination() Destination {
	if s.Type == TypeExternal {
		return ExternalDestination(s.DestinationAccountNumber)
	}
	return InternalDestination(s.DestinationAccountID)
}
