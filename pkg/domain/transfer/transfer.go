// Package transfer holds the funds-transfer aggregate: immediate transfers,
// recurring transfer definitions, their status state machines, and the
// recurrence calculator.
package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes how the destination account is addressed.
type Type string

const (
	// TypeInternal addresses the destination by internal account id.
	TypeInternal Type = "Internal"
	// TypeExternal addresses the destination by account number, which must
	// still resolve to an account known to this system.
	TypeExternal Type = "External"
)

// Status is the closed set of immediate-transfer states.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
	StatusCancelled  Status = "Cancelled"
)

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Destination is a tagged union of the two ways a transfer addresses its
// target: by internal account id or by external account number. Exactly one
// of the two is ever set.
type Destination struct {
	transferType  Type
	accountID     uuid.UUID
	accountNumber string
}

// InternalDestination addresses the destination by internal account id.
func InternalDestination(accountID uuid.UUID) Destination {
	return Destination{transferType: TypeInternal, accountID: accountID}
}

// ExternalDestination addresses the destination by account number.
func ExternalDestination(accountNumber string) Destination {
	return Destination{transferType: TypeExternal, accountNumber: accountNumber}
}

// Type returns which branch of the union is set.
func (d Destination) Type() Type { return d.transferType }

// AccountID returns the internal destination id; valid only for TypeInternal.
func (d Destination) AccountID() uuid.UUID { return d.accountID }

// AccountNumber returns the external target number; valid only for
// TypeExternal.
func (d Destination) AccountNumber() string { return d.accountNumber }

// Transfer is the record of one fund-movement attempt. It is created in
// Processing at execution start and always ends Completed, Failed or
// Cancelled.
type Transfer struct {
	ID                       uuid.UUID
	SourceAccountID          uuid.UUID
	DestinationAccountID     uuid.UUID
	DestinationAccountNumber string
	Type                     Type
	Amount                   decimal.Decimal
	Description              string
	Status                   Status
	TransferDate             time.Time
	ScheduledDate            *time.Time
	SourceTransactionID      *uuid.UUID
	DestinationTransactionID *uuid.UUID
	FailureReason            string
	CreatedDate              time.Time
	CompletedDate            *time.Time
}

// CanCancel reports whether an administrative cancel is allowed. Only
// transfers that have not reached a terminal state can be cancelled.
func (t *Transfer) CanCancel() bool {
	return t.Status == StatusPending || t.Status == StatusProcessing
}

// CanRetry reports whether a retry is allowed. Retry re-executes the
// original parameters as a fresh attempt and is only meaningful for failed
// transfers.
func (t *Transfer) CanRetry() bool {
	return t.Status == StatusFailed
}

// Cancel moves the transfer to Cancelled.
func (t *Transfer) Cancel() error {
	if !t.CanCancel() {
		return ErrCancelNotAllowed
	}
	t.Status = StatusCancelled
	return nil
}

// Complete links both ledger rows and marks the transfer Completed.
func (t *Transfer) Complete(sourceTxID, destTxID uuid.UUID, at time.Time) {
	t.SourceTransactionID = &sourceTxID
	t.DestinationTransactionID = &destTxID
	t.Status = StatusCompleted
	t.CompletedDate = &at
}

// Fail marks the transfer Failed with a user-safe reason. The underlying
// error is logged by the executor, never stored here.
func (t *Transfer) Fail(reason string) {
	t.Status = StatusFailed
	t.FailureReason = reason
}
