package transfer

import "errors"

// Validation failures are expected control flow: they are returned as typed
// values, never panics, and callers map them to client-facing rejections.
var (
	// ErrSourceNotFound is returned when the source account does not exist.
	ErrSourceNotFound = errors.New("source account not found")

	// ErrSourceInactive is returned when the source account is not active.
	ErrSourceInactive = errors.New("source account is not active")

	// ErrInvalidAmount is returned when the transfer amount is not positive.
	ErrInvalidAmount = errors.New("transfer amount must be positive")

	// ErrDestinationNotFound is returned when the destination cannot be
	// resolved by id or account number.
	ErrDestinationNotFound = errors.New("destination account not found")

	// ErrDestinationInactive is returned when the destination account is not
	// active.
	ErrDestinationInactive = errors.New("destination account is not active")

	// ErrSelfTransfer is returned when source and destination are the same
	// account.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrInsufficientBalance is returned when the source balance does not
	// cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Lifecycle errors for the immediate and scheduled state machines.
var (
	// ErrTransferNotFound is returned when a transfer id does not resolve.
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrCancelNotAllowed is returned when cancelling a transfer that has
	// already reached a terminal state.
	ErrCancelNotAllowed = errors.New("transfer cannot be cancelled in its current status")

	// ErrRetryNotAllowed is returned when retrying a transfer that has not
	// failed.
	ErrRetryNotAllowed = errors.New("only failed transfers can be retried")

	// ErrScheduledNotFound is returned when a scheduled transfer id does not
	// resolve.
	ErrScheduledNotFound = errors.New("scheduled transfer not found")

	// ErrScheduledNotActive is returned when pausing a definition that is not
	// currently active.
	ErrScheduledNotActive = errors.New("scheduled transfer is not active")

	// ErrScheduledNotPaused is returned when resuming a definition that is
	// not currently paused.
	ErrScheduledNotPaused = errors.New("scheduled transfer is not paused")

	// ErrScheduledFinished is returned when mutating a cancelled or completed
	// definition.
	ErrScheduledFinished = errors.New("scheduled transfer is cancelled or completed")

	// ErrExecutionFailed is the generic, user-safe reason recorded on a
	// failed execution. The original error is logged, not surfaced.
	ErrExecutionFailed = errors.New("transfer failed")
)
