package webapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/domain/transfer"
)

// AccountResponse is the JSON shape of an account.
type AccountResponse struct {
	ID            uuid.UUID `json:"id"`
	AccountNumber string    `json:"account_number"`
	Balance       string    `json:"balance"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance.String(),
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}

// TransactionResponse is the JSON shape of a ledger row.
type TransactionResponse struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"account_id"`
	Type            string    `json:"transaction_type"`
	Amount          string    `json:"amount"`
	Description     string    `json:"description"`
	TransactionDate time.Time `json:"transaction_date"`
	Status          string    `json:"status"`
}

func toTransactionResponse(tx *account.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		Type:            string(tx.Type),
		Amount:          tx.Amount.String(),
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate,
		Status:          string(tx.Status),
	}
}

// LimitsResponse is the JSON shape of an account's limit ledger, including
// the remaining headroom under each cap.
type LimitsResponse struct {
	AccountID         uuid.UUID `json:"account_id"`
	DailyLimit        string    `json:"daily_limit"`
	MonthlyLimit      string    `json:"monthly_limit"`
	PerTransactionMin string    `json:"per_transaction_min"`
	PerTransactionMax string    `json:"per_transaction_max"`
	DailyUsed         string    `json:"daily_used"`
	MonthlyUsed       string    `json:"monthly_used"`
	DailyHeadroom     string    `json:"daily_headroom"`
	MonthlyHeadroom   string    `json:"monthly_headroom"`
}

func toLimitsResponse(l *limits.AccountLimits) LimitsResponse {
	return LimitsResponse{
		AccountID:         l.AccountID,
		DailyLimit:        l.DailyLimit.String(),
		MonthlyLimit:      l.MonthlyLimit.String(),
		PerTransactionMin: l.PerTransactionMin.String(),
		PerTransactionMax: l.PerTransactionMax.String(),
		DailyUsed:         l.DailyUsed.String(),
		MonthlyUsed:       l.MonthlyUsed.String(),
		DailyHeadroom:     l.DailyHeadroom().String(),
		MonthlyHeadroom:   l.MonthlyHeadroom().String(),
	}
}

// TransferResponse is the JSON shape of an immediate transfer record.
type TransferResponse struct {
	ID                       uuid.UUID  `json:"id"`
	SourceAccountID          uuid.UUID  `json:"source_account_id"`
	DestinationAccountID     *uuid.UUID `json:"destination_account_id,omitempty"`
	DestinationAccountNumber string     `json:"destination_account_number,omitempty"`
	TransferType             string     `json:"transfer_type"`
	Amount                   string     `json:"amount"`
	Description              string     `json:"description"`
	Status                   string     `json:"status"`
	TransferDate             time.Time  `json:"transfer_date"`
	ScheduledDate            *time.Time `json:"scheduled_date,omitempty"`
	SourceTransactionID      *uuid.UUID `json:"source_transaction_id,omitempty"`
	DestinationTransactionID *uuid.UUID `json:"destination_transaction_id,omitempty"`
	FailureReason            string     `json:"failure_reason,omitempty"`
	CreatedDate              time.Time  `json:"created_date"`
	CompletedDate            *time.Time `json:"completed_date,omitempty"`
}

func toTransferResponse(t *transfer.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:                       t.ID,
		SourceAccountID:          t.SourceAccountID,
		DestinationAccountNumber: t.DestinationAccountNumber,
		TransferType:             string(t.Type),
		Amount:                   t.Amount.String(),
		Description:              t.Description,
		Status:                   string(t.Status),
		TransferDate:             t.TransferDate,
		ScheduledDate:            t.ScheduledDate,
		SourceTransactionID:      t.SourceTransactionID,
		DestinationTransactionID: t.DestinationTransactionID,
		FailureReason:            t.FailureReason,
		CreatedDate:              t.CreatedDate,
		CompletedDate:            t.CompletedDate,
	}
	if t.DestinationAccountID != uuid.Nil {
		id := t.DestinationAccountID
		resp.DestinationAccountID = &id
	}
	return resp
}

// ScheduledTransferResponse is the JSON shape of a recurring transfer
// definition.
type ScheduledTransferResponse struct {
	ID                       uuid.UUID  `json:"id"`
	SourceAccountID          uuid.UUID  `json:"source_account_id"`
	DestinationAccountID     *uuid.UUID `json:"destination_account_id,omitempty"`
	DestinationAccountNumber string     `json:"destination_account_number,omitempty"`
	TransferType             string     `json:"transfer_type"`
	Amount                   string     `json:"amount"`
	Description              string     `json:"description"`
	RecurrenceType           string     `json:"recurrence_type"`
	RecurrenceDay            *int       `json:"recurrence_day,omitempty"`
	Status                   string     `json:"status"`
	ScheduledDate            time.Time  `json:"scheduled_date"`
	NextExecutionDate        time.Time  `json:"next_execution_date"`
	LastExecutionDate        *time.Time `json:"last_execution_date,omitempty"`
	ExecutionCount           int        `json:"execution_count"`
	CreatedDate              time.Time  `json:"created_date"`
}

func toScheduledTransferResponse(s *transfer.ScheduledTransfer) ScheduledTransferResponse {
	resp := ScheduledTransferResponse{
		ID:                       s.ID,
		SourceAccountID:          s.SourceAccountID,
		DestinationAccountNumber: s.DestinationAccountNumber,
		TransferType:             string(s.Type),
		Amount:                   s.Amount.String(),
		Description:              s.Description,
		RecurrenceType:           string(s.Recurrence),
		RecurrenceDay:            s.RecurrenceDay,
		Status:                   string(s.Status),
		ScheduledDate:            s.ScheduledDate,
		NextExecutionDate:        s.NextExecutionDate,
		LastExecutionDate:        s.LastExecutionDate,
		ExecutionCount:           s.ExecutionCount,
		CreatedDate:              s.CreatedDate,
	}
	if s.DestinationAccountID != uuid.Nil {
		id := s.DestinationAccountID
		resp.DestinationAccountID = &id
	}
	return resp
}
