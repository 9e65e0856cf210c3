package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger row. The transfer engine only ever
// writes the two transfer-side types.
type TransactionType string

const (
	TransactionTransferOut TransactionType = "Transfer Out"
	TransactionTransferIn  TransactionType = "Transfer In"
)

// TransactionStatus is the terminal state recorded on a ledger row.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "Completed"
)

// Transaction is an immutable ledger row. Every completed transfer produces
// exactly two of these, one per side, linked back from the Transfer record.
type Transaction struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	Type            TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	Status          TransactionStatus
}

// NewTransaction creates a completed ledger row for the given account.
func NewTransaction(accountID uuid.UUID, txType TransactionType, amount decimal.Decimal, description string, at time.Time) *Transaction {
	return &Transaction{
		ID:              uuid.New(),
		AccountID:       accountID,
		Type:            txType,
		Amount:          amount,
		Description:     description,
		TransactionDate: at,
		Status:          TransactionCompleted,
	}
}
