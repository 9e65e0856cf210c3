// Package repository defines the data-access contracts the services depend
// on, plus the UnitOfWork transaction boundary they run inside.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/domain/transfer"
)

// AccountRepository defines account data access. GetForUpdate acquires a
// row-level lock when the backing store supports one; implementations
// without locking return the plain row.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*account.Account, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository appends and reads immutable ledger rows.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error)
}

// TransferRepository persists immediate transfer records.
type TransferRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error)
	Create(ctx context.Context, t *transfer.Transfer) error
	Update(ctx context.Context, t *transfer.Transfer) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.Transfer, error)
}

// ScheduledTransferRepository persists recurring transfer definitions.
type ScheduledTransferRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*transfer.ScheduledTransfer, error)
	Create(ctx context.Context, s *transfer.ScheduledTransfer) error
	Update(ctx context.Context, s *transfer.ScheduledTransfer) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.ScheduledTransfer, error)
	ListDue(ctx context.Context, asOf time.Time) ([]*transfer.ScheduledTransfer, error)
}

// LimitsRepository persists the per-account limit ledger. GetForUpdate
// acquires a row-level lock when the backing store supports one, the same
// way AccountRepository.GetForUpdate does.
type LimitsRepository interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*limits.AccountLimits, error)
	GetForUpdate(ctx context.Context, accountID uuid.UUID) (*limits.AccountLimits, error)
	Create(ctx context.Context, l *limits.AccountLimits) error
	Update(ctx context.Context, l *limits.AccountLimits) error
}
