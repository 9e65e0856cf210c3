// Package account holds the account aggregate and the immutable transaction
// ledger rows the transfer engine appends to it.
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be resolved by id
	// or account number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountInactive is returned when an operation targets a closed or
	// frozen account.
	ErrAccountInactive = errors.New("account is not active")
)

// Account represents a customer's bank account. Balances are mutated only
// through the transfer executor for transfer-induced changes; other paths
// (deposits, fees) live outside this engine.
type Account struct {
	ID            uuid.UUID
	AccountNumber string
	Balance       decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Builder provides a fluent API for constructing Account instances,
// primarily for hydration from a data store and for test setup.
type Builder struct {
	id            uuid.UUID
	accountNumber string
	balance       decimal.Decimal
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

// New creates a new Builder with a fresh UUID and an active, zero-balance
// account.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		balance:   decimal.Zero,
		isActive:  true,
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the id for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithAccountNumber sets the externally visible account number. This is a
// mandatory field.
func (b *Builder) WithAccountNumber(number string) *Builder {
	b.accountNumber = number
	return b
}

// WithBalance sets the initial balance. This should only be used for
// hydrating an existing account from a data store or for test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithActive sets the active flag for the account being built.
func (b *Builder) WithActive(active bool) *Builder {
	b.isActive = active
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build finalizes the construction of the Account.
func (b *Builder) Build() (*Account, error) {
	if b.accountNumber == "" {
		return nil, errors.New("account number is required")
	}
	return &Account{
		ID:            b.id,
		AccountNumber: b.accountNumber,
		Balance:       b.balance,
		IsActive:      b.isActive,
		CreatedAt:     b.createdAt,
		UpdatedAt:     b.updatedAt,
	}, nil
}

// CanCover reports whether the current balance is sufficient for the given
// amount.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
