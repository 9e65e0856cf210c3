// Package repository provides the gorm-backed UnitOfWork tying the
// per-entity repositories to one transaction session.
package repository

import (
	"context"

	"gorm.io/gorm"

	accountrepo "github.com/finvault/bankcore/infra/repository/account"
	limitsrepo "github.com/finvault/bankcore/infra/repository/limits"
	transactionrepo "github.com/finvault/bankcore/infra/repository/transaction"
	transferrepo "github.com/finvault/bankcore/infra/repository/transfer"
	"github.com/finvault/bankcore/pkg/repository"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. All repositories obtained from the same UoW inside Do share
// the transaction session, which is what gives the transfer executor its
// all-or-nothing guarantee.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction boundary. A nested Do joins the transaction
// already in progress rather than opening a second one.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Accounts implements repository.UnitOfWork.
func (u *UoW) Accounts() repository.AccountRepository {
	return accountrepo.New(u.session())
}

// Transactions implements repository.UnitOfWork.
func (u *UoW) Transactions() repository.TransactionRepository {
	return transactionrepo.New(u.session())
}

// Transfers implements repository.UnitOfWork.
func (u *UoW) Transfers() repository.TransferRepository {
	return transferrepo.New(u.session())
}

// ScheduledTransfers implements repository.UnitOfWork.
func (u *UoW) ScheduledTransfers() repository.ScheduledTransferRepository {
	return transferrepo.NewScheduled(u.session())
}

// Limits implements repository.UnitOfWork.
func (u *UoW) Limits() repository.LimitsRepository {
	return limitsrepo.New(u.session())
}
