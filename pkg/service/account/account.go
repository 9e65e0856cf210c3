// Package account provides the thin read surface the dashboard uses:
// account lookup and transaction history. All transfer-induced mutation goes
// through the transfer service.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/repository"
)

// Service exposes account reads.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates the account read service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Get returns an account by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var a *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		a, err = uow.Accounts().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create registers a new account. Used by the development seed path and
// tests; customer onboarding lives outside this service.
func (s *Service) Create(ctx context.Context, a *account.Account) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Accounts().Create(ctx, a)
	})
}

// ListTransactions returns the ledger rows for an account.
func (s *Service) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	var rows []*account.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rows, err = uow.Transactions().ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
