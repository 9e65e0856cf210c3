package initializer

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/repository"
)

// seedAccount describes one demo account created in development.
type seedAccount struct {
	number  string
	balance string
}

var devSeedAccounts = []seedAccount{
	{number: "GB29NWBK60161331926819", balance: "10000.00"},
	{number: "GB82WEST12345698765432", balance: "5000.00"},
}

// SeedDevelopmentData creates a pair of demo accounts so a fresh
// development database has something to transfer between. Accounts that
// already exist are left untouched.
func SeedDevelopmentData(ctx context.Context, uow repository.UnitOfWork, logger *slog.Logger) error {
	return uow.Do(ctx, func(uow repository.UnitOfWork) error {
		for _, s := range devSeedAccounts {
			if _, err := uow.Accounts().GetByNumber(ctx, s.number); err == nil {
				continue
			}
			balance, err := decimal.NewFromString(s.balance)
			if err != nil {
				return err
			}
			a, err := account.New().
				WithAccountNumber(s.number).
				WithBalance(balance).
				Build()
			if err != nil {
				return err
			}
			if err := uow.Accounts().Create(ctx, a); err != nil {
				return err
			}
			logger.Info("seeded demo account", "accountNumber", s.number, "balance", s.balance)
		}
		return nil
	})
}
