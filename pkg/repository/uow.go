package repository

import "context"

// UnitOfWork is the transaction boundary for the transfer engine. All
// repositories obtained from the same UnitOfWork inside Do share one DB
// session, so every write in the closure commits or rolls back as a unit.
//
// The executor relies on this for its all-or-nothing guarantee: there is no
// observable state where the transfer row exists while balances are
// unmodified, or vice versa.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error,
	// every write made through the provided UnitOfWork is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Accounts() AccountRepository
	Transactions() TransactionRepository
	Transfers() TransferRepository
	ScheduledTransfers() ScheduledTransferRepository
	Limits() LimitsRepository
}
