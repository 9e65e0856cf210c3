package transfer_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/domain/transfer"
	"github.com/finvault/bankcore/pkg/repository"
)

var errStoreDown = errors.New("storage unavailable")

// memStore is an in-memory backing store for the repository fakes. Do takes
// a snapshot before the closure runs and restores it on error, giving the
// same all-or-nothing behavior a database transaction would.
type memStore struct {
	accounts  map[uuid.UUID]*account.Account
	txs       []*account.Transaction
	transfers map[uuid.UUID]*transfer.Transfer
	scheduled map[uuid.UUID]*transfer.ScheduledTransfer
	limits    map[uuid.UUID]*limits.AccountLimits

	failTransactionCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  make(map[uuid.UUID]*account.Account),
		transfers: make(map[uuid.UUID]*transfer.Transfer),
		scheduled: make(map[uuid.UUID]*transfer.ScheduledTransfer),
		limits:    make(map[uuid.UUID]*limits.AccountLimits),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for id, a := range s.accounts {
		c := *a
		cp.accounts[id] = &c
	}
	for id, t := range s.transfers {
		c := *t
		cp.transfers[id] = &c
	}
	for id, d := range s.scheduled {
		c := *d
		cp.scheduled[id] = &c
	}
	for id, l := range s.limits {
		c := *l
		cp.limits[id] = &c
	}
	cp.txs = append([]*account.Transaction(nil), s.txs...)
	cp.failTransactionCreate = s.failTransactionCreate
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.accounts = from.accounts
	s.txs = from.txs
	s.transfers = from.transfers
	s.scheduled = from.scheduled
	s.limits = from.limits
}

type memUoW struct {
	store *memStore
}

func newMemUoW(store *memStore) repository.UnitOfWork {
	return &memUoW{store: store}
}

func (u *memUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	before := u.store.snapshot()
	if err := fn(u); err != nil {
		u.store.restore(before)
		return err
	}
	return nil
}

func (u *memUoW) Accounts() repository.AccountRepository {
	return &memAccountRepo{store: u.store}
}

func (u *memUoW) Transactions() repository.TransactionRepository {
	return &memTransactionRepo{store: u.store}
}

func (u *memUoW) Transfers() repository.TransferRepository {
	return &memTransferRepo{store: u.store}
}

func (u *memUoW) ScheduledTransfers() repository.ScheduledTransferRepository {
	return &memScheduledRepo{store: u.store}
}

func (u *memUoW) Limits() repository.LimitsRepository {
	return &memLimitsRepo{store: u.store}
}

type memAccountRepo struct {
	store *memStore
}

func (r *memAccountRepo) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	c := *a
	return &c, nil
}

func (r *memAccountRepo) GetByNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	for _, a := range r.store.accounts {
		if a.AccountNumber == accountNumber {
			c := *a
			return &c, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *memAccountRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.Get(ctx, id)
}

func (r *memAccountRepo) Create(ctx context.Context, a *account.Account) error {
	c := *a
	r.store.accounts[a.ID] = &c
	return nil
}

func (r *memAccountRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	a, ok := r.store.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Balance = balance
	return nil
}

type memTransactionRepo struct {
	store *memStore
}

func (r *memTransactionRepo) Create(ctx context.Context, tx *account.Transaction) error {
	if r.store.failTransactionCreate {
		return errStoreDown
	}
	c := *tx
	r.store.txs = append(r.store.txs, &c)
	return nil
}

func (r *memTransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	var out []*account.Transaction
	for _, tx := range r.store.txs {
		if tx.AccountID == accountID {
			c := *tx
			out = append(out, &c)
		}
	}
	return out, nil
}

type memTransferRepo struct {
	store *memStore
}

func (r *memTransferRepo) Get(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	t, ok := r.store.transfers[id]
	if !ok {
		return nil, transfer.ErrTransferNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTransferRepo) Create(ctx context.Context, t *transfer.Transfer) error {
	c := *t
	r.store.transfers[t.ID] = &c
	return nil
}

func (r *memTransferRepo) Update(ctx context.Context, t *transfer.Transfer) error {
	if _, ok := r.store.transfers[t.ID]; !ok {
		return transfer.ErrTransferNotFound
	}
	c := *t
	r.store.transfers[t.ID] = &c
	return nil
}

func (r *memTransferRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.Transfer, error) {
	var out []*transfer.Transfer
	for _, t := range r.store.transfers {
		if t.SourceAccountID == accountID {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

type memScheduledRepo struct {
	store *memStore
}

func (r *memScheduledRepo) Get(ctx context.Context, id uuid.UUID) (*transfer.ScheduledTransfer, error) {
	d, ok := r.store.scheduled[id]
	if !ok {
		return nil, transfer.ErrScheduledNotFound
	}
	c := *d
	return &c, nil
}

func (r *memScheduledRepo) Create(ctx context.Context, s *transfer.ScheduledTransfer) error {
	c := *s
	r.store.scheduled[s.ID] = &c
	return nil
}

func (r *memScheduledRepo) Update(ctx context.Context, s *transfer.ScheduledTransfer) error {
	if _, ok := r.store.scheduled[s.ID]; !ok {
		return transfer.ErrScheduledNotFound
	}
	c := *s
	r.store.scheduled[s.ID] = &c
	return nil
}

func (r *memScheduledRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.ScheduledTransfer, error) {
	var out []*transfer.ScheduledTransfer
	for _, d := range r.store.scheduled {
		if d.SourceAccountID == accountID {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memScheduledRepo) ListDue(ctx context.Context, asOf time.Time) ([]*transfer.ScheduledTransfer, error) {
	var out []*transfer.ScheduledTransfer
	for _, d := range r.store.scheduled {
		if d.Status == transfer.ScheduledActive && !d.NextExecutionDate.After(asOf) {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

type memLimitsRepo struct {
	store *memStore
}

func (r *memLimitsRepo) GetByAccount(ctx context.Context, accountID uuid.UUID) (*limits.AccountLimits, error) {
	l, ok := r.store.limits[accountID]
	if !ok {
		return nil, limits.ErrLimitsNotFound
	}
	c := *l
	return &c, nil
}

func (r *memLimitsRepo) GetForUpdate(ctx context.Context, accountID uuid.UUID) (*limits.AccountLimits, error) {
	return r.GetByAccount(ctx, accountID)
}

func (r *memLimitsRepo) Create(ctx context.Context, l *limits.AccountLimits) error {
	c := *l
	r.store.limits[l.AccountID] = &c
	return nil
}

func (r *memLimitsRepo) Update(ctx context.Context, l *limits.AccountLimits) error {
	if _, ok := r.store.limits[l.AccountID]; !ok {
		return limits.ErrLimitsNotFound
	}
	c := *l
	r.store.limits[l.AccountID] = &c
	return nil
}
