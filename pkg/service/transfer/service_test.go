package transfer_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/domain/transfer"
	transfersvc "github.com/finvault/bankcore/pkg/service/transfer"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type env struct {
	store *memStore
	svc   *transfersvc.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &env{
		store: store,
		svc:   transfersvc.NewService(newMemUoW(store), logger),
	}
}

func (e *env) seedAccount(t *testing.T, number, balance string) *account.Account {
	t.Helper()
	a, err := account.New().
		WithAccountNumber(number).
		WithBalance(d(balance)).
		Build()
	require.NoError(t, err)
	e.store.accounts[a.ID] = a
	return a
}

func (e *env) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	a, ok := e.store.accounts[id]
	require.True(t, ok)
	return a.Balance
}

func TestTransferInternal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("moves funds and writes both ledger rows", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")
		dst := e.seedAccount(t, "ACC-002", "5000")

		rec, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("1000"), "rent")
		require.NoError(t, err)

		assert.Equal(t, transfer.StatusCompleted, rec.Status)
		assert.True(t, e.balance(t, src.ID).Equal(d("9000")))
		assert.True(t, e.balance(t, dst.ID).Equal(d("6000")))

		require.Len(t, e.store.txs, 2)
		require.NotNil(t, rec.SourceTransactionID)
		require.NotNil(t, rec.DestinationTransactionID)

		var out, in *account.Transaction
		for _, tx := range e.store.txs {
			switch tx.Type {
			case account.TransactionTransferOut:
				out = tx
			case account.TransactionTransferIn:
				in = tx
			}
		}
		require.NotNil(t, out)
		require.NotNil(t, in)
		assert.Equal(t, src.ID, out.AccountID)
		assert.Equal(t, dst.ID, in.AccountID)
		assert.Equal(t, "Transfer to account ACC-002", out.Description)
		assert.Equal(t, "Transfer from account ACC-001", in.Description)
		assert.Equal(t, *rec.SourceTransactionID, out.ID)
		assert.Equal(t, *rec.DestinationTransactionID, in.ID)

		lim := e.store.limits[src.ID]
		require.NotNil(t, lim, "a default limits row must be created lazily")
		assert.True(t, lim.DailyUsed.Equal(d("1000")))
		assert.True(t, lim.MonthlyUsed.Equal(d("1000")))
	})

	t.Run("insufficient balance leaves everything unchanged", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "300")
		dst := e.seedAccount(t, "ACC-002", "5000")

		_, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("500"), "")
		assert.ErrorIs(t, err, transfer.ErrInsufficientBalance)

		assert.True(t, e.balance(t, src.ID).Equal(d("300")))
		assert.True(t, e.balance(t, dst.ID).Equal(d("5000")))
		assert.Empty(t, e.store.txs)
		assert.Empty(t, e.store.transfers, "a validation rejection must not leave a transfer record")
	})

	t.Run("amount above per-transaction maximum", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")
		dst := e.seedAccount(t, "ACC-002", "0")
		e.store.limits[src.ID] = limits.NewDefaults(src.ID, time.Now().UTC())

		_, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("6000"), "")
		assert.ErrorIs(t, err, limits.ErrAboveTransactionMax)
		assert.True(t, e.store.limits[src.ID].DailyUsed.IsZero(), "rejected amounts must not consume limits")
	})

	t.Run("two sequential transfers accumulate usage against the same row", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "20000")
		dst := e.seedAccount(t, "ACC-002", "0")

		_, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("4000"), "")
		require.NoError(t, err)
		_, err = e.svc.TransferInternal(ctx, src.ID, dst.ID, d("5000"), "")
		require.NoError(t, err)

		lim := e.store.limits[src.ID]
		require.NotNil(t, lim)
		assert.True(t, lim.DailyUsed.Equal(d("9000")), "both debits must land on the same counters")

		// 9000 of the 10000 daily allowance is gone; the next transfer has
		// to see that consumption, not the counters it validated against.
		_, err = e.svc.TransferInternal(ctx, src.ID, dst.ID, d("2000"), "")
		assert.ErrorIs(t, err, limits.ErrDailyLimitExceeded)
		assert.True(t, e.balance(t, src.ID).Equal(d("11000")))
	})

	t.Run("daily limit headroom enforced", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "20000")
		dst := e.seedAccount(t, "ACC-002", "0")

		lim := limits.NewDefaults(src.ID, time.Now().UTC())
		lim.DailyUsed = d("9500")
		lim.MonthlyUsed = d("9500")
		e.store.limits[src.ID] = lim

		_, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("1000"), "")
		assert.ErrorIs(t, err, limits.ErrDailyLimitExceeded)
		assert.True(t, e.balance(t, src.ID).Equal(d("20000")))
	})

	t.Run("self transfer rejected", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")

		_, err := e.svc.TransferInternal(ctx, src.ID, src.ID, d("100"), "")
		assert.ErrorIs(t, err, transfer.ErrSelfTransfer)
	})

	t.Run("inactive destination rejected", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")
		dst := e.seedAccount(t, "ACC-002", "0")
		e.store.accounts[dst.ID].IsActive = false

		_, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("100"), "")
		assert.ErrorIs(t, err, transfer.ErrDestinationInactive)
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		dst := e.seedAccount(t, "ACC-002", "0")
		srcID := uuid.New()

		_, err := e.svc.TransferInternal(ctx, srcID, dst.ID, d("100"), "")
		assert.ErrorIs(t, err, transfer.ErrSourceNotFound)
		assert.NotContains(t, e.store.limits, srcID, "a rejected source must not get a limits row")
	})

	t.Run("non-positive amount does not mint a limits row", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")
		dst := e.seedAccount(t, "ACC-002", "0")

		_, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("0"), "")
		assert.ErrorIs(t, err, transfer.ErrInvalidAmount)
		assert.NotContains(t, e.store.limits, src.ID)
	})
}

func TestTransferExternal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("resolves destination by account number", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")
		dst := e.seedAccount(t, "ACC-002", "5000")

		rec, err := e.svc.TransferExternal(ctx, src.ID, "ACC-002", d("1000"), "")
		require.NoError(t, err)
		assert.Equal(t, transfer.TypeExternal, rec.Type)
		assert.Equal(t, dst.ID, rec.DestinationAccountID)
		assert.True(t, e.balance(t, dst.ID).Equal(d("6000")))
	})

	t.Run("unknown account number rejected", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")

		_, err := e.svc.TransferExternal(ctx, src.ID, "NO-SUCH-ACCOUNT", d("1000"), "")
		assert.ErrorIs(t, err, transfer.ErrDestinationNotFound)
	})

	t.Run("own account number is a self transfer", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")

		_, err := e.svc.TransferExternal(ctx, src.ID, "ACC-001", d("1000"), "")
		assert.ErrorIs(t, err, transfer.ErrSelfTransfer)
	})
}

func TestExecutionFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t)
	src := e.seedAccount(t, "ACC-001", "10000")
	dst := e.seedAccount(t, "ACC-002", "5000")
	e.store.limits[src.ID] = limits.NewDefaults(src.ID, time.Now().UTC())
	e.store.failTransactionCreate = true

	rec, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("1000"), "")
	require.ErrorIs(t, err, transfer.ErrExecutionFailed)
	require.NotNil(t, rec)

	assert.Equal(t, transfer.StatusFailed, rec.Status)
	assert.Equal(t, "transfer failed", rec.FailureReason, "the storage error must not leak into the record")

	assert.True(t, e.balance(t, src.ID).Equal(d("10000")), "debit must roll back")
	assert.True(t, e.balance(t, dst.ID).Equal(d("5000")), "credit must roll back")
	assert.Empty(t, e.store.txs)

	stored, ok := e.store.transfers[rec.ID]
	require.True(t, ok, "the failed attempt must be recorded")
	assert.Equal(t, transfer.StatusFailed, stored.Status)
	assert.True(t, e.store.limits[src.ID].DailyUsed.IsZero(), "a failed transfer must not consume limits")
}

func TestCancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("pending transfer cancels", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		rec := &transfer.Transfer{ID: uuid.New(), SourceAccountID: uuid.New(), Status: transfer.StatusPending}
		e.store.transfers[rec.ID] = rec

		got, err := e.svc.Cancel(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.StatusCancelled, got.Status)
		assert.Equal(t, transfer.StatusCancelled, e.store.transfers[rec.ID].Status)
	})

	t.Run("completed transfer rejects cancel", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		rec := &transfer.Transfer{ID: uuid.New(), Status: transfer.StatusCompleted}
		e.store.transfers[rec.ID] = rec

		_, err := e.svc.Cancel(ctx, rec.ID)
		assert.ErrorIs(t, err, transfer.ErrCancelNotAllowed)
		assert.Equal(t, transfer.StatusCompleted, e.store.transfers[rec.ID].Status)
	})

	t.Run("unknown transfer", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		_, err := e.svc.Cancel(ctx, uuid.New())
		assert.ErrorIs(t, err, transfer.ErrTransferNotFound)
	})
}

func TestRetry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("failed transfer retries as a fresh attempt", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		src := e.seedAccount(t, "ACC-001", "10000")
		dst := e.seedAccount(t, "ACC-002", "5000")

		e.store.failTransactionCreate = true
		failed, err := e.svc.TransferInternal(ctx, src.ID, dst.ID, d("1000"), "rent")
		require.ErrorIs(t, err, transfer.ErrExecutionFailed)

		e.store.failTransactionCreate = false
		retried, err := e.svc.Retry(ctx, failed.ID)
		require.NoError(t, err)

		assert.NotEqual(t, failed.ID, retried.ID, "retry must produce a new record")
		assert.Equal(t, transfer.StatusCompleted, retried.Status)
		assert.Equal(t, transfer.StatusFailed, e.store.transfers[failed.ID].Status, "the failed record stays as-is")
		assert.True(t, e.balance(t, src.ID).Equal(d("9000")))
		assert.True(t, e.balance(t, dst.ID).Equal(d("6000")))
	})

	t.Run("completed transfer rejects retry", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		rec := &transfer.Transfer{ID: uuid.New(), Status: transfer.StatusCompleted}
		e.store.transfers[rec.ID] = rec

		_, err := e.svc.Retry(ctx, rec.ID)
		assert.ErrorIs(t, err, transfer.ErrRetryNotAllowed)
	})
}

func TestLimitLedgerGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t)
	accountID := uuid.New()

	lim, err := e.svc.Limits().Get(ctx, accountID)
	require.NoError(t, err)
	assert.True(t, lim.DailyLimit.Equal(d("10000")))
	assert.True(t, lim.MonthlyLimit.Equal(d("50000")))
	require.NotNil(t, e.store.limits[accountID], "first read must create the default row")
}
