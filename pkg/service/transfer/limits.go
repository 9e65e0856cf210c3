package transfer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/repository"
)

// LimitLedger manages the per-account limit rows: lazy creation with default
// thresholds and calendar resets.
//
// Resets are persisted immediately, independent of whether the surrounding
// transfer attempt succeeds. A transfer attempt alone can therefore roll a
// stale counter, the same way a billing cycle ticks over on first contact.
type LimitLedger struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// NewLimitLedger creates a LimitLedger bound to the given unit of work.
func NewLimitLedger(uow repository.UnitOfWork, logger *slog.Logger) *LimitLedger {
	return &LimitLedger{uow: uow, logger: logger, now: time.Now}
}

// Prepare fetches the account's limits row, creating it with default
// thresholds when absent, and applies any pending daily/monthly reset. The
// row is persisted in its own transaction so the reset survives even when
// the transfer attempt that triggered it later fails.
func (ll *LimitLedger) Prepare(ctx context.Context, accountID uuid.UUID) (*limits.AccountLimits, error) {
	var row *limits.AccountLimits
	err := ll.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		existing, err := uow.Limits().GetByAccount(ctx, accountID)
		switch {
		case errors.Is(err, limits.ErrLimitsNotFound):
			row = limits.NewDefaults(accountID, ll.now())
			ll.logger.Info("creating default limits", "accountID", accountID)
			return uow.Limits().Create(ctx, row)
		case err != nil:
			return err
		}
		row = existing
		if row.ApplyResets(ll.now()) {
			ll.logger.Info("limit counters reset",
				"accountID", accountID,
				"lastDailyReset", row.LastDailyReset,
				"lastMonthlyReset", row.LastMonthlyReset,
			)
			return uow.Limits().Update(ctx, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Get returns the current limits row for display, applying lazy creation and
// resets the same way a transfer attempt would.
func (ll *LimitLedger) Get(ctx context.Context, accountID uuid.UUID) (*limits.AccountLimits, error) {
	return ll.Prepare(ctx, accountID)
}
