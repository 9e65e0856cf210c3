// Package limits implements the per-account transfer limit ledger: daily and
// monthly usage counters with calendar reset semantics and per-transaction
// bounds.
package limits

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrLimitsNotFound is returned when an account has no limits row yet.
	// Callers create one lazily with the default thresholds.
	ErrLimitsNotFound = errors.New("account limits not found")

	// ErrBelowTransactionMin is returned when an amount is under the
	// per-transaction minimum.
	ErrBelowTransactionMin = errors.New("amount is below the per-transaction minimum")

	// ErrAboveTransactionMax is returned when an amount exceeds the
	// per-transaction maximum.
	ErrAboveTransactionMax = errors.New("amount exceeds the per-transaction maximum")

	// ErrDailyLimitExceeded is returned when an amount does not fit in the
	// remaining daily headroom.
	ErrDailyLimitExceeded = errors.New("daily transfer limit exceeded")

	// ErrMonthlyLimitExceeded is returned when an amount does not fit in the
	// remaining monthly headroom.
	ErrMonthlyLimitExceeded = errors.New("monthly transfer limit exceeded")
)

// Default thresholds applied when an account has no limits row yet.
var (
	DefaultDailyLimit        = decimal.NewFromInt(10000)
	DefaultMonthlyLimit      = decimal.NewFromInt(50000)
	DefaultPerTransactionMin = decimal.NewFromInt(1)
	DefaultPerTransactionMax = decimal.NewFromInt(5000)
)

// AccountLimits is the one-to-one limit ledger row for an account.
//
// Invariant: DailyUsed <= DailyLimit and MonthlyUsed <= MonthlyLimit hold
// immediately after any successful transfer; they are violated only
// transiently before a calendar reset.
type AccountLimits struct {
	ID                uuid.UUID
	AccountID         uuid.UUID
	DailyLimit        decimal.Decimal
	MonthlyLimit      decimal.Decimal
	PerTransactionMin decimal.Decimal
	PerTransactionMax decimal.Decimal
	DailyUsed         decimal.Decimal
	MonthlyUsed       decimal.Decimal
	LastDailyReset    time.Time
	LastMonthlyReset  time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewDefaults creates a limits row with the hard-coded default thresholds,
// anchored to the calendar position of now.
func NewDefaults(accountID uuid.UUID, now time.Time) *AccountLimits {
	now = now.UTC()
	return &AccountLimits{
		ID:                uuid.New(),
		AccountID:         accountID,
		DailyLimit:        DefaultDailyLimit,
		MonthlyLimit:      DefaultMonthlyLimit,
		PerTransactionMin: DefaultPerTransactionMin,
		PerTransactionMax: DefaultPerTransactionMax,
		DailyUsed:         decimal.Zero,
		MonthlyUsed:       decimal.Zero,
		LastDailyReset:    dateOf(now),
		LastMonthlyReset:  firstOfMonth(now),
		CreatedAt:         now,
	}
}

// ApplyResets rolls the daily counter to zero when the last daily reset is
// not today (UTC) and the monthly counter to zero when the last monthly
// reset is not the first of the current month. It reports whether either
// counter rolled, so callers know the row needs persisting even if the
// surrounding attempt fails later.
func (l *AccountLimits) ApplyResets(now time.Time) bool {
	now = now.UTC()
	rolled := false
	if !sameDate(l.LastDailyReset, now) {
		l.DailyUsed = decimal.Zero
		l.LastDailyReset = dateOf(now)
		rolled = true
	}
	if !sameDate(l.LastMonthlyReset, firstOfMonth(now)) {
		l.MonthlyUsed = decimal.Zero
		l.LastMonthlyReset = firstOfMonth(now)
		rolled = true
	}
	return rolled
}

// Check validates the proposed amount against per-transaction bounds and the
// remaining daily/monthly headroom. Counters must already be current via
// ApplyResets.
func (l *AccountLimits) Check(amount decimal.Decimal) error {
	if amount.LessThan(l.PerTransactionMin) {
		return fmt.Errorf("%w: minimum is %s", ErrBelowTransactionMin, l.PerTransactionMin)
	}
	if amount.GreaterThan(l.PerTransactionMax) {
		return fmt.Errorf("%w: maximum is %s", ErrAboveTransactionMax, l.PerTransactionMax)
	}
	if l.DailyUsed.Add(amount).GreaterThan(l.DailyLimit) {
		return fmt.Errorf("%w: %s remaining today", ErrDailyLimitExceeded, l.DailyHeadroom())
	}
	if l.MonthlyUsed.Add(amount).GreaterThan(l.MonthlyLimit) {
		return fmt.Errorf("%w: %s remaining this month", ErrMonthlyLimitExceeded, l.MonthlyHeadroom())
	}
	return nil
}

// Consume records a successful transfer amount against both counters.
func (l *AccountLimits) Consume(amount decimal.Decimal) {
	l.DailyUsed = l.DailyUsed.Add(amount)
	l.MonthlyUsed = l.MonthlyUsed.Add(amount)
}

// DailyHeadroom returns the amount still available under the daily limit.
func (l *AccountLimits) DailyHeadroom() decimal.Decimal {
	h := l.DailyLimit.Sub(l.DailyUsed)
	if h.IsNegative() {
		return decimal.Zero
	}
	return h
}

// MonthlyHeadroom returns the amount still available under the monthly limit.
func (l *AccountLimits) MonthlyHeadroom() decimal.Decimal {
	h := l.MonthlyLimit.Sub(l.MonthlyUsed)
	if h.IsNegative() {
		return decimal.Zero
	}
	return h
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
