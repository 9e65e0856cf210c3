package limits

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/finvault/bankcore/pkg/domain/limits"
	"github.com/finvault/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a limits repository bound to the given gorm session.
func New(db *gorm.DB) repository.LimitsRepository {
	return &repo{db: db}
}

// GetByAccount implements repository.LimitsRepository.
func (r *repo) GetByAccount(ctx context.Context, accountID uuid.UUID) (*domain.AccountLimits, error) {
	var m AccountLimits
	if err := r.db.WithContext(ctx).First(&m, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLimitsNotFound
		}
		return nil, err
	}
	return toDomain(&m), nil
}

// GetForUpdate reads the row under SELECT ... FOR UPDATE so the
// check-then-consume sequence in the transfer executor serializes against
// concurrent transfers from the same account.
func (r *repo) GetForUpdate(ctx context.Context, accountID uuid.UUID) (*domain.AccountLimits, error) {
	var m AccountLimits
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLimitsNotFound
		}
		return nil, err
	}
	return toDomain(&m), nil
}

// Create implements repository.LimitsRepository.
func (r *repo) Create(ctx context.Context, l *domain.AccountLimits) error {
	return r.db.WithContext(ctx).Create(toModel(l)).Error
}

// Update implements repository.LimitsRepository.
func (r *repo) Update(ctx context.Context, l *domain.AccountLimits) error {
	return r.db.WithContext(ctx).Save(toModel(l)).Error
}

func toModel(l *domain.AccountLimits) *AccountLimits {
	return &AccountLimits{
		ID:                l.ID,
		AccountID:         l.AccountID,
		DailyLimit:        l.DailyLimit,
		MonthlyLimit:      l.MonthlyLimit,
		PerTransactionMin: l.PerTransactionMin,
		PerTransactionMax: l.PerTransactionMax,
		DailyUsed:         l.DailyUsed,
		MonthlyUsed:       l.MonthlyUsed,
		LastDailyReset:    l.LastDailyReset,
		LastMonthlyReset:  l.LastMonthlyReset,
		// Save writes every column, so the creation timestamp must ride
		// along or updates would zero it.
		CreatedAt: l.CreatedAt,
	}
}

func toDomain(m *AccountLimits) *domain.AccountLimits {
	return &domain.AccountLimits{
		ID:                m.ID,
		AccountID:         m.AccountID,
		DailyLimit:        m.DailyLimit,
		MonthlyLimit:      m.MonthlyLimit,
		PerTransactionMin: m.PerTransactionMin,
		PerTransactionMax: m.PerTransactionMax,
		DailyUsed:         m.DailyUsed,
		MonthlyUsed:       m.MonthlyUsed,
		LastDailyReset:    m.LastDailyReset,
		LastMonthlyReset:  m.LastMonthlyReset,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
