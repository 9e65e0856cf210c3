package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates an account repository bound to the given gorm session.
func New(db *gorm.DB) repository.AccountRepository {
	return &repo{db: db}
}

// Get implements repository.AccountRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return toDomain(&m), nil
}

// GetByNumber implements repository.AccountRepository.
func (r *repo) GetByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "account_number = ?", accountNumber).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return toDomain(&m), nil
}

// GetForUpdate reads the row under SELECT ... FOR UPDATE. Callers acquire
// locks in ascending id order; see the transfer executor.
func (r *repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toDomain(&m), nil
}

// Create implements repository.AccountRepository.
func (r *repo) Create(ctx context.Context, a *domain.Account) error {
	m := Account{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// UpdateBalance implements repository.AccountRepository.
func (r *repo) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func toDomain(m *Account) *domain.Account {
	return &domain.Account{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}
