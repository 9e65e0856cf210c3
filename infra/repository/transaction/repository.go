package transaction

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/finvault/bankcore/pkg/domain/account"
	"github.com/finvault/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a transaction repository bound to the given gorm session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &repo{db: db}
}

// Create implements repository.TransactionRepository.
func (r *repo) Create(ctx context.Context, tx *domain.Transaction) error {
	m := Transaction{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		Type:            string(tx.Type),
		Amount:          tx.Amount,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate,
		Status:          string(tx.Status),
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

// ListByAccount implements repository.TransactionRepository.
func (r *repo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transaction, error) {
	var ms []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("transaction_date DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	rows := make([]*domain.Transaction, 0, len(ms))
	for i := range ms {
		rows = append(rows, toDomain(&ms[i]))
	}
	return rows, nil
}

func toDomain(m *Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Type:            domain.TransactionType(m.Type),
		Amount:          m.Amount,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		Status:          domain.TransactionStatus(m.Status),
	}
}
