package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/finvault/bankcore/pkg/domain/transfer"
	"github.com/finvault/bankcore/pkg/repository"
)

type repo struct {
	db *gorm.DB
}

// New creates a transfer repository bound to the given gorm session.
func New(db *gorm.DB) repository.TransferRepository {
	return &repo{db: db}
}

// Get implements repository.TransferRepository.
func (r *repo) Get(ctx context.Context, id uuid.UUID) (*domain.Transfer, error) {
	var m Transfer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}
	return toDomain(&m), nil
}

// Create implements repository.TransferRepository.
func (r *repo) Create(ctx context.Context, t *domain.Transfer) error {
	m := toModel(t)
	return r.db.WithContext(ctx).Create(m).Error
}

// Update implements repository.TransferRepository.
func (r *repo) Update(ctx context.Context, t *domain.Transfer) error {
	m := toModel(t)
	return r.db.WithContext(ctx).Save(m).Error
}

// ListByAccount implements repository.TransferRepository.
func (r *repo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Transfer, error) {
	var ms []Transfer
	err := r.db.WithContext(ctx).
		Where("source_account_id = ?", accountID).
		Order("created_date DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Transfer, 0, len(ms))
	for i := range ms {
		out = append(out, toDomain(&ms[i]))
	}
	return out, nil
}

func toModel(t *domain.Transfer) *Transfer {
	m := &Transfer{
		ID:                       t.ID,
		SourceAccountID:          t.SourceAccountID,
		DestinationAccountNumber: t.DestinationAccountNumber,
		TransferType:             string(t.Type),
		Amount:                   t.Amount,
		Description:              t.Description,
		Status:                   string(t.Status),
		TransferDate:             t.TransferDate,
		ScheduledDate:            t.ScheduledDate,
		SourceTransactionID:      t.SourceTransactionID,
		DestinationTransactionID: t.DestinationTransactionID,
		FailureReason:            t.FailureReason,
		CreatedDate:              t.CreatedDate,
		CompletedDate:            t.CompletedDate,
	}
	if t.DestinationAccountID != uuid.Nil {
		id := t.DestinationAccountID
		m.DestinationAccountID = &id
	}
	return m
}

func toDomain(m *Transfer) *domain.Transfer {
	t := &domain.Transfer{
		ID:                       m.ID,
		SourceAccountID:          m.SourceAccountID,
		DestinationAccountNumber: m.DestinationAccountNumber,
		Type:                     domain.Type(m.TransferType),
		Amount:                   m.Amount,
		Description:              m.Description,
		Status:                   domain.Status(m.Status),
		TransferDate:             m.TransferDate,
		ScheduledDate:            m.ScheduledDate,
		SourceTransactionID:      m.SourceTransactionID,
		DestinationTransactionID: m.DestinationTransactionID,
		FailureReason:            m.FailureReason,
		CreatedDate:              m.CreatedDate,
		CompletedDate:            m.CompletedDate,
	}
	if m.DestinationAccountID != nil {
		t.DestinationAccountID = *m.DestinationAccountID
	}
	return t
}

type scheduledRepo struct {
	db *gorm.DB
}

// NewScheduled creates a scheduled-transfer repository bound to the given
// gorm session.
func NewScheduled(db *gorm.DB) repository.ScheduledTransferRepository {
	return &scheduledRepo{db: db}
}

// Get implements repository.ScheduledTransferRepository.
func (r *scheduledRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ScheduledTransfer, error) {
	var m ScheduledTransfer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrScheduledNotFound
		}
		return nil, err
	}
	return scheduledToDomain(&m), nil
}

// Create implements repository.ScheduledTransferRepository.
func (r *scheduledRepo) Create(ctx context.Context, s *domain.ScheduledTransfer) error {
	return r.db.WithContext(ctx).Create(scheduledToModel(s)).Error
}

// Update implements repository.ScheduledTransferRepository.
func (r *scheduledRepo) Update(ctx context.Context, s *domain.ScheduledTransfer) error {
	return r.db.WithContext(ctx).Save(scheduledToModel(s)).Error
}

// ListByAccount implements repository.ScheduledTransferRepository.
func (r *scheduledRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.ScheduledTransfer, error) {
	var ms []ScheduledTransfer
	err := r.db.WithContext(ctx).
		Where("source_account_id = ?", accountID).
		Order("created_date DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ScheduledTransfer, 0, len(ms))
	for i := range ms {
		out = append(out, scheduledToDomain(&ms[i]))
	}
	return out, nil
}

// ListDue implements repository.ScheduledTransferRepository.
func (r *scheduledRepo) ListDue(ctx context.Context, asOf time.Time) ([]*domain.ScheduledTransfer, error) {
	var ms []ScheduledTransfer
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_execution_date <= ?", string(domain.ScheduledActive), asOf).
		Order("next_execution_date ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ScheduledTransfer, 0, len(ms))
	for i := range ms {
		out = append(out, scheduledToDomain(&ms[i]))
	}
	return out, nil
}

func scheduledToModel(s *domain.ScheduledTransfer) *ScheduledTransfer {
	m := &ScheduledTransfer{
		ID:                       s.ID,
		SourceAccountID:          s.SourceAccountID,
		DestinationAccountNumber: s.DestinationAccountNumber,
		TransferType:             string(s.Type),
		Amount:                   s.Amount,
		Description:              s.Description,
		RecurrenceType:           string(s.Recurrence),
		RecurrenceDay:            s.RecurrenceDay,
		Status:                   string(s.Status),
		ScheduledDate:            s.ScheduledDate,
		NextExecutionDate:        s.NextExecutionDate,
		LastExecutionDate:        s.LastExecutionDate,
		ExecutionCount:           s.ExecutionCount,
		CreatedDate:              s.CreatedDate,
	}
	if s.DestinationAccountID != uuid.Nil {
		id := s.DestinationAccountID
		m.DestinationAccountID = &id
	}
	return m
}

func scheduledToDomain(m *ScheduledTransfer) *domain.ScheduledTransfer {
	s := &domain.ScheduledTransfer{
		ID:                       m.ID,
		SourceAccountID:          m.SourceAccountID,
		DestinationAccountNumber: m.DestinationAccountNumber,
		Type:                     domain.Type(m.TransferType),
		Amount:                   m.Amount,
		Description:              m.Description,
		Recurrence:               domain.RecurrenceType(m.RecurrenceType),
		RecurrenceDay:            m.RecurrenceDay,
		Status:                   domain.ScheduledStatus(m.Status),
		ScheduledDate:            m.ScheduledDate,
		NextExecutionDate:        m.NextExecutionDate,
		LastExecutionDate:        m.LastExecutionDate,
		ExecutionCount:           m.ExecutionCount,
		CreatedDate:              m.CreatedDate,
	}
	if m.DestinationAccountID != nil {
		s.DestinationAccountID = *m.DestinationAccountID
	}
	return s
}
