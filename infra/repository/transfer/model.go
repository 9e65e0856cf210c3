package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer represents an immediate transfer record in the database.
type Transfer struct {
	ID                       uuid.UUID `gorm:"type:uuid;primary_key"`
	SourceAccountID          uuid.UUID `gorm:"type:uuid;index;not null"`
	DestinationAccountID     *uuid.UUID
	DestinationAccountNumber string          `gorm:"type:varchar(34)"`
	TransferType             string          `gorm:"type:varchar(10);not null"`
	Amount                   decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Description              string          `gorm:"type:varchar(255)"`
	Status                   string          `gorm:"type:varchar(20);index;not null"`
	TransferDate             time.Time       `gorm:"not null"`
	ScheduledDate            *time.Time
	SourceTransactionID      *uuid.UUID `gorm:"type:uuid"`
	DestinationTransactionID *uuid.UUID `gorm:"type:uuid"`
	FailureReason            string     `gorm:"type:varchar(255)"`
	CreatedDate              time.Time  `gorm:"not null"`
	CompletedDate            *time.Time
}

// TableName specifies the table name for the Transfer model.
func (Transfer) TableName() string {
	return "transfers"
}

// ScheduledTransfer represents a recurring transfer definition in the
// database.
type ScheduledTransfer struct {
	ID                       uuid.UUID `gorm:"type:uuid;primary_key"`
	SourceAccountID          uuid.UUID `gorm:"type:uuid;index;not null"`
	DestinationAccountID     *uuid.UUID
	DestinationAccountNumber string          `gorm:"type:varchar(34)"`
	TransferType             string          `gorm:"type:varchar(10);not null"`
	Amount                   decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Description              string          `gorm:"type:varchar(255)"`
	RecurrenceType           string          `gorm:"type:varchar(10);not null"`
	RecurrenceDay            *int
	Status                   string    `gorm:"type:varchar(10);index;not null"`
	ScheduledDate            time.Time `gorm:"not null"`
	NextExecutionDate        time.Time `gorm:"index;not null"`
	LastExecutionDate        *time.Time
	ExecutionCount           int       `gorm:"not null;default:0"`
	CreatedDate              time.Time `gorm:"not null"`
	UpdatedAt                time.Time
}

// TableName specifies the table name for the ScheduledTransfer model.
func (ScheduledTransfer) TableName() string {
	return "scheduled_transfers"
}
