package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents an immutable ledger row in the database. Rows are
// only ever inserted, never updated.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type            string          `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Description     string          `gorm:"type:varchar(255)"`
	TransactionDate time.Time       `gorm:"not null"`
	Status          string          `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
