package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents an account record in the database.
type Account struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountNumber string          `gorm:"type:varchar(34);uniqueIndex;not null"`
	Balance       decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
