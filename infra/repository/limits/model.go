package limits

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountLimits represents the one-to-one limit ledger row for an account.
type AccountLimits struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	DailyLimit        decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	MonthlyLimit      decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	PerTransactionMin decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	PerTransactionMax decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	DailyUsed         decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	MonthlyUsed       decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	LastDailyReset    time.Time       `gorm:"not null"`
	LastMonthlyReset  time.Time       `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for the AccountLimits model.
func (AccountLimits) TableName() string {
	return "account_limits"
}
