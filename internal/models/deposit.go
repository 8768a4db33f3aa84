package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is the funding account a withdrawal draws from. Only the execute
// step of a withdrawal writes CurrentBalance, and only downwards.
type Deposit struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	DepositorID    uint            `gorm:"column:depositor_id;not null;index:idx_deposit_depositor" json:"depositorId"`
	CurrentBalance decimal.Decimal `gorm:"column:current_balance;type:decimal(20,2);not null;default:0" json:"currentBalance"`
	Currency       string          `gorm:"column:currency;size:10;not null;default:ILS" json:"currency"`
	IsActive       bool            `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Deposit) TableName() string {
	return "deposits"
}
