package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FlowType string

const (
	FlowOutflow FlowType = "OUTFLOW"
	FlowInflow  FlowType = "INFLOW"
)

const FlowCategoryDepositWithdrawal = "DEPOSIT_WITHDRAWAL"

type FlowState string

const (
	FlowForecast  FlowState = "FORECAST"
	FlowRealized  FlowState = "REALIZED"
	FlowCancelled FlowState = "CANCELLED"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// TreasuryFlow is a forecast cash movement tied to a withdrawal request.
type TreasuryFlow struct {
	ID                  uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	WithdrawalRequestID string          `gorm:"column:withdrawal_request_id;type:char(36);not null;index" json:"withdrawalRequestId"`
	Type                FlowType        `gorm:"column:type;size:10;not null" json:"type"`
	Category            string          `gorm:"column:category;size:50;not null" json:"category"`
	Amount              decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	ExpectedDate        time.Time       `gorm:"column:expected_date;not null;index" json:"expectedDate"`
	Probability         int             `gorm:"column:probability;not null" json:"probability"`
	Confidence          Confidence      `gorm:"column:confidence;size:10;not null" json:"confidence"`
	State               FlowState       `gorm:"column:state;size:10;not null;default:FORECAST" json:"state"`
	Description         string          `gorm:"column:description;size:255" json:"description"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (TreasuryFlow) TableName() string {
	return "treasury_flows"
}
