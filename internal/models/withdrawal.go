package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type WithdrawalStatus string

const (
	StatusPending     WithdrawalStatus = "PENDING"
	StatusUnderReview WithdrawalStatus = "UNDER_REVIEW"
	StatusApproved    WithdrawalStatus = "APPROVED"
	StatusRejected    WithdrawalStatus = "REJECTED"
	StatusProcessing  WithdrawalStatus = "PROCESSING"
	StatusCompleted   WithdrawalStatus = "COMPLETED"
)

// Terminal reports whether no approve/reject/execute can follow.
func (s WithdrawalStatus) Terminal() bool {
	return s == StatusRejected || s == StatusProcessing || s == StatusCompleted
}

type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyNormal Urgency = "NORMAL"
	UrgencyHigh   Urgency = "HIGH"
	UrgencyUrgent Urgency = "URGENT"
)

type ApprovalMode string

const (
	ApprovalAutomatic ApprovalMode = "AUTOMATIC"
	ApprovalManual    ApprovalMode = "MANUAL"
	ApprovalCommittee ApprovalMode = "COMMITTEE"
)

type RiskLevel string

const (
	RiskLow  RiskLevel = "LOW"
	RiskHigh RiskLevel = "HIGH"
)

// ImpactSnapshot is the treasury impact computed when a request was created.
// It is not refreshed on its own.
type ImpactSnapshot struct {
	Amount          decimal.Decimal `json:"amount"`
	PlannedDate     *time.Time      `json:"plannedDate,omitempty"`
	Category        string          `json:"category"`
	EstimatedImpact decimal.Decimal `json:"estimatedImpact"`
	RiskLevel       RiskLevel       `json:"riskLevel"`
	ComputedAt      time.Time       `json:"computedAt"`
}

type WithdrawalRequest struct {
	ID             string          `gorm:"primaryKey;type:char(36)" json:"id"`
	RequestNumber  string          `gorm:"column:request_number;size:20;not null;uniqueIndex" json:"requestNumber"`
	DepositID      uint            `gorm:"column:deposit_id;not null;index:idx_withdrawal_deposit" json:"depositId"`
	DepositorID    uint            `gorm:"column:depositor_id;not null;index:idx_withdrawal_depositor;uniqueIndex:idx_withdrawal_idempotency" json:"depositorId"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Urgency        Urgency         `gorm:"column:urgency;size:10;not null;default:NORMAL" json:"urgency"`
	ReasonCategory string          `gorm:"column:reason_category;size:50" json:"reasonCategory"`
	Reason         string          `gorm:"column:reason;type:text;not null" json:"reason"`

	ApprovalMode     ApprovalMode `gorm:"column:approval_mode;size:10;not null" json:"approvalMode"`
	RequiresApproval bool         `gorm:"column:requires_approval;not null" json:"requiresApproval"`
	AutoApproved     bool         `gorm:"column:auto_approved;not null;default:false" json:"autoApproved"`

	Status           WithdrawalStatus `gorm:"column:status;size:15;not null;index:idx_withdrawal_status" json:"status"`
	RequestDate      time.Time        `gorm:"column:request_date;not null;index:idx_withdrawal_request_date" json:"requestDate"`
	ReviewStartedAt  *time.Time       `gorm:"column:review_started_at" json:"reviewStartedAt,omitempty"`
	ReviewedBy       *uint            `gorm:"column:reviewed_by" json:"reviewedBy,omitempty"`
	ApprovalDate     *time.Time       `gorm:"column:approval_date" json:"approvalDate,omitempty"`
	ApprovedBy       *uint            `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	ApprovalComments string           `gorm:"column:approval_comments;type:text" json:"approvalComments,omitempty"`
	RejectionDate    *time.Time       `gorm:"column:rejection_date" json:"rejectionDate,omitempty"`
	RejectedBy       *uint            `gorm:"column:rejected_by" json:"rejectedBy,omitempty"`
	RejectionReason  string           `gorm:"column:rejection_reason;type:text" json:"rejectionReason,omitempty"`
	ProcessingDate   *time.Time       `gorm:"column:processing_date" json:"processingDate,omitempty"`
	ProcessedBy      *uint            `gorm:"column:processed_by" json:"processedBy,omitempty"`
	CompletionDate   *time.Time       `gorm:"column:completion_date" json:"completionDate,omitempty"`

	PaymentMethod string         `gorm:"column:payment_method;size:50" json:"paymentMethod,omitempty"`
	BankDetails   datatypes.JSON `gorm:"column:bank_details" json:"bankDetails,omitempty"`
	PlannedDate   *time.Time     `gorm:"column:planned_date" json:"plannedDate,omitempty"`
	Metadata      datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`

	TreasuryImpact datatypes.JSONType[ImpactSnapshot] `gorm:"column:treasury_impact" json:"treasuryImpact"`

	IdempotencyKey *string `gorm:"column:idempotency_key;size:100;uniqueIndex:idx_withdrawal_idempotency" json:"-"`
	Version        int     `gorm:"column:version;not null;default:1" json:"version"`

	TreasuryFlows []TreasuryFlow `gorm:"foreignKey:WithdrawalRequestID;constraint:OnDelete:CASCADE" json:"treasuryFlows,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

func (w *WithdrawalRequest) BeforeCreate(*gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
