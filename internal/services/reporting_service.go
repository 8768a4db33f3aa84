package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"withdrawal-service/internal/models"
)

type ReportingService struct {
	DB *gorm.DB
}

func NewReportingService(db *gorm.DB) *ReportingService {
	return &ReportingService{DB: db}
}

// DateRange bounds request_date; a nil end is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

type ImpactBucket struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type TreasuryImpactSummary struct {
	Total     ImpactBucket                             `json:"total"`
	ByStatus  map[models.WithdrawalStatus]ImpactBucket `json:"byStatus"`
	ByUrgency map[models.Urgency]ImpactBucket          `json:"byUrgency"`
	From      *time.Time                               `json:"from,omitempty"`
	To        *time.Time                               `json:"to,omitempty"`
}

// GetTreasuryImpact aggregates withdrawal demand over the range. Rejected
// requests never leave the treasury, so they are reported per status only.
func (s *ReportingService) GetTreasuryImpact(ctx context.Context, r DateRange) (TreasuryImpactSummary, error) {
	summary := TreasuryImpactSummary{
		ByStatus:  map[models.WithdrawalStatus]ImpactBucket{},
		ByUrgency: map[models.Urgency]ImpactBucket{},
		From:      r.From,
		To:        r.To,
	}

	base := func() *gorm.DB {
		q := s.DB.WithContext(ctx).Model(&models.WithdrawalRequest{})
		if r.From != nil {
			q = q.Where("request_date >= ?", *r.From)
		}
		if r.To != nil {
			q = q.Where("request_date <= ?", *r.To)
		}
		return q
	}

	var statusRows []struct {
		Status models.WithdrawalStatus
		Count  int64
		Amount decimal.Decimal
	}
	err := base().
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Scan(&statusRows).Error
	if err != nil {
		return summary, fmt.Errorf("failed to aggregate by status: %w", err)
	}
	for _, row := range statusRows {
		summary.ByStatus[row.Status] = ImpactBucket{Count: row.Count, Amount: row.Amount}
	}

	var urgencyRows []struct {
		Urgency models.Urgency
		Count   int64
		Amount  decimal.Decimal
	}
	err = base().
		Select("urgency, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("status <> ?", models.StatusRejected).
		Group("urgency").
		Scan(&urgencyRows).Error
	if err != nil {
		return summary, fmt.Errorf("failed to aggregate by urgency: %w", err)
	}

	total := ImpactBucket{Amount: decimal.Zero}
	for _, row := range urgencyRows {
		summary.ByUrgency[row.Urgency] = ImpactBucket{Count: row.Count, Amount: row.Amount}
		total.Count += row.Count
		total.Amount = total.Amount.Add(row.Amount)
	}
	summary.Total = total

	return summary, nil
}
