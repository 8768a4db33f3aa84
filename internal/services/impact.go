package services

import (
	"time"

	"github.com/shopspring/decimal"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/models"
)

func ComputeImpact(policy config.Policy, amount decimal.Decimal, plannedDate *time.Time, now time.Time) models.ImpactSnapshot {
	risk := models.RiskLow
	if amount.GreaterThan(policy.RiskThreshold) {
		risk = models.RiskHigh
	}

	return models.ImpactSnapshot{
		Amount:          amount,
		PlannedDate:     plannedDate,
		Category:        models.FlowCategoryDepositWithdrawal,
		EstimatedImpact: amount.Neg(),
		RiskLevel:       risk,
		ComputedAt:      now,
	}
}
