package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/models"
)

func TestClassify(t *testing.T) {
	policy := config.DefaultPolicy()

	cases := []struct {
		name    string
		amount  string
		urgency models.Urgency
		want    models.ApprovalMode
	}{
		{"small normal", "500", models.UrgencyNormal, models.ApprovalAutomatic},
		{"at auto threshold", "1000", models.UrgencyLow, models.ApprovalAutomatic},
		{"just above auto threshold", "1000.01", models.UrgencyNormal, models.ApprovalManual},
		{"small urgent", "500", models.UrgencyUrgent, models.ApprovalManual},
		{"mid high", "5000", models.UrgencyHigh, models.ApprovalManual},
		{"at committee threshold", "10000", models.UrgencyNormal, models.ApprovalManual},
		{"above committee threshold", "10000.01", models.UrgencyNormal, models.ApprovalCommittee},
		{"large urgent", "12000", models.UrgencyUrgent, models.ApprovalCommittee},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(policy, decimal.RequireFromString(tc.amount), tc.urgency)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyUrgentRequiresCommittee(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.UrgentRequiresCommittee = true

	assert.Equal(t, models.ApprovalCommittee, Classify(policy, decimal.NewFromInt(500), models.UrgencyUrgent))
	assert.Equal(t, models.ApprovalAutomatic, Classify(policy, decimal.NewFromInt(500), models.UrgencyHigh))
	assert.Equal(t, models.ApprovalManual, Classify(policy, decimal.NewFromInt(5000), models.UrgencyHigh))
}

func TestClassifyCustomThresholds(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.AutoApprovalThreshold = decimal.NewFromInt(200)
	policy.CommitteeThreshold = decimal.NewFromInt(2000)

	assert.Equal(t, models.ApprovalManual, Classify(policy, decimal.NewFromInt(500), models.UrgencyNormal))
	assert.Equal(t, models.ApprovalCommittee, Classify(policy, decimal.NewFromInt(2500), models.UrgencyNormal))
}

func TestComputeImpact(t *testing.T) {
	policy := config.DefaultPolicy()
	now := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	planned := now.AddDate(0, 0, 14)

	low := ComputeImpact(policy, decimal.NewFromInt(5000), &planned, now)
	assert.Equal(t, models.RiskLow, low.RiskLevel)
	assert.True(t, low.EstimatedImpact.Equal(decimal.NewFromInt(-5000)))
	assert.Equal(t, models.FlowCategoryDepositWithdrawal, low.Category)
	assert.Equal(t, &planned, low.PlannedDate)
	assert.Equal(t, now, low.ComputedAt)

	high := ComputeImpact(policy, decimal.RequireFromString("5000.01"), nil, now)
	assert.Equal(t, models.RiskHigh, high.RiskLevel)
	assert.Nil(t, high.PlannedDate)
}
