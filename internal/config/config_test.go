package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.True(t, cfg.Policy.AutoApprovalThreshold.Equal(decimal.NewFromInt(1000)))
	assert.True(t, cfg.Policy.CommitteeThreshold.Equal(decimal.NewFromInt(10000)))
	assert.True(t, cfg.Policy.RiskThreshold.Equal(decimal.NewFromInt(5000)))
	assert.False(t, cfg.Policy.UrgentRequiresCommittee)
	assert.Equal(t, 95, cfg.Policy.ApprovedFlowProbability)
	assert.Equal(t, 70, cfg.Policy.PendingFlowProbability)
}

func TestLoadPolicyOverrides(t *testing.T) {
	t.Setenv("AUTO_APPROVAL_THRESHOLD", "250.50")
	t.Setenv("COMMITTEE_THRESHOLD", "2500")
	t.Setenv("URGENT_REQUIRES_COMMITTEE", "true")
	t.Setenv("PENDING_FLOW_PROBABILITY", "60")

	p := Load().Policy

	assert.True(t, p.AutoApprovalThreshold.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, p.CommitteeThreshold.Equal(decimal.NewFromInt(2500)))
	assert.True(t, p.UrgentRequiresCommittee)
	assert.Equal(t, 60, p.PendingFlowProbability)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("RISK_THRESHOLD", "lots")
	t.Setenv("APPROVED_FLOW_PROBABILITY", "150")
	t.Setenv("URGENT_REQUIRES_COMMITTEE", "maybe")

	p := Load().Policy

	assert.True(t, p.RiskThreshold.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 95, p.ApprovedFlowProbability)
	assert.False(t, p.UrgentRequiresCommittee)
}
