package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"withdrawal-service/internal/models"
)

func TestGetTreasuryImpact(t *testing.T) {
	f := newFixture(t)
	deposit := f.seedDeposit(t, depositorID, 100000)

	f.create(t, deposit, 800, models.UrgencyNormal)
	f.create(t, deposit, 4000, models.UrgencyHigh)
	f.create(t, deposit, 6000, models.UrgencyHigh)
	rejected := f.create(t, deposit, 12000, models.UrgencyUrgent)

	_, err := f.svc.RejectWithdrawal(f.ctx, rejected.ID, committeeID, "committee declined")
	require.NoError(t, err)

	summary, err := f.reports.GetTreasuryImpact(f.ctx, DateRange{})
	require.NoError(t, err)

	assert.EqualValues(t, 3, summary.Total.Count)
	assert.True(t, summary.Total.Amount.Equal(decimal.NewFromInt(10800)), summary.Total.Amount.String())

	assert.EqualValues(t, 1, summary.ByStatus[models.StatusApproved].Count)
	assert.EqualValues(t, 2, summary.ByStatus[models.StatusPending].Count)
	assert.True(t, summary.ByStatus[models.StatusPending].Amount.Equal(decimal.NewFromInt(10000)))
	assert.EqualValues(t, 1, summary.ByStatus[models.StatusRejected].Count)
	assert.True(t, summary.ByStatus[models.StatusRejected].Amount.Equal(decimal.NewFromInt(12000)))

	assert.EqualValues(t, 2, summary.ByUrgency[models.UrgencyHigh].Count)
	assert.True(t, summary.ByUrgency[models.UrgencyHigh].Amount.Equal(decimal.NewFromInt(10000)))
	_, hasUrgent := summary.ByUrgency[models.UrgencyUrgent]
	assert.False(t, hasUrgent)
}

func TestGetTreasuryImpactRange(t *testing.T) {
	f := newFixture(t)
	deposit := f.seedDeposit(t, depositorID, 100000)
	f.create(t, deposit, 800, models.UrgencyNormal)

	after := f.now.AddDate(0, 0, 1)
	summary, err := f.reports.GetTreasuryImpact(f.ctx, DateRange{From: &after})
	require.NoError(t, err)
	assert.Zero(t, summary.Total.Count)
	assert.True(t, summary.Total.Amount.IsZero())
	assert.Empty(t, summary.ByStatus)

	before := f.now.AddDate(0, 0, -1)
	summary, err = f.reports.GetTreasuryImpact(f.ctx, DateRange{From: &before, To: &after})
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.Total.Count)
}
