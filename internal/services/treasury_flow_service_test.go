package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/models"
)

func TestProjectionByStatus(t *testing.T) {
	flows := NewTreasuryFlowService(nil, config.DefaultPolicy(), nil)

	cases := []struct {
		status      models.WithdrawalStatus
		probability int
		state       models.FlowState
		confidence  models.Confidence
	}{
		{models.StatusPending, 70, models.FlowForecast, models.ConfidenceMedium},
		{models.StatusUnderReview, 70, models.FlowForecast, models.ConfidenceMedium},
		{models.StatusApproved, 95, models.FlowForecast, models.ConfidenceHigh},
		{models.StatusProcessing, 100, models.FlowRealized, models.ConfidenceHigh},
		{models.StatusCompleted, 100, models.FlowRealized, models.ConfidenceHigh},
		{models.StatusRejected, 0, models.FlowCancelled, models.ConfidenceLow},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			flow := flows.Project(&models.WithdrawalRequest{
				ID:            "w-1",
				RequestNumber: "WR-2026-000001",
				Amount:        decimal.NewFromInt(100),
				Status:        tc.status,
			})
			assert.Equal(t, tc.probability, flow.Probability)
			assert.Equal(t, tc.state, flow.State)
			assert.Equal(t, tc.confidence, flow.Confidence)
			assert.Equal(t, "Withdrawal WR-2026-000001", flow.Description)
		})
	}
}

func TestResyncFollowsStatus(t *testing.T) {
	f := newFixture(t)
	deposit := f.seedDeposit(t, depositorID, 9000)
	req := f.create(t, deposit, 4000, models.UrgencyNormal)

	_, err := f.svc.ApproveWithdrawal(f.ctx, ApproveWithdrawalDTO{ID: req.ID, ApproverID: treasurerID})
	require.NoError(t, err)

	// The recording syncer does not touch the flow.
	assert.Equal(t, 70, f.flowsOf(t, req.ID)[0].Probability)

	require.NoError(t, f.flows.Resync(f.ctx, req.ID))
	flow := f.flowsOf(t, req.ID)[0]
	assert.Equal(t, 95, flow.Probability)
	assert.Equal(t, models.FlowForecast, flow.State)

	_, err = f.svc.ExecuteWithdrawal(f.ctx, req.ID, treasurerID)
	require.NoError(t, err)
	require.NoError(t, f.flows.Resync(f.ctx, req.ID))
	flow = f.flowsOf(t, req.ID)[0]
	assert.Equal(t, 100, flow.Probability)
	assert.Equal(t, models.FlowRealized, flow.State)

	// Resync is idempotent and tolerates a vanished request.
	require.NoError(t, f.flows.Resync(f.ctx, req.ID))
	require.NoError(t, f.flows.Resync(f.ctx, "gone"))
}

func TestReconcileRepairsStaleForecasts(t *testing.T) {
	f := newFixture(t)
	deposit := f.seedDeposit(t, depositorID, 50000)

	rejected := f.create(t, deposit, 4000, models.UrgencyNormal)
	approved := f.create(t, deposit, 5000, models.UrgencyNormal)
	untouched := f.create(t, deposit, 6000, models.UrgencyNormal)

	_, err := f.svc.RejectWithdrawal(f.ctx, rejected.ID, treasurerID, "insufficient documentation")
	require.NoError(t, err)
	_, err = f.svc.ApproveWithdrawal(f.ctx, ApproveWithdrawalDTO{ID: approved.ID, ApproverID: treasurerID})
	require.NoError(t, err)

	n, err := f.flows.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, models.FlowCancelled, f.flowsOf(t, rejected.ID)[0].State)
	assert.Equal(t, 0, f.flowsOf(t, rejected.ID)[0].Probability)
	assert.Equal(t, 95, f.flowsOf(t, approved.ID)[0].Probability)
	assert.Equal(t, 70, f.flowsOf(t, untouched.ID)[0].Probability)

	n, err = f.flows.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReconcileRepairsEditedRequests(t *testing.T) {
	f := newFixture(t)
	deposit := f.seedDeposit(t, depositorID, 50000)
	req := f.create(t, deposit, 4000, models.UrgencyNormal)
	f.syncer.err = errors.New("redis unavailable")

	amount := decimal.NewFromInt(6000)
	planned := f.now.AddDate(0, 0, 14)
	_, err := f.svc.UpdateWithdrawal(f.ctx, req.ID, UpdateWithdrawalDTO{Amount: &amount, PlannedDate: &planned}, depositorID)
	require.NoError(t, err)

	// Status is still PENDING, only the money and the date moved.
	flow := f.flowsOf(t, req.ID)[0]
	assert.True(t, flow.Amount.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, 70, flow.Probability)

	n, err := f.flows.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	flow = f.flowsOf(t, req.ID)[0]
	assert.True(t, flow.Amount.Equal(amount), flow.Amount.String())
	assert.True(t, flow.ExpectedDate.Equal(planned))
	assert.Equal(t, models.FlowForecast, flow.State)

	n, err = f.flows.Reconcile(f.ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestForecastWindow(t *testing.T) {
	f := newFixture(t)
	deposit := f.seedDeposit(t, depositorID, 50000)

	soon := f.now.AddDate(0, 0, 5)
	later := f.now.AddDate(0, 2, 0)
	for _, planned := range []*time.Time{&soon, &later} {
		_, err := f.svc.CreateWithdrawal(f.ctx, CreateWithdrawalDTO{
			DepositID:   deposit.ID,
			RequesterID: depositorID,
			Amount:      decimal.NewFromInt(2000),
			Reason:      "planned renovation payment",
			PlannedDate: planned,
		})
		require.NoError(t, err)
	}

	flows, err := f.flows.Forecast(f.ctx, f.now, f.now.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.True(t, flows[0].ExpectedDate.Equal(soon))
}
