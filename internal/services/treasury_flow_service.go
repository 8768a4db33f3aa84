package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"withdrawal-service/internal/config"
	"withdrawal-service/internal/logger"
	"withdrawal-service/internal/models"
)

// FlowSyncer schedules a re-projection of a withdrawal's treasury flows after
// its status changed.
type FlowSyncer interface {
	EnqueueFlowSync(ctx context.Context, withdrawalID string) error
}

type TreasuryFlowService struct {
	DB     *gorm.DB
	Policy config.Policy
	Logger *zap.Logger
}

func NewTreasuryFlowService(db *gorm.DB, policy config.Policy, log *zap.Logger) *TreasuryFlowService {
	return &TreasuryFlowService{DB: db, Policy: policy, Logger: logger.OrNop(log)}
}

// projection maps a request status to the flow's probability and state.
func (s *TreasuryFlowService) projection(status models.WithdrawalStatus) (int, models.FlowState) {
	switch status {
	case models.StatusApproved:
		return s.Policy.ApprovedFlowProbability, models.FlowForecast
	case models.StatusProcessing, models.StatusCompleted:
		return 100, models.FlowRealized
	case models.StatusRejected:
		return 0, models.FlowCancelled
	default:
		return s.Policy.PendingFlowProbability, models.FlowForecast
	}
}

func confidenceFor(probability int) models.Confidence {
	switch {
	case probability >= 90:
		return models.ConfidenceHigh
	case probability >= 50:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// Project builds the outflow forecast for a request in its current state.
func (s *TreasuryFlowService) Project(req *models.WithdrawalRequest) models.TreasuryFlow {
	probability, state := s.projection(req.Status)

	expected := req.RequestDate
	if req.PlannedDate != nil {
		expected = *req.PlannedDate
	}

	return models.TreasuryFlow{
		WithdrawalRequestID: req.ID,
		Type:                models.FlowOutflow,
		Category:            models.FlowCategoryDepositWithdrawal,
		Amount:              req.Amount,
		ExpectedDate:        expected,
		Probability:         probability,
		Confidence:          confidenceFor(probability),
		State:               state,
		Description:         fmt.Sprintf("Withdrawal %s", req.RequestNumber),
	}
}

// Record persists the projection of req inside tx.
func (s *TreasuryFlowService) Record(ctx context.Context, tx *gorm.DB, req *models.WithdrawalRequest) (*models.TreasuryFlow, error) {
	flow := s.Project(req)
	if err := tx.WithContext(ctx).Create(&flow).Error; err != nil {
		return nil, fmt.Errorf("failed to record treasury flow: %w", err)
	}
	return &flow, nil
}

// Resync re-projects every flow of a withdrawal from its current status.
// It is idempotent; a withdrawal that no longer exists is a no-op.
func (s *TreasuryFlowService) Resync(ctx context.Context, withdrawalID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req models.WithdrawalRequest
		err := tx.Select("id", "request_number", "status", "amount", "planned_date", "request_date").
			First(&req, "id = ?", withdrawalID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.Logger.Info("flow sync skipped, withdrawal gone", zap.String("withdrawal_id", withdrawalID))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load withdrawal %s: %w", withdrawalID, err)
		}

		want := s.Project(&req)
		res := tx.Model(&models.TreasuryFlow{}).
			Where("withdrawal_request_id = ?", req.ID).
			Updates(map[string]interface{}{
				"probability":   want.Probability,
				"state":         want.State,
				"confidence":    want.Confidence,
				"amount":        want.Amount,
				"expected_date": want.ExpectedDate,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to resync flows of %s: %w", req.RequestNumber, res.Error)
		}
		s.Logger.Debug("treasury flows resynced",
			zap.String("request_number", req.RequestNumber),
			zap.String("status", string(req.Status)),
			zap.Int("probability", want.Probability),
			zap.Int64("flows", res.RowsAffected))
		return nil
	})
}

// Reconcile finds forecast flows that no longer match their parent request
// and resyncs them. It backs up the asynchronous sync path when a task was
// lost, whether the status, amount or planned date moved on.
func (s *TreasuryFlowService) Reconcile(ctx context.Context) (int, error) {
	type row struct {
		WithdrawalRequestID string
		FlowAmount          decimal.Decimal
		ExpectedDate        time.Time
		Probability         int
		State               models.FlowState
		RequestNumber       string
		Status              models.WithdrawalStatus
		RequestAmount       decimal.Decimal
		PlannedDate         *time.Time
		RequestDate         time.Time
	}

	var rows []row
	err := s.DB.WithContext(ctx).
		Table("treasury_flows AS f").
		Select("f.withdrawal_request_id, f.amount AS flow_amount, f.expected_date, f.probability, f.state, " +
			"w.request_number, w.status, w.amount AS request_amount, w.planned_date, w.request_date").
		Joins("JOIN withdrawal_requests w ON w.id = f.withdrawal_request_id").
		Where("f.state = ?", models.FlowForecast).
		Scan(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("failed to scan forecast flows: %w", err)
	}

	stale := make(map[string]struct{})
	for _, r := range rows {
		want := s.Project(&models.WithdrawalRequest{
			ID:            r.WithdrawalRequestID,
			RequestNumber: r.RequestNumber,
			Status:        r.Status,
			Amount:        r.RequestAmount,
			PlannedDate:   r.PlannedDate,
			RequestDate:   r.RequestDate,
		})
		if want.Probability != r.Probability || want.State != r.State ||
			!want.Amount.Equal(r.FlowAmount) || !want.ExpectedDate.Equal(r.ExpectedDate) {
			stale[r.WithdrawalRequestID] = struct{}{}
		}
	}

	for id := range stale {
		if err := s.Resync(ctx, id); err != nil {
			return 0, err
		}
	}
	return len(stale), nil
}

// Forecast lists live forecast flows expected within [from, to].
func (s *TreasuryFlowService) Forecast(ctx context.Context, from, to time.Time) ([]models.TreasuryFlow, error) {
	var flows []models.TreasuryFlow
	err := s.DB.WithContext(ctx).
		Where("state = ? AND expected_date BETWEEN ? AND ?", models.FlowForecast, from, to).
		Order("expected_date ASC").
		Find(&flows).Error
	return flows, err
}

// StartScheduler runs Reconcile on the given cron schedule.
func (s *TreasuryFlowService) StartScheduler(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := s.Reconcile(context.Background())
		if err != nil {
			s.Logger.Error("flow reconciliation failed", zap.Error(err))
			return
		}
		if n > 0 {
			s.Logger.Info("flow reconciliation repaired stale forecasts", zap.Int("withdrawals", n))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule flow reconciliation: %w", err)
	}
	c.Start()
	s.Logger.Info("treasury flow reconciler started", zap.String("schedule", schedule))
	return c, nil
}
