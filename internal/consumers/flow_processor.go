package consumers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"withdrawal-service/internal/logger"
	"withdrawal-service/internal/services"
)

// FlowSyncDTO is the payload of a treasury flow sync task.
type FlowSyncDTO struct {
	WithdrawalID string `json:"withdrawalId"`
}

var ErrMissingWithdrawalID = errors.New("flow sync payload has no withdrawal id")

type FlowProcessor struct {
	Flows  *services.TreasuryFlowService
	Logger *zap.Logger
}

func NewFlowProcessor(flows *services.TreasuryFlowService, log *zap.Logger) *FlowProcessor {
	return &FlowProcessor{
		Flows:  flows,
		Logger: logger.OrNop(log),
	}
}

// ProcessFlowSync re-projects the flows of one withdrawal. Errors are
// returned so the queue retries the task.
func (p *FlowProcessor) ProcessFlowSync(ctx context.Context, data FlowSyncDTO) error {
	if data.WithdrawalID == "" {
		return ErrMissingWithdrawalID
	}
	if err := p.Flows.Resync(ctx, data.WithdrawalID); err != nil {
		p.Logger.Error("treasury flow sync failed",
			zap.String("withdrawal_id", data.WithdrawalID),
			zap.Error(err))
		return fmt.Errorf("sync flows of %s: %w", data.WithdrawalID, err)
	}
	return nil
}
