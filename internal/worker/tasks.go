package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"withdrawal-service/internal/consumers"
	"withdrawal-service/internal/services"
)

// Task Types
const (
	TypeTreasuryFlowSync = "treasury-flow-sync"
)

const (
	flowSyncMaxRetry = 5
	flowSyncTimeout  = 30 * time.Second
)

func NewTreasuryFlowSyncTask(payload consumers.FlowSyncDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTreasuryFlowSync, data,
		asynq.MaxRetry(flowSyncMaxRetry),
		asynq.Timeout(flowSyncTimeout),
	), nil
}

// Enqueuer hands flow syncs to the asynq queue.
type Enqueuer struct {
	Client *asynq.Client
}

var _ services.FlowSyncer = (*Enqueuer)(nil)

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{Client: client}
}

func (e *Enqueuer) EnqueueFlowSync(ctx context.Context, withdrawalID string) error {
	task, err := NewTreasuryFlowSyncTask(consumers.FlowSyncDTO{WithdrawalID: withdrawalID})
	if err != nil {
		return fmt.Errorf("build flow sync task: %w", err)
	}
	if _, err := e.Client.EnqueueContext(ctx, task, asynq.Queue("default")); err != nil {
		return fmt.Errorf("enqueue flow sync task: %w", err)
	}
	return nil
}
