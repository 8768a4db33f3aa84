package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"withdrawal-service/internal/consumers"
	"withdrawal-service/internal/logger"
)

type Worker struct {
	Processor *consumers.FlowProcessor
}

func NewWorker(processor *consumers.FlowProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleTreasuryFlowSync(ctx context.Context, t *asynq.Task) error {
	var p consumers.FlowSyncDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	if p.WithdrawalID == "" {
		return fmt.Errorf("%v: %w", consumers.ErrMissingWithdrawalID, asynq.SkipRetry)
	}
	return w.Processor.ProcessFlowSync(ctx, p)
}

// NewServeMux routes every task type this service consumes.
func NewServeMux(w *Worker) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTreasuryFlowSync, w.HandleTreasuryFlowSync)
	return mux
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.FlowProcessor, log *zap.Logger) error {
	log = logger.OrNop(log)
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: log.Sugar(),
		},
	)

	log.Info("starting asynq worker", zap.String("redis", redisOpt.Addr))
	if err := srv.Run(NewServeMux(NewWorker(processor))); err != nil {
		return fmt.Errorf("could not run worker: %w", err)
	}
	return nil
}
