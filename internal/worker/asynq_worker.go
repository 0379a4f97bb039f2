package worker

import (
	"context"
	"encoding/json"

	"github.com/pharmadirect/internal/logger"
	"github.com/pharmadirect/internal/provider"
	"github.com/pharmadirect/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskDiscountEngineRun, c.handleDiscountEngineRun)
}

func (c *Consumer) handleDiscountEngineRun(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_discount_engine_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DiscountEngineRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_discount_engine_unmarshal_failed", "error", err)
		return err
	}
	if c.DiscountEngineService == nil {
		logger.Warnw("worker_discount_engine_skip_service_nil", "trigger", payload.Trigger)
		return nil
	}
	summary, err := c.DiscountEngineService.Run()
	if err != nil {
		logger.Warnw("worker_discount_engine_run_failed", "trigger", payload.Trigger, "error", err)
		return err
	}
	if len(summary.Errors) > 0 {
		logger.Warnw("worker_discount_engine_run_partial",
			"trigger", payload.Trigger,
			"rules_processed", summary.RulesProcessed,
			"products_updated", summary.ProductsUpdated,
			"errors", summary.Errors,
		)
	}
	return nil
}
