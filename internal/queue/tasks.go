package queue

import (
	"encoding/json"

	"github.com/pharmadirect/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskDiscountEngineRun 折扣引擎批处理任务
	TaskDiscountEngineRun = constants.TaskDiscountEngineRun
)

// DiscountEngineRunPayload 折扣引擎任务载荷
type DiscountEngineRunPayload struct {
	Trigger string `json:"trigger"` // 触发来源（admin/cron/schedule）
}

// NewDiscountEngineRunTask 创建折扣引擎任务
func NewDiscountEngineRunTask(payload DiscountEngineRunPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDiscountEngineRun, body), nil
}
