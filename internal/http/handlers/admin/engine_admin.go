package admin

import (
	"github.com/pharmadirect/internal/http/response"
	"github.com/pharmadirect/internal/queue"

	"github.com/gin-gonic/gin"
)

// RunDiscountEngine 手动触发折扣引擎
// async=true 且队列可用时转入异步执行，否则同步执行并返回汇总。
func (h *Handler) RunDiscountEngine(c *gin.Context) {
	if c.Query("async") == "true" && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueDiscountEngineRun(queue.DiscountEngineRunPayload{Trigger: "admin"}); err != nil {
			respondError(c, response.CodeInternal, "discount engine enqueue failed", err)
			return
		}
		requestLog(c).Infow("discount_engine_enqueued", "trigger", "admin")
		response.Success(c, gin.H{"queued": true})
		return
	}

	summary, err := h.DiscountEngineService.Run()
	if err != nil {
		respondError(c, response.CodeInternal, "discount engine run failed", err)
		return
	}
	response.Success(c, summary)
}

// ClearExpiredCampaigns 手动清理过期活动价
func (h *Handler) ClearExpiredCampaigns(c *gin.Context) {
	cleared, err := h.DiscountEngineService.ClearExpired()
	if err != nil {
		respondError(c, response.CodeInternal, "clear expired campaigns failed", err)
		return
	}
	requestLog(c).Infow("discount_engine_clear_expired", "cleared", cleared)
	response.Success(c, gin.H{"cleared": cleared})
}
