package public

import (
	"errors"
	"fmt"

	"github.com/pharmadirect/internal/http/response"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ApplyCouponRequest 优惠券试算请求
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
	// 指针区分缺省和合法的 0 金额
	CartTotal *float64 `json:"cart_total" binding:"required"`
	UserID    uint     `json:"user_id"`
}

// ApplyCoupon 校验优惠券并试算折扣，不落库
func (h *Handler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if *req.CartTotal < 0 {
		respondError(c, response.CodeBadRequest, "bad request", nil)
		return
	}

	// 登录用户以 token 身份为准，游客允许带 user_id 校验个人限额
	userID := req.UserID
	if value, exists := c.Get("user_id"); exists {
		if id, ok := value.(uint); ok {
			userID = id
		}
	}

	cartTotal := models.NewMoneyFromDecimal(decimal.NewFromFloat(*req.CartTotal))
	result, coupon, err := h.CouponService.Apply(req.Code, cartTotal, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeBadRequest, "Invalid coupon code", nil)
		case errors.Is(err, service.ErrCouponInactive):
			respondError(c, response.CodeBadRequest, "This coupon is no longer active", nil)
		case errors.Is(err, service.ErrCouponNotStarted):
			respondError(c, response.CodeBadRequest, "This coupon is not yet active", nil)
		case errors.Is(err, service.ErrCouponExpired):
			respondError(c, response.CodeBadRequest, "This coupon has expired", nil)
		case errors.Is(err, service.ErrCouponMinCart):
			respondError(c, response.CodeBadRequest,
				fmt.Sprintf("A minimum cart amount of %s is required to use this coupon", coupon.MinCartAmount.String()), nil)
		case errors.Is(err, service.ErrCouponUsageLimit):
			respondError(c, response.CodeBadRequest, "This coupon has reached its usage limit", nil)
		case errors.Is(err, service.ErrCouponPerUserLimit):
			respondError(c, response.CodeBadRequest, "You have used this coupon the maximum number of times", nil)
		default:
			respondError(c, response.CodeInternal, "coupon apply failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"valid":       true,
		"coupon":      result.Coupon,
		"discount":    result.DiscountAmount,
		"final_total": result.FinalAmount,
	})
}
