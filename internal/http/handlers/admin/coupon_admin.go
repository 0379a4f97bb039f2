package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pharmadirect/internal/http/response"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"
	"github.com/pharmadirect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest 创建/更新优惠码请求
type CouponRequest struct {
	Code          string  `json:"code" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Value         float64 `json:"value" binding:"required"`
	MinCartAmount float64 `json:"min_cart_amount"`
	MaxDiscount   float64 `json:"max_discount"`
	UsageLimit    int     `json:"usage_limit"`
	PerUserLimit  int     `json:"per_user_limit"`
	StartsAt      string  `json:"starts_at"`
	EndsAt        string  `json:"ends_at"`
	IsActive      *bool   `json:"is_active"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	startsAt, err := parseTimeNullable(r.StartsAt)
	if err != nil {
		return service.CouponInput{}, err
	}
	endsAt, err := parseTimeNullable(r.EndsAt)
	if err != nil {
		return service.CouponInput{}, err
	}
	return service.CouponInput{
		Code:          r.Code,
		Type:          r.Type,
		Value:         models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Value)),
		MinCartAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinCartAmount)),
		MaxDiscount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MaxDiscount)),
		UsageLimit:    r.UsageLimit,
		PerUserLimit:  r.PerUserLimit,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		IsActive:      r.IsActive,
	}, nil
}

// CreateCoupon 创建优惠码
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "coupon invalid", nil)
		case errors.Is(err, service.ErrCouponCodeTaken):
			respondError(c, response.CodeBadRequest, "coupon code already in use", nil)
		default:
			respondError(c, response.CodeInternal, "coupon create failed", err)
		}
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠码
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(uint(couponID), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "coupon not found", nil)
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "coupon invalid", nil)
		case errors.Is(err, service.ErrCouponCodeTaken):
			respondError(c, response.CodeBadRequest, "coupon code already in use", nil)
		default:
			respondError(c, response.CodeInternal, "coupon update failed", err)
		}
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠码
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.CouponAdminService.Delete(uint(couponID)); err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "coupon not found", nil)
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "coupon invalid", nil)
		default:
			respondError(c, response.CodeInternal, "coupon delete failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetCoupon 获取优惠码详情
func (h *Handler) GetCoupon(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	coupon, err := h.CouponAdminService.GetByID(uint(couponID))
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			respondError(c, response.CodeNotFound, "coupon not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "coupon fetch failed", err)
		return
	}
	response.Success(c, coupon)
}

// GetCoupons 获取优惠码列表
func (h *Handler) GetCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	}
	if rawActive := strings.TrimSpace(c.Query("is_active")); rawActive != "" {
		active := rawActive == "true" || rawActive == "1"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "coupon fetch failed", err)
		return
	}
	response.SuccessWithPage(c, coupons, response.BuildPagination(page, pageSize, total))
}

// GetCouponUsages 获取优惠码使用记录
func (h *Handler) GetCouponUsages(c *gin.Context) {
	couponID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || couponID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	usages, total, err := h.CouponAdminService.ListUsages(repository.CouponUsageListFilter{
		Page:     page,
		PageSize: pageSize,
		CouponID: uint(couponID),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "coupon usage fetch failed", err)
		return
	}
	response.SuccessWithPage(c, usages, response.BuildPagination(page, pageSize, total))
}
