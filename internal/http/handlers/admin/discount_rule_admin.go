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

// DiscountRuleRequest 创建/更新折扣规则请求
type DiscountRuleRequest struct {
	Name          string  `json:"name" binding:"required"`
	RuleType      string  `json:"rule_type" binding:"required"`
	TargetValue   string  `json:"target_value"`
	DiscountType  string  `json:"discount_type" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	MinCartAmount float64 `json:"min_cart_amount"`
	StartsAt      string  `json:"starts_at" binding:"required"`
	EndsAt        string  `json:"ends_at" binding:"required"`
	Priority      int     `json:"priority"`
	IsActive      *bool   `json:"is_active"`
	Description   string  `json:"description"`
}

func (r DiscountRuleRequest) toInput() (service.DiscountRuleInput, error) {
	startsAt, err := parseTimeNullable(r.StartsAt)
	if err != nil {
		return service.DiscountRuleInput{}, err
	}
	endsAt, err := parseTimeNullable(r.EndsAt)
	if err != nil {
		return service.DiscountRuleInput{}, err
	}
	return service.DiscountRuleInput{
		Name:          r.Name,
		RuleType:      r.RuleType,
		TargetValue:   r.TargetValue,
		DiscountType:  r.DiscountType,
		Amount:        models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Amount)),
		MinCartAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinCartAmount)),
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		Priority:      r.Priority,
		IsActive:      r.IsActive,
		Description:   r.Description,
	}, nil
}

// CreateDiscountRule 创建折扣规则
func (h *Handler) CreateDiscountRule(c *gin.Context) {
	var req DiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	rule, err := h.DiscountRuleAdminService.Create(input)
	if err != nil {
		if errors.Is(err, service.ErrRuleInvalid) {
			respondError(c, response.CodeBadRequest, "discount rule invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "discount rule create failed", err)
		return
	}
	response.Success(c, rule)
}

// UpdateDiscountRule 更新折扣规则
func (h *Handler) UpdateDiscountRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	var req DiscountRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	rule, err := h.DiscountRuleAdminService.Update(uint(ruleID), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRuleNotFound):
			respondError(c, response.CodeNotFound, "discount rule not found", nil)
		case errors.Is(err, service.ErrRuleInvalid):
			respondError(c, response.CodeBadRequest, "discount rule invalid", nil)
		default:
			respondError(c, response.CodeInternal, "discount rule update failed", err)
		}
		return
	}
	response.Success(c, rule)
}

// DeleteDiscountRule 删除折扣规则
func (h *Handler) DeleteDiscountRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.DiscountRuleAdminService.Delete(uint(ruleID)); err != nil {
		switch {
		case errors.Is(err, service.ErrRuleNotFound):
			respondError(c, response.CodeNotFound, "discount rule not found", nil)
		case errors.Is(err, service.ErrRuleInvalid):
			respondError(c, response.CodeBadRequest, "discount rule invalid", nil)
		default:
			respondError(c, response.CodeInternal, "discount rule delete failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetDiscountRule 获取折扣规则详情
func (h *Handler) GetDiscountRule(c *gin.Context) {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	rule, err := h.DiscountRuleAdminService.GetByID(uint(ruleID))
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			respondError(c, response.CodeNotFound, "discount rule not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "discount rule fetch failed", err)
		return
	}
	response.Success(c, rule)
}

// GetDiscountRules 获取折扣规则列表
func (h *Handler) GetDiscountRules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.DiscountRuleListFilter{
		Page:     page,
		PageSize: pageSize,
		RuleType: strings.TrimSpace(c.Query("rule_type")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if rawActive := strings.TrimSpace(c.Query("is_active")); rawActive != "" {
		active := rawActive == "true" || rawActive == "1"
		filter.IsActive = &active
	}

	rules, total, err := h.DiscountRuleAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "discount rule fetch failed", err)
		return
	}
	response.SuccessWithPage(c, rules, response.BuildPagination(page, pageSize, total))
}
