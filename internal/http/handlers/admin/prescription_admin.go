package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pharmadirect/internal/http/response"
	"github.com/pharmadirect/internal/repository"
	"github.com/pharmadirect/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewPrescriptionRequest 审核处方单请求
type ReviewPrescriptionRequest struct {
	Status     string `json:"status" binding:"required"`
	ReviewNote string `json:"review_note"`
}

// ReviewPrescription 审核处方单
func (h *Handler) ReviewPrescription(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	prescriptionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || prescriptionID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	var req ReviewPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	prescription, err := h.PrescriptionService.Review(uint(prescriptionID), adminID, req.Status, req.ReviewNote)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrescriptionNotFound):
			respondError(c, response.CodeNotFound, "prescription not found", nil)
		case errors.Is(err, service.ErrPrescriptionInvalid):
			respondError(c, response.CodeBadRequest, "prescription invalid", nil)
		case errors.Is(err, service.ErrPrescriptionReviewed):
			respondError(c, response.CodeBadRequest, "prescription already reviewed", nil)
		default:
			respondError(c, response.CodeInternal, "prescription review failed", err)
		}
		return
	}

	requestLog(c).Infow("prescription_reviewed",
		"prescription_id", prescription.ID,
		"admin_id", adminID,
		"status", prescription.Status,
	)
	response.Success(c, prescription)
}

// GetAdminPrescription 获取处方单详情（管理端）
func (h *Handler) GetAdminPrescription(c *gin.Context) {
	prescriptionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || prescriptionID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	prescription, err := h.PrescriptionService.GetByID(uint(prescriptionID))
	if err != nil {
		if errors.Is(err, service.ErrPrescriptionNotFound) {
			respondError(c, response.CodeNotFound, "prescription not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "prescription fetch failed", err)
		return
	}
	response.Success(c, prescription)
}

// GetAdminPrescriptions 获取处方单列表（管理端）
func (h *Handler) GetAdminPrescriptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	prescriptions, total, err := h.PrescriptionService.List(repository.PrescriptionListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uint(userID),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "prescription fetch failed", err)
		return
	}
	response.SuccessWithPage(c, prescriptions, response.BuildPagination(page, pageSize, total))
}
