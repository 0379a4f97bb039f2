package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pharmadirect/internal/http/response"
	"github.com/pharmadirect/internal/repository"
	"github.com/pharmadirect/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitPrescriptionRequest 提交处方单请求
type SubmitPrescriptionRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
	Note     string `json:"note"`
}

// SubmitPrescription 用户提交处方单
func (h *Handler) SubmitPrescription(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req SubmitPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	prescription, err := h.PrescriptionService.Submit(userID, req.ImageURL, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrPrescriptionInvalid) {
			respondError(c, response.CodeBadRequest, "prescription invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "prescription submit failed", err)
		return
	}

	requestLog(c).Infow("prescription_submitted", "prescription_id", prescription.ID, "user_id", userID)
	response.Success(c, prescription)
}

// GetMyPrescriptions 获取当前用户的处方单列表
func (h *Handler) GetMyPrescriptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	prescriptions, total, err := h.PrescriptionService.List(repository.PrescriptionListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "prescription fetch failed", err)
		return
	}
	response.SuccessWithPage(c, prescriptions, response.BuildPagination(page, pageSize, total))
}

// GetMyPrescription 获取当前用户的处方单详情
func (h *Handler) GetMyPrescription(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	prescriptionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || prescriptionID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	prescription, err := h.PrescriptionService.GetForUser(uint(prescriptionID), userID)
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
