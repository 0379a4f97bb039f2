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

// BannerRequest 创建/更新轮播图请求
type BannerRequest struct {
	Name        string `json:"name" binding:"required"`
	Position    string `json:"position"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Image       string `json:"image" binding:"required"`
	MobileImage string `json:"mobile_image"`
	LinkURL     string `json:"link_url"`
	IsActive    *bool  `json:"is_active"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	SortOrder   int    `json:"sort_order"`
}

func (r BannerRequest) toInput() (service.BannerInput, error) {
	startAt, err := parseTimeNullable(r.StartAt)
	if err != nil {
		return service.BannerInput{}, err
	}
	endAt, err := parseTimeNullable(r.EndAt)
	if err != nil {
		return service.BannerInput{}, err
	}
	return service.BannerInput{
		Name:        r.Name,
		Position:    r.Position,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Image:       r.Image,
		MobileImage: r.MobileImage,
		LinkURL:     r.LinkURL,
		IsActive:    r.IsActive,
		StartAt:     startAt,
		EndAt:       endAt,
		SortOrder:   r.SortOrder,
	}, nil
}

func respondBannerError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBannerNotFound):
		respondError(c, response.CodeNotFound, "banner not found", nil)
	case errors.Is(err, service.ErrBannerInvalid):
		respondError(c, response.CodeBadRequest, "banner invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// CreateBanner 创建轮播图
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	banner, err := h.BannerService.Create(input)
	if err != nil {
		respondBannerError(c, err, "banner create failed")
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新轮播图
func (h *Handler) UpdateBanner(c *gin.Context) {
	bannerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bannerID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	banner, err := h.BannerService.Update(uint(bannerID), input)
	if err != nil {
		respondBannerError(c, err, "banner update failed")
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除轮播图
func (h *Handler) DeleteBanner(c *gin.Context) {
	bannerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bannerID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.BannerService.Delete(uint(bannerID)); err != nil {
		respondBannerError(c, err, "banner delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminBanners 获取轮播图列表（管理端）
func (h *Handler) GetAdminBanners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.BannerListFilter{
		Page:     page,
		PageSize: pageSize,
		Position: strings.TrimSpace(c.Query("position")),
	}
	if rawActive := strings.TrimSpace(c.Query("is_active")); rawActive != "" {
		active := rawActive == "true" || rawActive == "1"
		filter.IsActive = &active
	}

	banners, total, err := h.BannerService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "banner fetch failed", err)
		return
	}
	response.SuccessWithPage(c, banners, response.BuildPagination(page, pageSize, total))
}
