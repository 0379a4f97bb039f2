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

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	CategoryID           uint     `json:"category_id"`
	BrandName            string   `json:"brand_name"`
	Slug                 string   `json:"slug" binding:"required"`
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	Images               []string `json:"images"`
	SellingPrice         float64  `json:"selling_price" binding:"required"`
	MRP                  float64  `json:"mrp"`
	Stock                int      `json:"stock"`
	RequiresPrescription bool     `json:"requires_prescription"`
	IsActive             *bool    `json:"is_active"`
	SortOrder            int      `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:           r.CategoryID,
		BrandName:            r.BrandName,
		Slug:                 r.Slug,
		Name:                 r.Name,
		Description:          r.Description,
		Images:               r.Images,
		SellingPrice:         models.NewMoneyFromDecimal(decimal.NewFromFloat(r.SellingPrice)),
		MRP:                  models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MRP)),
		Stock:                r.Stock,
		RequiresPrescription: r.RequiresPrescription,
		IsActive:             r.IsActive,
		SortOrder:            r.SortOrder,
	}
}

func respondProductError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "product invalid", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "slug already in use", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err, "product create failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.Update(uint(productID), req.toInput())
	if err != nil {
		respondProductError(c, err, "product update failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.ProductService.Delete(uint(productID)); err != nil {
		respondProductError(c, err, "product delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminProduct 获取商品详情（管理端）
func (h *Handler) GetAdminProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.GetByID(uint(productID))
	if err != nil {
		respondProductError(c, err, "product fetch failed")
		return
	}
	response.Success(c, product)
}

// GetAdminProducts 获取商品列表（管理端）
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		BrandName:    strings.TrimSpace(c.Query("brand_name")),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}
