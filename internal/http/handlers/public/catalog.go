package public

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pharmadirect/internal/cache"
	"github.com/pharmadirect/internal/http/response"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"
	"github.com/pharmadirect/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	categoryCacheKey = "catalog:categories"
	bannerCacheKey   = "catalog:banners:"
	catalogCacheTTL  = 5 * time.Minute
)

// ProductView 前台商品视图，带计算后的当前售价
type ProductView struct {
	models.Product
	EffectivePrice models.Money `json:"effective_price"`
}

func (h *Handler) toProductViews(products []models.Product) []ProductView {
	now := h.ProductService.Now()
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, ProductView{
			Product:        products[i],
			EffectivePrice: products[i].EffectivePrice(now),
		})
	}
	return views
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	var cached []models.Category
	if ok, _ := cache.GetJSON(c.Request.Context(), categoryCacheKey, &cached); ok {
		response.Success(c, cached)
		return
	}

	categories, err := h.CategoryService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}
	_ = cache.SetJSON(c.Request.Context(), categoryCacheKey, categories, catalogCacheTTL)
	response.Success(c, categories)
}

// GetProducts 获取上架商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var categoryID uint
	if slug := strings.TrimSpace(c.Query("category")); slug != "" {
		category, err := h.CategoryService.GetBySlug(slug)
		if err != nil {
			if errors.Is(err, service.ErrCategoryNotFound) {
				respondError(c, response.CodeNotFound, "category not found", nil)
				return
			}
			respondError(c, response.CodeInternal, "category fetch failed", err)
			return
		}
		categoryID = category.ID
	}

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		BrandName:    strings.TrimSpace(c.Query("brand")),
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   true,
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.SuccessWithPage(c, h.toProductViews(products), response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取上架商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "bad request", nil)
		return
	}
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, ProductView{
		Product:        *product,
		EffectivePrice: product.EffectivePrice(h.ProductService.Now()),
	})
}

// GetBanners 获取当前有效的轮播图
func (h *Handler) GetBanners(c *gin.Context) {
	position := strings.TrimSpace(c.DefaultQuery("position", "home"))
	cacheKey := fmt.Sprintf("%s%s", bannerCacheKey, position)

	var cached []models.Banner
	if ok, _ := cache.GetJSON(c.Request.Context(), cacheKey, &cached); ok {
		response.Success(c, cached)
		return
	}

	banners, err := h.BannerService.ListValid(position)
	if err != nil {
		respondError(c, response.CodeInternal, "banner fetch failed", err)
		return
	}
	_ = cache.SetJSON(c.Request.Context(), cacheKey, banners, catalogCacheTTL)
	response.Success(c, banners)
}

// GetPosts 获取已发布内容页列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	posts, total, err := h.PostService.List(repository.PostListFilter{
		Page:          page,
		PageSize:      pageSize,
		Type:          strings.TrimSpace(c.Query("type")),
		OnlyPublished: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "post fetch failed", err)
		return
	}
	response.SuccessWithPage(c, posts, response.BuildPagination(page, pageSize, total))
}

// GetPost 获取已发布内容页详情
func (h *Handler) GetPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "bad request", nil)
		return
	}
	post, err := h.PostService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, response.CodeNotFound, "post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "post fetch failed", err)
		return
	}
	response.Success(c, post)
}
