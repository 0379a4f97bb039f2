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

// PostRequest 创建/更新内容页请求
type PostRequest struct {
	Slug        string `json:"slug" binding:"required"`
	Type        string `json:"type"`
	Title       string `json:"title" binding:"required"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	Thumbnail   string `json:"thumbnail"`
	IsPublished *bool  `json:"is_published"`
}

func (r PostRequest) toInput() service.PostInput {
	return service.PostInput{
		Slug:        r.Slug,
		Type:        r.Type,
		Title:       r.Title,
		Summary:     r.Summary,
		Content:     r.Content,
		Thumbnail:   r.Thumbnail,
		IsPublished: r.IsPublished,
	}
}

func respondPostError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, response.CodeNotFound, "post not found", nil)
	case errors.Is(err, service.ErrPostInvalid):
		respondError(c, response.CodeBadRequest, "post invalid", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "slug already in use", nil)
	default:
		respondError(c, response.CodeInternal, fallback, err)
	}
}

// CreatePost 创建内容页
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	post, err := h.PostService.Create(req.toInput())
	if err != nil {
		respondPostError(c, err, "post create failed")
		return
	}
	response.Success(c, post)
}

// UpdatePost 更新内容页
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	post, err := h.PostService.Update(uint(postID), req.toInput())
	if err != nil {
		respondPostError(c, err, "post update failed")
		return
	}
	response.Success(c, post)
}

// DeletePost 删除内容页
func (h *Handler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.PostService.Delete(uint(postID)); err != nil {
		respondPostError(c, err, "post delete failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminPost 获取内容页详情（管理端）
func (h *Handler) GetAdminPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	post, err := h.PostService.GetByID(uint(postID))
	if err != nil {
		respondPostError(c, err, "post fetch failed")
		return
	}
	response.Success(c, post)
}

// GetAdminPosts 获取内容页列表（管理端）
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	posts, total, err := h.PostService.List(repository.PostListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "post fetch failed", err)
		return
	}
	response.SuccessWithPage(c, posts, response.BuildPagination(page, pageSize, total))
}
