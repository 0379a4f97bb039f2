package service

import (
	"strings"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"
)

// PostService 内容页服务
type PostService struct {
	repo  repository.PostRepository
	clock Clock
}

// NewPostService 创建内容页服务
func NewPostService(repo repository.PostRepository, clock Clock) *PostService {
	if clock == nil {
		clock = SystemClock()
	}
	return &PostService{repo: repo, clock: clock}
}

// PostInput 创建/更新内容页输入
type PostInput struct {
	Slug        string
	Type        string
	Title       string
	Summary     string
	Content     string
	Thumbnail   string
	IsPublished *bool
}

func validatePostInput(input *PostInput) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Title = strings.TrimSpace(input.Title)
	if input.Slug == "" || input.Title == "" {
		return ErrPostInvalid
	}
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.Type == "" {
		input.Type = constants.PostTypeArticle
	}
	if input.Type != constants.PostTypePage && input.Type != constants.PostTypeArticle {
		return ErrPostInvalid
	}
	return nil
}

// Create 创建内容页
func (s *PostService) Create(input PostInput) (*models.Post, error) {
	if err := validatePostInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetBySlug(input.Slug, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	post := &models.Post{
		Slug:      input.Slug,
		Type:      input.Type,
		Title:     input.Title,
		Summary:   strings.TrimSpace(input.Summary),
		Content:   input.Content,
		Thumbnail: strings.TrimSpace(input.Thumbnail),
	}
	if input.IsPublished != nil && *input.IsPublished {
		now := s.clock.Now()
		post.IsPublished = true
		post.PublishedAt = &now
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Update 更新内容页
func (s *PostService) Update(id uint, input PostInput) (*models.Post, error) {
	if id == 0 {
		return nil, ErrPostInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}
	if err := validatePostInput(&input); err != nil {
		return nil, err
	}
	if input.Slug != existing.Slug {
		conflict, err := s.repo.GetBySlug(input.Slug, false)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrSlugTaken
		}
	}

	existing.Slug = input.Slug
	existing.Type = input.Type
	existing.Title = input.Title
	existing.Summary = strings.TrimSpace(input.Summary)
	existing.Content = input.Content
	existing.Thumbnail = strings.TrimSpace(input.Thumbnail)
	if input.IsPublished != nil {
		if *input.IsPublished && !existing.IsPublished {
			now := s.clock.Now()
			existing.PublishedAt = &now
		}
		existing.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除内容页
func (s *PostService) Delete(id uint) error {
	if id == 0 {
		return ErrPostInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPostNotFound
	}
	return s.repo.Delete(id)
}

// GetBySlug 获取已发布内容页（商城端）
func (s *PostService) GetBySlug(slug string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(strings.ToLower(strings.TrimSpace(slug)), true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// GetByID 获取内容页（管理端）
func (s *PostService) GetByID(id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// List 获取内容页列表
func (s *PostService) List(filter repository.PostListFilter) ([]models.Post, int64, error) {
	return s.repo.List(filter)
}
