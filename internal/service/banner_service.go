package service

import (
	"strings"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"
)

// BannerService 轮播图服务
type BannerService struct {
	repo repository.BannerRepository
}

// NewBannerService 创建轮播图服务
func NewBannerService(repo repository.BannerRepository) *BannerService {
	return &BannerService{repo: repo}
}

// BannerInput 创建/更新轮播图输入
type BannerInput struct {
	Name        string
	Position    string
	Title       string
	Subtitle    string
	Image       string
	MobileImage string
	LinkURL     string
	IsActive    *bool
	StartAt     *time.Time
	EndAt       *time.Time
	SortOrder   int
}

func validateBannerInput(input *BannerInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Image = strings.TrimSpace(input.Image)
	if input.Name == "" || input.Image == "" {
		return ErrBannerInvalid
	}
	input.Position = strings.ToLower(strings.TrimSpace(input.Position))
	if input.Position == "" {
		input.Position = constants.BannerPositionHome
	}
	if input.StartAt != nil && input.EndAt != nil && input.EndAt.Before(*input.StartAt) {
		return ErrBannerInvalid
	}
	return nil
}

// Create 创建轮播图
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	if err := validateBannerInput(&input); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	banner := &models.Banner{
		Name:        input.Name,
		Position:    input.Position,
		Title:       strings.TrimSpace(input.Title),
		Subtitle:    strings.TrimSpace(input.Subtitle),
		Image:       input.Image,
		MobileImage: strings.TrimSpace(input.MobileImage),
		LinkURL:     strings.TrimSpace(input.LinkURL),
		IsActive:    isActive,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Update 更新轮播图
func (s *BannerService) Update(id uint, input BannerInput) (*models.Banner, error) {
	if id == 0 {
		return nil, ErrBannerInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrBannerNotFound
	}
	if err := validateBannerInput(&input); err != nil {
		return nil, err
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.Name = input.Name
	existing.Position = input.Position
	existing.Title = strings.TrimSpace(input.Title)
	existing.Subtitle = strings.TrimSpace(input.Subtitle)
	existing.Image = input.Image
	existing.MobileImage = strings.TrimSpace(input.MobileImage)
	existing.LinkURL = strings.TrimSpace(input.LinkURL)
	existing.IsActive = isActive
	existing.StartAt = input.StartAt
	existing.EndAt = input.EndAt
	existing.SortOrder = input.SortOrder

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除轮播图
func (s *BannerService) Delete(id uint) error {
	if id == 0 {
		return ErrBannerInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBannerNotFound
	}
	return s.repo.Delete(id)
}

// List 获取轮播图列表（管理端）
func (s *BannerService) List(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	return s.repo.List(filter)
}

// ListValid 获取当前有效的轮播图（商城端）
func (s *BannerService) ListValid(position string) ([]models.Banner, error) {
	banners, _, err := s.repo.List(repository.BannerListFilter{
		Position:  strings.ToLower(strings.TrimSpace(position)),
		OnlyValid: true,
	})
	return banners, err
}
