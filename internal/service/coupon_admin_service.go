package service

import (
	"strings"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService 优惠码管理服务
type CouponAdminService struct {
	repo      repository.CouponRepository
	usageRepo repository.CouponUsageRepository
}

// NewCouponAdminService 创建优惠码管理服务
func NewCouponAdminService(repo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponAdminService {
	return &CouponAdminService{repo: repo, usageRepo: usageRepo}
}

// CouponInput 创建/更新优惠码输入
type CouponInput struct {
	Code          string
	Type          string
	Value         models.Money
	MinCartAmount models.Money
	MaxDiscount   models.Money
	UsageLimit    int
	PerUserLimit  int
	StartsAt      *time.Time
	EndsAt        *time.Time
	IsActive      *bool
}

func validateCouponInput(input *CouponInput) error {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.Code == "" {
		return ErrCouponInvalid
	}
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.Type != constants.DiscountTypeFixed && input.Type != constants.DiscountTypePercent {
		return ErrCouponInvalid
	}
	if input.Value.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrCouponInvalid
	}
	if input.Type == constants.DiscountTypePercent && input.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrCouponInvalid
	}
	if input.UsageLimit < 0 || input.PerUserLimit < 0 {
		return ErrCouponInvalid
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return ErrCouponInvalid
	}
	return nil
}

// Create 创建优惠码
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeTaken
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	coupon := &models.Coupon{
		Code:          input.Code,
		Type:          input.Type,
		Value:         input.Value,
		MinCartAmount: input.MinCartAmount,
		MaxDiscount:   input.MaxDiscount,
		UsageLimit:    input.UsageLimit,
		PerUserLimit:  input.PerUserLimit,
		StartsAt:      input.StartsAt,
		EndsAt:        input.EndsAt,
		IsActive:      isActive,
	}

	if err := s.repo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠码
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	if id == 0 {
		return nil, ErrCouponInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}
	if err := validateCouponInput(&input); err != nil {
		return nil, err
	}
	if input.Code != existing.Code {
		conflict, err := s.repo.GetByCode(input.Code)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrCouponCodeTaken
		}
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.Code = input.Code
	existing.Type = input.Type
	existing.Value = input.Value
	existing.MinCartAmount = input.MinCartAmount
	existing.MaxDiscount = input.MaxDiscount
	existing.UsageLimit = input.UsageLimit
	existing.PerUserLimit = input.PerUserLimit
	existing.StartsAt = input.StartsAt
	existing.EndsAt = input.EndsAt
	existing.IsActive = isActive

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除优惠码
func (s *CouponAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrCouponInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	return s.repo.Delete(id)
}

// GetByID 获取单条优惠码
func (s *CouponAdminService) GetByID(id uint) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List 获取优惠码列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.repo.List(filter)
}

// ListUsages 获取优惠码使用记录
func (s *CouponAdminService) ListUsages(filter repository.CouponUsageListFilter) ([]models.CouponUsage, int64, error) {
	return s.usageRepo.List(filter)
}
