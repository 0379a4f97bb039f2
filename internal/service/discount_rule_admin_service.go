package service

import (
	"strings"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountRuleAdminService 折扣规则管理服务
type DiscountRuleAdminService struct {
	repo repository.DiscountRuleRepository
}

// NewDiscountRuleAdminService 创建折扣规则管理服务
func NewDiscountRuleAdminService(repo repository.DiscountRuleRepository) *DiscountRuleAdminService {
	return &DiscountRuleAdminService{repo: repo}
}

// DiscountRuleInput 创建/更新折扣规则输入
type DiscountRuleInput struct {
	Name          string
	RuleType      string
	TargetValue   string
	DiscountType  string
	Amount        models.Money
	MinCartAmount models.Money
	StartsAt      *time.Time
	EndsAt        *time.Time
	Priority      int
	IsActive      *bool
	Description   string
}

func validateDiscountRuleInput(input *DiscountRuleInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrRuleInvalid
	}
	input.RuleType = strings.ToLower(strings.TrimSpace(input.RuleType))
	switch input.RuleType {
	case constants.RuleTypeCategory, constants.RuleTypeBrand:
		input.TargetValue = strings.TrimSpace(input.TargetValue)
		if input.TargetValue == "" {
			return ErrRuleInvalid
		}
	case constants.RuleTypeCartAmount, constants.RuleTypeUserGroup:
	default:
		return ErrRuleInvalid
	}
	input.DiscountType = strings.ToLower(strings.TrimSpace(input.DiscountType))
	if input.DiscountType != constants.DiscountTypeFixed && input.DiscountType != constants.DiscountTypePercent {
		return ErrRuleInvalid
	}
	if input.Amount.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrRuleInvalid
	}
	if input.DiscountType == constants.DiscountTypePercent && input.Amount.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrRuleInvalid
	}
	// 引擎按生效窗口筛选规则，起止时间都必须给出
	if input.StartsAt == nil || input.EndsAt == nil {
		return ErrRuleInvalid
	}
	if input.EndsAt.Before(*input.StartsAt) {
		return ErrRuleInvalid
	}
	return nil
}

// Create 创建折扣规则
func (s *DiscountRuleAdminService) Create(input DiscountRuleInput) (*models.DiscountRule, error) {
	if err := validateDiscountRuleInput(&input); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	rule := &models.DiscountRule{
		Name:          input.Name,
		RuleType:      input.RuleType,
		TargetValue:   input.TargetValue,
		DiscountType:  input.DiscountType,
		Amount:        input.Amount,
		MinCartAmount: input.MinCartAmount,
		StartsAt:      input.StartsAt,
		EndsAt:        input.EndsAt,
		Priority:      input.Priority,
		IsActive:      isActive,
		Description:   strings.TrimSpace(input.Description),
	}

	if err := s.repo.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// Update 更新折扣规则
func (s *DiscountRuleAdminService) Update(id uint, input DiscountRuleInput) (*models.DiscountRule, error) {
	if id == 0 {
		return nil, ErrRuleInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrRuleNotFound
	}
	if err := validateDiscountRuleInput(&input); err != nil {
		return nil, err
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.Name = input.Name
	existing.RuleType = input.RuleType
	existing.TargetValue = input.TargetValue
	existing.DiscountType = input.DiscountType
	existing.Amount = input.Amount
	existing.MinCartAmount = input.MinCartAmount
	existing.StartsAt = input.StartsAt
	existing.EndsAt = input.EndsAt
	existing.Priority = input.Priority
	existing.IsActive = isActive
	existing.Description = strings.TrimSpace(input.Description)

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除折扣规则
func (s *DiscountRuleAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrRuleInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRuleNotFound
	}
	return s.repo.Delete(id)
}

// GetByID 获取单条折扣规则
func (s *DiscountRuleAdminService) GetByID(id uint) (*models.DiscountRule, error) {
	rule, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

// List 获取折扣规则列表
func (s *DiscountRuleAdminService) List(filter repository.DiscountRuleListFilter) ([]models.DiscountRule, int64, error) {
	return s.repo.List(filter)
}
