package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/pharmadirect/internal/models"

	"gorm.io/gorm"
)

// DiscountRuleRepository 折扣规则数据访问接口
type DiscountRuleRepository interface {
	GetByID(id uint) (*models.DiscountRule, error)
	ListActive(now time.Time) ([]models.DiscountRule, error)
	Create(rule *models.DiscountRule) error
	Update(rule *models.DiscountRule) error
	Delete(id uint) error
	List(filter DiscountRuleListFilter) ([]models.DiscountRule, int64, error)
	WithTx(tx *gorm.DB) DiscountRuleRepository
}

// GormDiscountRuleRepository GORM 实现
type GormDiscountRuleRepository struct {
	db *gorm.DB
}

// NewDiscountRuleRepository 创建折扣规则仓库
func NewDiscountRuleRepository(db *gorm.DB) *GormDiscountRuleRepository {
	return &GormDiscountRuleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountRuleRepository) WithTx(tx *gorm.DB) DiscountRuleRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountRuleRepository{db: tx}
}

// GetByID 根据ID获取规则
func (r *GormDiscountRuleRepository) GetByID(id uint) (*models.DiscountRule, error) {
	var rule models.DiscountRule
	if err := r.db.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// ListActive 获取指定时间点生效中的规则
// 按优先级降序、ID 升序返回，保证引擎多次执行的遍历顺序稳定。
func (r *GormDiscountRuleRepository) ListActive(now time.Time) ([]models.DiscountRule, error) {
	var rules []models.DiscountRule
	query := r.db.Where("is_active = ?", true)
	query = query.Where("starts_at IS NOT NULL AND starts_at <= ?", now)
	query = query.Where("ends_at IS NOT NULL AND ends_at >= ?", now)
	if err := query.Order("priority DESC, id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Create 创建规则
func (r *GormDiscountRuleRepository) Create(rule *models.DiscountRule) error {
	return r.db.Create(rule).Error
}

// Update 更新规则
func (r *GormDiscountRuleRepository) Update(rule *models.DiscountRule) error {
	return r.db.Save(rule).Error
}

// Delete 删除规则
func (r *GormDiscountRuleRepository) Delete(id uint) error {
	return r.db.Delete(&models.DiscountRule{}, id).Error
}

// List 获取规则列表
func (r *GormDiscountRuleRepository) List(filter DiscountRuleListFilter) ([]models.DiscountRule, int64, error) {
	var rules []models.DiscountRule
	query := r.db.Model(&models.DiscountRule{})

	if ruleType := strings.TrimSpace(filter.RuleType); ruleType != "" {
		query = query.Where("rule_type = ?", ruleType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR target_value LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	if err := query.Order("priority DESC, id ASC").Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}
