package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	ListCandidatesForRule(rule *models.DiscountRule) ([]models.Product, error)
	SetCampaign(productID uint, price models.Money, startsAt, endsAt time.Time) error
	ClearExpiredCampaigns(now time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if brand := strings.TrimSpace(filter.BrandName); brand != "" {
		query = query.Where("brand_name = ?", brand)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR slug LIKE ? OR brand_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	if err := query.Order("sort_order DESC, created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID 根据ID获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	var product models.Product
	query := r.db.Preload("Category").Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySlug 统计 slug 出现次数（用于唯一性校验）
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListCandidatesForRule 解析折扣规则的候选商品集合
// category 规则按分类ID匹配，brand 规则按品牌名精确匹配（保留存储时的大小写）。
func (r *GormProductRepository) ListCandidatesForRule(rule *models.DiscountRule) ([]models.Product, error) {
	if rule == nil {
		return nil, nil
	}
	var products []models.Product
	query := r.db.Where("is_active = ?", true)
	switch rule.RuleType {
	case constants.RuleTypeCategory:
		query = query.Where("category_id = ?", strings.TrimSpace(rule.TargetValue))
	case constants.RuleTypeBrand:
		query = query.Where("brand_name = ?", rule.TargetValue)
	default:
		return nil, nil
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SetCampaign 写入商品活动价及活动窗口
func (r *GormProductRepository) SetCampaign(productID uint, price models.Money, startsAt, endsAt time.Time) error {
	return r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"campaign_price":     price,
		"campaign_starts_at": startsAt,
		"campaign_ends_at":   endsAt,
	}).Error
}

// ClearExpiredCampaigns 批量清理已过期的活动价，返回受影响行数
func (r *GormProductRepository) ClearExpiredCampaigns(now time.Time) (int64, error) {
	result := r.db.Model(&models.Product{}).
		Where("campaign_price IS NOT NULL AND campaign_ends_at < ?", now).
		Updates(map[string]interface{}{
			"campaign_price":     nil,
			"campaign_starts_at": nil,
			"campaign_ends_at":   nil,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
