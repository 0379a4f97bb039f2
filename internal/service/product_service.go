package service

import (
	"strings"
	"time"

	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	clock        Clock
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, clock Clock) *ProductService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ProductService{repo: repo, categoryRepo: categoryRepo, clock: clock}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID           uint
	BrandName            string
	Slug                 string
	Name                 string
	Description          string
	Images               []string
	SellingPrice         models.Money
	MRP                  models.Money
	Stock                int
	RequiresPrescription bool
	IsActive             *bool
	SortOrder            int
}

func (s *ProductService) validateInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.BrandName = strings.TrimSpace(input.BrandName)
	if input.Name == "" || input.Slug == "" {
		return ErrProductInvalid
	}
	if input.SellingPrice.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrProductInvalid
	}
	if input.Stock < 0 {
		return ErrProductInvalid
	}
	if input.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := &models.Product{
		CategoryID:           input.CategoryID,
		BrandName:            input.BrandName,
		Slug:                 input.Slug,
		Name:                 input.Name,
		Description:          input.Description,
		Images:               models.StringArray(input.Images),
		SellingPrice:         input.SellingPrice,
		MRP:                  input.MRP,
		Stock:                input.Stock,
		RequiresPrescription: input.RequiresPrescription,
		IsActive:             isActive,
		SortOrder:            input.SortOrder,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品（活动价字段由折扣引擎维护，此处不改动）
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if input.Slug != existing.Slug {
		count, err := s.repo.CountBySlug(input.Slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugTaken
		}
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.CategoryID = input.CategoryID
	existing.BrandName = input.BrandName
	existing.Slug = input.Slug
	existing.Name = input.Name
	existing.Description = input.Description
	existing.Images = models.StringArray(input.Images)
	existing.SellingPrice = input.SellingPrice
	existing.MRP = input.MRP
	existing.Stock = input.Stock
	existing.RequiresPrescription = input.RequiresPrescription
	existing.IsActive = isActive
	existing.SortOrder = input.SortOrder

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	if id == 0 {
		return ErrProductInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}

// GetByID 获取商品（管理端）
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetBySlug 获取上架商品（商城端）
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(strings.ToLower(strings.TrimSpace(slug)), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 获取商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// EffectivePrice 商品当前有效售价（活动窗口内取活动价）
func (s *ProductService) EffectivePrice(product *models.Product) models.Money {
	return product.EffectivePrice(s.clock.Now())
}

// Now 服务当前时间，目录展示时用于计算活动价窗口
func (s *ProductService) Now() time.Time {
	return s.clock.Now()
}
