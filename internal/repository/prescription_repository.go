package repository

import (
	"errors"
	"strings"

	"github.com/pharmadirect/internal/models"

	"gorm.io/gorm"
)

// PrescriptionRepository 处方单数据访问接口
type PrescriptionRepository interface {
	GetByID(id uint) (*models.Prescription, error)
	Create(prescription *models.Prescription) error
	Update(prescription *models.Prescription) error
	List(filter PrescriptionListFilter) ([]models.Prescription, int64, error)
}

// GormPrescriptionRepository GORM 实现
type GormPrescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository 创建处方单仓库
func NewPrescriptionRepository(db *gorm.DB) *GormPrescriptionRepository {
	return &GormPrescriptionRepository{db: db}
}

// GetByID 根据ID获取处方单
func (r *GormPrescriptionRepository) GetByID(id uint) (*models.Prescription, error) {
	var prescription models.Prescription
	if err := r.db.First(&prescription, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

// Create 创建处方单
func (r *GormPrescriptionRepository) Create(prescription *models.Prescription) error {
	return r.db.Create(prescription).Error
}

// Update 更新处方单
func (r *GormPrescriptionRepository) Update(prescription *models.Prescription) error {
	return r.db.Save(prescription).Error
}

// List 获取处方单列表
func (r *GormPrescriptionRepository) List(filter PrescriptionListFilter) ([]models.Prescription, int64, error) {
	var prescriptions []models.Prescription
	query := r.db.Model(&models.Prescription{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	if err := query.Order("id DESC").Find(&prescriptions).Error; err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}
