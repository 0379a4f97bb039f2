package service

import (
	"strings"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"
)

// PrescriptionService 处方单服务
type PrescriptionService struct {
	repo  repository.PrescriptionRepository
	clock Clock
}

// NewPrescriptionService 创建处方单服务
func NewPrescriptionService(repo repository.PrescriptionRepository, clock Clock) *PrescriptionService {
	if clock == nil {
		clock = SystemClock()
	}
	return &PrescriptionService{repo: repo, clock: clock}
}

// Submit 用户提交处方单
func (s *PrescriptionService) Submit(userID uint, imageURL, note string) (*models.Prescription, error) {
	imageURL = strings.TrimSpace(imageURL)
	if userID == 0 || imageURL == "" {
		return nil, ErrPrescriptionInvalid
	}

	prescription := &models.Prescription{
		UserID:   userID,
		ImageURL: imageURL,
		Note:     strings.TrimSpace(note),
		Status:   constants.PrescriptionStatusPending,
	}
	if err := s.repo.Create(prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// Review 管理员审核处方单，status 只接受 approved/rejected
func (s *PrescriptionService) Review(id, adminID uint, status, reviewNote string) (*models.Prescription, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.PrescriptionStatusApproved && status != constants.PrescriptionStatusRejected {
		return nil, ErrPrescriptionInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPrescriptionNotFound
	}
	if existing.Status != constants.PrescriptionStatusPending {
		return nil, ErrPrescriptionReviewed
	}

	now := s.clock.Now()
	existing.Status = status
	existing.ReviewNote = strings.TrimSpace(reviewNote)
	existing.ReviewedBy = adminID
	existing.ReviewedAt = &now

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetByID 获取处方单
func (s *PrescriptionService) GetByID(id uint) (*models.Prescription, error) {
	prescription, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return prescription, nil
}

// GetForUser 获取用户本人的处方单
func (s *PrescriptionService) GetForUser(id, userID uint) (*models.Prescription, error) {
	prescription, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prescription.UserID != userID {
		return nil, ErrPrescriptionNotFound
	}
	return prescription, nil
}

// List 获取处方单列表
func (s *PrescriptionService) List(filter repository.PrescriptionListFilter) ([]models.Prescription, int64, error) {
	return s.repo.List(filter)
}
