package service

import (
	"strings"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券校验与核销
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
	clock      Clock
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository, clock Clock) *CouponService {
	if clock == nil {
		clock = SystemClock()
	}
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
		clock:      clock,
	}
}

// ApplyResult 优惠券试算结果
type ApplyResult struct {
	Coupon         *models.Coupon `json:"-"`
	DiscountAmount models.Money   `json:"discount_amount"`
	FinalAmount    models.Money   `json:"final_amount"`
}

// Apply 按固定顺序校验优惠券并试算折扣，不落库。
// 校验失败时若券本身存在，连同哨兵错误一起返回，便于上层拼装提示文案。
func (s *CouponService) Apply(code string, cartTotal models.Money, userID uint) (*ApplyResult, *models.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, nil, err
	}
	if coupon == nil {
		return nil, nil, ErrCouponNotFound
	}
	now := s.clock.Now()
	if !coupon.IsActive {
		return nil, coupon, ErrCouponInactive
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return nil, coupon, ErrCouponNotStarted
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return nil, coupon, ErrCouponExpired
	}
	if cartTotal.Decimal.LessThan(coupon.MinCartAmount.Decimal) {
		return nil, coupon, ErrCouponMinCart
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, coupon, ErrCouponUsageLimit
	}
	if coupon.PerUserLimit > 0 && userID > 0 {
		used, err := s.usageRepo.CountByUser(coupon.ID, userID)
		if err != nil {
			return nil, coupon, err
		}
		if used >= int64(coupon.PerUserLimit) {
			return nil, coupon, ErrCouponPerUserLimit
		}
	}

	discount := computeCouponDiscount(coupon, cartTotal)
	final := models.NewMoneyFromDecimal(cartTotal.Decimal.Sub(discount.Decimal))
	return &ApplyResult{
		Coupon:         coupon,
		DiscountAmount: discount,
		FinalAmount:    final,
	}, coupon, nil
}

// Redeem 核销：校验通过后记录使用并累加计数
func (s *CouponService) Redeem(code string, cartTotal models.Money, userID uint, orderNo string) (*ApplyResult, error) {
	result, _, err := s.Apply(code, cartTotal, userID)
	if err != nil {
		return nil, err
	}
	usage := &models.CouponUsage{
		CouponID:       result.Coupon.ID,
		UserID:         userID,
		OrderNo:        orderNo,
		DiscountAmount: result.DiscountAmount,
	}
	if err := s.usageRepo.Create(usage); err != nil {
		return nil, err
	}
	if err := s.couponRepo.IncrementUsedCount(result.Coupon.ID); err != nil {
		return nil, err
	}
	return result, nil
}

// computeCouponDiscount 计算折扣额：percent 受 max_discount 封顶，
// fixed 受购物车总额封顶，结果四舍五入到分。
func computeCouponDiscount(coupon *models.Coupon, cartTotal models.Money) models.Money {
	var discount decimal.Decimal
	switch coupon.Type {
	case constants.DiscountTypePercent:
		discount = cartTotal.Decimal.Mul(coupon.Value.Decimal).Div(decimal.NewFromInt(100))
		if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
	case constants.DiscountTypeFixed:
		discount = coupon.Value.Decimal
	}
	if discount.GreaterThan(cartTotal.Decimal) {
		discount = cartTotal.Decimal
	}
	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount)
}
