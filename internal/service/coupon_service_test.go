package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCouponTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newCouponServiceForTest(db *gorm.DB, now time.Time) *CouponService {
	return NewCouponService(
		repository.NewCouponRepository(db),
		repository.NewCouponUsageRepository(db),
		FixedClock{T: now},
	)
}

func createCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) *models.Coupon {
	t.Helper()
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return &coupon
}

func TestCouponApplyPercentCappedByMaxDiscount(t *testing.T) {
	db := newCouponTestDB(t, "coupon_percent")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createCoupon(t, db, models.Coupon{
		Code:        "HALF",
		Type:        constants.DiscountTypePercent,
		Value:       moneyFromInt(50),
		MaxDiscount: moneyFromInt(100),
		StartsAt:    &startsAt,
		EndsAt:      &endsAt,
		IsActive:    true,
	})

	result, _, err := newCouponServiceForTest(db, now).Apply("half", moneyFromInt(500), 0)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if !result.DiscountAmount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected discount capped at 100, got %s", result.DiscountAmount.String())
	}
	if !result.FinalAmount.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected final amount 400, got %s", result.FinalAmount.String())
	}
}

func TestCouponApplyFixedCappedByCartTotal(t *testing.T) {
	db := newCouponTestDB(t, "coupon_fixed")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createCoupon(t, db, models.Coupon{
		Code:     "BIGCUT",
		Type:     constants.DiscountTypeFixed,
		Value:    moneyFromInt(300),
		StartsAt: &startsAt,
		EndsAt:   &endsAt,
		IsActive: true,
	})

	result, _, err := newCouponServiceForTest(db, now).Apply("BIGCUT", moneyFromInt(200), 0)
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if !result.DiscountAmount.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected discount capped at cart total, got %s", result.DiscountAmount.String())
	}
	if !result.FinalAmount.Decimal.Equal(decimal.Zero) {
		t.Fatalf("expected final amount 0, got %s", result.FinalAmount.String())
	}
}

func TestCouponApplyValidationErrors(t *testing.T) {
	db := newCouponTestDB(t, "coupon_validation")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	recentPast := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	farFuture := now.Add(48 * time.Hour)

	createCoupon(t, db, models.Coupon{
		Code: "DISABLED", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10),
		StartsAt: &recentPast, EndsAt: &farFuture, IsActive: false,
	})
	createCoupon(t, db, models.Coupon{
		Code: "NOTYET", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10),
		StartsAt: &future, EndsAt: &farFuture, IsActive: true,
	})
	createCoupon(t, db, models.Coupon{
		Code: "EXPIRED", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10),
		StartsAt: &past, EndsAt: &recentPast, IsActive: true,
	})
	createCoupon(t, db, models.Coupon{
		Code: "MINCART", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10),
		MinCartAmount: moneyFromInt(500), StartsAt: &recentPast, EndsAt: &farFuture, IsActive: true,
	})
	createCoupon(t, db, models.Coupon{
		Code: "SOLDOUT", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10),
		UsageLimit: 1, UsedCount: 1, StartsAt: &recentPast, EndsAt: &farFuture, IsActive: true,
	})

	svc := newCouponServiceForTest(db, now)
	cases := []struct {
		code string
		want error
	}{
		{"NOPE", ErrCouponNotFound},
		{"DISABLED", ErrCouponInactive},
		{"NOTYET", ErrCouponNotStarted},
		{"EXPIRED", ErrCouponExpired},
		{"MINCART", ErrCouponMinCart},
		{"SOLDOUT", ErrCouponUsageLimit},
	}
	for _, tc := range cases {
		_, _, err := svc.Apply(tc.code, moneyFromInt(100), 0)
		if !errors.Is(err, tc.want) {
			t.Fatalf("code %s: expected %v, got %v", tc.code, tc.want, err)
		}
	}
}

func TestCouponRedeemEnforcesPerUserLimit(t *testing.T) {
	db := newCouponTestDB(t, "coupon_per_user")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	coupon := createCoupon(t, db, models.Coupon{
		Code:         "ONCE",
		Type:         constants.DiscountTypeFixed,
		Value:        moneyFromInt(10),
		PerUserLimit: 1,
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		IsActive:     true,
	})

	svc := newCouponServiceForTest(db, now)
	if _, err := svc.Redeem("ONCE", moneyFromInt(100), 7, "PD20260301001"); err != nil {
		t.Fatalf("first redeem error: %v", err)
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", reloaded.UsedCount)
	}

	if _, _, err := svc.Apply("ONCE", moneyFromInt(100), 7); !errors.Is(err, ErrCouponPerUserLimit) {
		t.Fatalf("expected per-user limit error, got %v", err)
	}
	// 其他用户不受影响
	if _, _, err := svc.Apply("ONCE", moneyFromInt(100), 8); err != nil {
		t.Fatalf("expected other user to pass, got %v", err)
	}
}

func TestCouponApplyDoesNotMutate(t *testing.T) {
	db := newCouponTestDB(t, "coupon_pure")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	coupon := createCoupon(t, db, models.Coupon{
		Code:     "PURE",
		Type:     constants.DiscountTypePercent,
		Value:    moneyFromInt(10),
		StartsAt: &startsAt,
		EndsAt:   &endsAt,
		IsActive: true,
	})

	svc := newCouponServiceForTest(db, now)
	for i := 0; i < 3; i++ {
		if _, _, err := svc.Apply("PURE", moneyFromInt(100), 1); err != nil {
			t.Fatalf("apply error: %v", err)
		}
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("expected apply to leave used count at 0, got %d", reloaded.UsedCount)
	}
	var usages int64
	if err := db.Model(&models.CouponUsage{}).Count(&usages).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if usages != 0 {
		t.Fatalf("expected no usage rows, got %d", usages)
	}
}
