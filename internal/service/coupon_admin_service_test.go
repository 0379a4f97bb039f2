package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/repository"
)

func newCouponAdminForTest(t *testing.T, name string) *CouponAdminService {
	t.Helper()
	db := newCouponTestDB(t, name)
	return NewCouponAdminService(
		repository.NewCouponRepository(db),
		repository.NewCouponUsageRepository(db),
	)
}

func TestCouponAdminCreateNormalizesCode(t *testing.T) {
	svc := newCouponAdminForTest(t, "coupon_admin_create")

	coupon, err := svc.Create(CouponInput{
		Code:  "  welcome10  ",
		Type:  constants.DiscountTypePercent,
		Value: moneyFromInt(10),
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if coupon.Code != "WELCOME10" {
		t.Fatalf("expected upper-cased code, got %q", coupon.Code)
	}
	if !coupon.IsActive {
		t.Fatalf("expected coupon active by default")
	}
}

func TestCouponAdminCreateRejectsDuplicateCode(t *testing.T) {
	svc := newCouponAdminForTest(t, "coupon_admin_dup")

	input := CouponInput{
		Code:  "SAVE20",
		Type:  constants.DiscountTypeFixed,
		Value: moneyFromInt(20),
	}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("first create error: %v", err)
	}
	input.Code = "save20"
	if _, err := svc.Create(input); !errors.Is(err, ErrCouponCodeTaken) {
		t.Fatalf("expected ErrCouponCodeTaken, got %v", err)
	}
}

func TestValidateCouponInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(24 * time.Hour)

	cases := []struct {
		name  string
		input CouponInput
	}{
		{"empty code", CouponInput{Type: constants.DiscountTypeFixed, Value: moneyFromInt(10)}},
		{"unknown type", CouponInput{Code: "X", Type: "bogus", Value: moneyFromInt(10)}},
		{"zero value", CouponInput{Code: "X", Type: constants.DiscountTypeFixed, Value: moneyFromInt(0)}},
		{"percent over 100", CouponInput{Code: "X", Type: constants.DiscountTypePercent, Value: moneyFromInt(150)}},
		{"negative usage limit", CouponInput{Code: "X", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10), UsageLimit: -1}},
		{"negative per-user limit", CouponInput{Code: "X", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10), PerUserLimit: -1}},
		{"inverted window", CouponInput{Code: "X", Type: constants.DiscountTypeFixed, Value: moneyFromInt(10), StartsAt: &later, EndsAt: &now}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.input
			if err := validateCouponInput(&in); !errors.Is(err, ErrCouponInvalid) {
				t.Fatalf("expected ErrCouponInvalid, got %v", err)
			}
		})
	}
}

func TestCouponAdminCreateInactivePersists(t *testing.T) {
	svc := newCouponAdminForTest(t, "coupon_admin_inactive")

	inactive := false
	created, err := svc.Create(CouponInput{
		Code:     "DISABLED",
		Type:     constants.DiscountTypeFixed,
		Value:    moneyFromInt(10),
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	stored, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("coupon created as disabled was stored active")
	}
}

func TestCouponAdminUpdateNotFound(t *testing.T) {
	svc := newCouponAdminForTest(t, "coupon_admin_missing")

	_, err := svc.Update(999, CouponInput{
		Code:  "GHOST",
		Type:  constants.DiscountTypeFixed,
		Value: moneyFromInt(10),
	})
	if !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
	if err := svc.Delete(999); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound on delete, got %v", err)
	}
}

