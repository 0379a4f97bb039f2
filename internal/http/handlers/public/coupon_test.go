package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/provider"
	"github.com/pharmadirect/internal/repository"
	"github.com/pharmadirect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCouponHandlerTestEnv(t *testing.T, name string, now time.Time) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	container := &provider.Container{
		CouponService: service.NewCouponService(
			repository.NewCouponRepository(db),
			repository.NewCouponUsageRepository(db),
			service.FixedClock{T: now},
		),
	}
	handler := New(container)

	r := gin.New()
	r.POST("/api/v1/coupons/apply", handler.ApplyCoupon)
	return r, db
}

func applyCouponRequest(t *testing.T, r *gin.Engine, body string) (int, string, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int                        `json:"status_code"`
		Msg        string                     `json:"msg"`
		Data       map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v (%s)", err, w.Body.String())
	}
	return resp.StatusCode, resp.Msg, resp.Data
}

func TestApplyCouponSuccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, db := newCouponHandlerTestEnv(t, "coupon_handler_ok", now)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	coupon := models.Coupon{
		Code:        "WELCOME10",
		Type:        constants.DiscountTypePercent,
		Value:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		MaxDiscount: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		StartsAt:    &startsAt,
		EndsAt:      &endsAt,
		IsActive:    true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	code, _, data := applyCouponRequest(t, r, `{"code":"welcome10","cart_total":200}`)
	if code != 0 {
		t.Fatalf("status_code want 0 got %d", code)
	}
	if string(data["valid"]) != "true" {
		t.Fatalf("expected valid true, got %s", data["valid"])
	}
	if string(data["discount"]) != `"20.00"` {
		t.Fatalf("discount want \"20.00\" got %s", data["discount"])
	}
	if string(data["final_total"]) != `"180.00"` {
		t.Fatalf("final_total want \"180.00\" got %s", data["final_total"])
	}
}

func TestApplyCouponZeroCartTotal(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, db := newCouponHandlerTestEnv(t, "coupon_handler_zero_cart", now)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	coupon := models.Coupon{
		Code:     "FLAT10",
		Type:     constants.DiscountTypeFixed,
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		StartsAt: &startsAt,
		EndsAt:   &endsAt,
		IsActive: true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	// 空购物车是合法金额，折扣被购物车总额封顶为 0
	code, msg, data := applyCouponRequest(t, r, `{"code":"FLAT10","cart_total":0}`)
	if code != 0 {
		t.Fatalf("status_code want 0 got %d (%s)", code, msg)
	}
	if string(data["discount"]) != `"0.00"` {
		t.Fatalf("discount want \"0.00\" got %s", data["discount"])
	}
	if string(data["final_total"]) != `"0.00"` {
		t.Fatalf("final_total want \"0.00\" got %s", data["final_total"])
	}

	// 缺省 cart_total 和负数仍然拒绝
	for _, body := range []string{`{"code":"FLAT10"}`, `{"code":"FLAT10","cart_total":-1}`} {
		statusCode, _, _ := applyCouponRequest(t, r, body)
		if statusCode == 0 {
			t.Fatalf("body %s: expected error status_code", body)
		}
	}
}

func TestApplyCouponErrorMessages(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, db := newCouponHandlerTestEnv(t, "coupon_handler_errors", now)

	past := now.Add(-48 * time.Hour)
	recentPast := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	farFuture := now.Add(48 * time.Hour)
	coupons := []models.Coupon{
		{Code: "DISABLED", Type: constants.DiscountTypeFixed, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), StartsAt: &recentPast, EndsAt: &farFuture, IsActive: false},
		{Code: "NOTYET", Type: constants.DiscountTypeFixed, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), StartsAt: &future, EndsAt: &farFuture, IsActive: true},
		{Code: "EXPIRED", Type: constants.DiscountTypeFixed, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), StartsAt: &past, EndsAt: &recentPast, IsActive: true},
		{Code: "MINCART", Type: constants.DiscountTypeFixed, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), MinCartAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(500)), StartsAt: &recentPast, EndsAt: &farFuture, IsActive: true},
		{Code: "SOLDOUT", Type: constants.DiscountTypeFixed, Value: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), UsageLimit: 1, UsedCount: 1, StartsAt: &recentPast, EndsAt: &farFuture, IsActive: true},
	}
	for i := range coupons {
		if err := db.Create(&coupons[i]).Error; err != nil {
			t.Fatalf("create coupon failed: %v", err)
		}
	}

	cases := []struct {
		code string
		want string
	}{
		{"NOPE", "Invalid coupon code"},
		{"DISABLED", "This coupon is no longer active"},
		{"NOTYET", "This coupon is not yet active"},
		{"EXPIRED", "This coupon has expired"},
		{"MINCART", "A minimum cart amount of 500.00 is required to use this coupon"},
		{"SOLDOUT", "This coupon has reached its usage limit"},
	}
	for _, tc := range cases {
		body := fmt.Sprintf(`{"code":%q,"cart_total":100}`, tc.code)
		statusCode, msg, _ := applyCouponRequest(t, r, body)
		if statusCode == 0 {
			t.Fatalf("code %s: expected error status_code", tc.code)
		}
		if msg != tc.want {
			t.Fatalf("code %s: msg want %q got %q", tc.code, tc.want, msg)
		}
	}
}
