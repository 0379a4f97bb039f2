package service

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newEngineTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.DiscountRule{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newEngineForTest(db *gorm.DB, now time.Time) *DiscountEngineService {
	return NewDiscountEngineService(
		repository.NewDiscountRuleRepository(db),
		repository.NewProductRepository(db),
		FixedClock{T: now},
	)
}

func moneyFromInt(v int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(v))
}

func createEngineProduct(t *testing.T, db *gorm.DB, slug string, categoryID uint, brand string, price int64) *models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:   categoryID,
		BrandName:    brand,
		Slug:         slug,
		Name:         slug,
		SellingPrice: moneyFromInt(price),
		Stock:        10,
		IsActive:     true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func createEngineCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := models.Category{Name: slug, Slug: slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return &category
}

func createEngineRule(t *testing.T, db *gorm.DB, rule models.DiscountRule) *models.DiscountRule {
	t.Helper()
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("create discount rule failed: %v", err)
	}
	return &rule
}

func loadEngineProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	t.Helper()
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	return &product
}

func TestDiscountEngineApplyPercentRule(t *testing.T) {
	db := newEngineTestDB(t, "engine_percent")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "vitamins")
	product := createEngineProduct(t, db, "vitamin-c", category.ID, "NutriCore", 1000)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createEngineRule(t, db, models.DiscountRule{
		Name:         "vitamins sale",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(20),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		IsActive:     true,
	})

	summary, err := newEngineForTest(db, now).Run()
	if err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	if !summary.Success || summary.RulesProcessed != 1 || summary.ProductsUpdated != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignPrice == nil {
		t.Fatalf("expected campaign price to be set")
	}
	if !got.CampaignPrice.Decimal.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected campaign price 800, got %s", got.CampaignPrice.String())
	}
	if got.CampaignStartsAt == nil || got.CampaignEndsAt == nil {
		t.Fatalf("expected campaign window to be set")
	}
	if !got.CampaignEndsAt.Equal(endsAt) {
		t.Fatalf("expected campaign end %s, got %s", endsAt, got.CampaignEndsAt)
	}
}

func TestDiscountEngineHigherPriorityWins(t *testing.T) {
	db := newEngineTestDB(t, "engine_priority")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "skin-care")
	product := createEngineProduct(t, db, "moisturizer", category.ID, "PureDerm", 100)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	// 低优先级规则折扣更大，但引擎先比优先级
	createEngineRule(t, db, models.DiscountRule{
		Name:         "deep discount",
		RuleType:     constants.RuleTypeBrand,
		TargetValue:  "PureDerm",
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(50),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		Priority:     5,
		IsActive:     true,
	})
	createEngineRule(t, db, models.DiscountRule{
		Name:         "brand flash sale",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypeFixed,
		Amount:       moneyFromInt(10),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		Priority:     10,
		IsActive:     true,
	})

	summary, err := newEngineForTest(db, now).Run()
	if err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	if summary.ProductsUpdated != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignPrice == nil || !got.CampaignPrice.Decimal.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected priority 10 rule to win with price 90, got %+v", got.CampaignPrice)
	}
}

func TestDiscountEngineEqualPriorityLowerPriceWins(t *testing.T) {
	db := newEngineTestDB(t, "engine_price_tie")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "cold-and-fever")
	product := createEngineProduct(t, db, "paracetamol", category.ID, "Healwell", 200)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createEngineRule(t, db, models.DiscountRule{
		Name:         "small cut",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypeFixed,
		Amount:       moneyFromInt(20),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		Priority:     3,
		IsActive:     true,
	})
	createEngineRule(t, db, models.DiscountRule{
		Name:         "big cut",
		RuleType:     constants.RuleTypeBrand,
		TargetValue:  "Healwell",
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(25),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		Priority:     3,
		IsActive:     true,
	})

	if _, err := newEngineForTest(db, now).Run(); err != nil {
		t.Fatalf("engine run error: %v", err)
	}

	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignPrice == nil || !got.CampaignPrice.Decimal.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected lower resulting price 150 to win, got %+v", got.CampaignPrice)
	}
}

func TestDiscountEngineFullTieLowerRuleIDWins(t *testing.T) {
	db := newEngineTestDB(t, "engine_id_tie")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "baby-care")
	product := createEngineProduct(t, db, "baby-lotion", category.ID, "TenderCare", 100)

	startsAt := now.Add(-time.Hour)
	endsEarly := now.Add(12 * time.Hour)
	endsLate := now.Add(48 * time.Hour)
	first := createEngineRule(t, db, models.DiscountRule{
		Name:         "first rule",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypeFixed,
		Amount:       moneyFromInt(10),
		StartsAt:     &startsAt,
		EndsAt:       &endsEarly,
		Priority:     1,
		IsActive:     true,
	})
	createEngineRule(t, db, models.DiscountRule{
		Name:         "second rule",
		RuleType:     constants.RuleTypeBrand,
		TargetValue:  "TenderCare",
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(10),
		StartsAt:     &startsAt,
		EndsAt:       &endsLate,
		Priority:     1,
		IsActive:     true,
	})

	if _, err := newEngineForTest(db, now).Run(); err != nil {
		t.Fatalf("engine run error: %v", err)
	}

	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignEndsAt == nil || !got.CampaignEndsAt.Equal(endsEarly) {
		t.Fatalf("expected rule %d to win the tie, got end %v", first.ID, got.CampaignEndsAt)
	}
}

func TestDiscountEngineClampsNegativePrice(t *testing.T) {
	db := newEngineTestDB(t, "engine_clamp")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "samples")
	product := createEngineProduct(t, db, "sample-pack", category.ID, "Healwell", 30)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createEngineRule(t, db, models.DiscountRule{
		Name:         "over discount",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypeFixed,
		Amount:       moneyFromInt(50),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		IsActive:     true,
	})

	if _, err := newEngineForTest(db, now).Run(); err != nil {
		t.Fatalf("engine run error: %v", err)
	}

	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignPrice == nil || !got.CampaignPrice.Decimal.Equal(decimal.Zero) {
		t.Fatalf("expected campaign price clamped to 0, got %+v", got.CampaignPrice)
	}
}

func TestDiscountEngineSweepsExpiredCampaigns(t *testing.T) {
	db := newEngineTestDB(t, "engine_sweep")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "vitamins")
	product := createEngineProduct(t, db, "expired-deal", category.ID, "NutriCore", 100)

	oldStart := now.Add(-48 * time.Hour)
	oldEnd := now.Add(-time.Hour)
	oldPrice := moneyFromInt(80)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]any{
		"campaign_price":     oldPrice,
		"campaign_starts_at": oldStart,
		"campaign_ends_at":   oldEnd,
	}).Error; err != nil {
		t.Fatalf("seed expired campaign failed: %v", err)
	}

	summary, err := newEngineForTest(db, now).Run()
	if err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	if summary.ProductsCleared != 1 {
		t.Fatalf("expected 1 cleared product, got %+v", summary)
	}

	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignPrice != nil || got.CampaignStartsAt != nil || got.CampaignEndsAt != nil {
		t.Fatalf("expected campaign fields cleared, got %+v", got)
	}
}

func TestDiscountEngineSecondRunIsIdempotent(t *testing.T) {
	db := newEngineTestDB(t, "engine_idempotent")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "vitamins")
	createEngineProduct(t, db, "vitamin-d", category.ID, "NutriCore", 500)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createEngineRule(t, db, models.DiscountRule{
		Name:         "steady sale",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(10),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		IsActive:     true,
	})

	engine := newEngineForTest(db, now)
	first, err := engine.Run()
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	if first.ProductsUpdated != 1 {
		t.Fatalf("expected 1 update on first run, got %+v", first)
	}

	second, err := engine.Run()
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if second.ProductsUpdated != 0 || second.ProductsCleared != 0 {
		t.Fatalf("expected no writes on second run, got %+v", second)
	}
}

func TestDiscountEngineSkipsInactiveAndCartRules(t *testing.T) {
	db := newEngineTestDB(t, "engine_skip")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "vitamins")
	product := createEngineProduct(t, db, "untouched", category.ID, "NutriCore", 100)

	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createEngineRule(t, db, models.DiscountRule{
		Name:         "disabled rule",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(30),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		IsActive:     false,
	})
	createEngineRule(t, db, models.DiscountRule{
		Name:          "cart threshold",
		RuleType:      constants.RuleTypeCartAmount,
		TargetValue:   "",
		DiscountType:  constants.DiscountTypeFixed,
		Amount:        moneyFromInt(10),
		MinCartAmount: moneyFromInt(200),
		StartsAt:      &startsAt,
		EndsAt:        &endsAt,
		IsActive:      true,
	})

	summary, err := newEngineForTest(db, now).Run()
	if err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	if summary.ProductsUpdated != 0 {
		t.Fatalf("expected no updates, got %+v", summary)
	}

	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignPrice != nil {
		t.Fatalf("expected no campaign price, got %s", got.CampaignPrice.String())
	}
}

func TestDiscountEngineFutureRuleNotApplied(t *testing.T) {
	db := newEngineTestDB(t, "engine_future")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	category := createEngineCategory(t, db, "vitamins")
	product := createEngineProduct(t, db, "preorder-deal", category.ID, "NutriCore", 100)

	startsAt := now.Add(time.Hour)
	endsAt := now.Add(24 * time.Hour)
	createEngineRule(t, db, models.DiscountRule{
		Name:         "starts later",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  strconv.FormatUint(uint64(category.ID), 10),
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(15),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
		IsActive:     true,
	})

	summary, err := newEngineForTest(db, now).Run()
	if err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	if summary.ProductsUpdated != 0 {
		t.Fatalf("expected future rule to be ignored, got %+v", summary)
	}
	got := loadEngineProduct(t, db, product.ID)
	if got.CampaignPrice != nil {
		t.Fatalf("expected no campaign price, got %s", got.CampaignPrice.String())
	}
}
