package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/shopspring/decimal"
)

func TestProductServiceCreateValidation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newEngineTestDB(t, "product_create")
	category := createEngineCategory(t, db, "vitamins")
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		FixedClock{T: now},
	)

	valid := ProductInput{
		CategoryID:   category.ID,
		BrandName:    "NutriCore",
		Slug:         "vitamin-c",
		Name:         "Vitamin C 1000mg",
		SellingPrice: moneyFromInt(89),
		Stock:        10,
	}
	product, err := svc.Create(valid)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if product.ID == 0 {
		t.Fatalf("expected persisted product")
	}

	dup := valid
	if _, err := svc.Create(dup); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	missingCategory := valid
	missingCategory.Slug = "vitamin-d"
	missingCategory.CategoryID = 999
	if _, err := svc.Create(missingCategory); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	freePrice := valid
	freePrice.Slug = "vitamin-e"
	freePrice.SellingPrice = moneyFromInt(0)
	if _, err := svc.Create(freePrice); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for zero price, got %v", err)
	}

	negativeStock := valid
	negativeStock.Slug = "vitamin-k"
	negativeStock.Stock = -1
	if _, err := svc.Create(negativeStock); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for negative stock, got %v", err)
	}
}

func TestProductServiceEffectivePrice(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newEngineTestDB(t, "product_effective")
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		FixedClock{T: now},
	)

	campaignPrice := moneyFromInt(80)
	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(time.Hour)
	product := &models.Product{
		SellingPrice:     moneyFromInt(100),
		CampaignPrice:    &campaignPrice,
		CampaignStartsAt: &startsAt,
		CampaignEndsAt:   &endsAt,
	}
	if got := svc.EffectivePrice(product); !got.Decimal.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("expected campaign price inside window, got %s", got.String())
	}

	expiredEnd := now.Add(-time.Minute)
	product.CampaignEndsAt = &expiredEnd
	if got := svc.EffectivePrice(product); !got.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected base price outside window, got %s", got.String())
	}

	product.CampaignPrice = nil
	if got := svc.EffectivePrice(product); !got.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected base price without campaign, got %s", got.String())
	}
}

func TestProductServiceUpdatePreservesCampaignFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	db := newEngineTestDB(t, "product_update")
	category := createEngineCategory(t, db, "vitamins")
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		FixedClock{T: now},
	)

	product, err := svc.Create(ProductInput{
		CategoryID:   category.ID,
		Slug:         "multivitamin",
		Name:         "Multivitamin",
		SellingPrice: moneyFromInt(120),
		Stock:        5,
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	campaignPrice := moneyFromInt(90)
	startsAt := now.Add(-time.Hour)
	endsAt := now.Add(time.Hour)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(map[string]any{
		"campaign_price":     campaignPrice,
		"campaign_starts_at": startsAt,
		"campaign_ends_at":   endsAt,
	}).Error; err != nil {
		t.Fatalf("seed campaign failed: %v", err)
	}

	updated, err := svc.Update(product.ID, ProductInput{
		CategoryID:   category.ID,
		Slug:         "multivitamin",
		Name:         "Multivitamin 60 tablets",
		SellingPrice: moneyFromInt(130),
		Stock:        8,
	})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.CampaignPrice == nil || !updated.CampaignPrice.Decimal.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected campaign price preserved across update, got %+v", updated.CampaignPrice)
	}
}
