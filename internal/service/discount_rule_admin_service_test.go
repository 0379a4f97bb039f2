package service

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"
)

func validRuleInput(now time.Time) DiscountRuleInput {
	startsAt := now
	endsAt := now.Add(24 * time.Hour)
	return DiscountRuleInput{
		Name:         "spring sale",
		RuleType:     constants.RuleTypeCategory,
		TargetValue:  "3",
		DiscountType: constants.DiscountTypePercent,
		Amount:       moneyFromInt(15),
		StartsAt:     &startsAt,
		EndsAt:       &endsAt,
	}
}

func TestValidateDiscountRuleInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	input := validRuleInput(now)
	if err := validateDiscountRuleInput(&input); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*DiscountRuleInput)
	}{
		{"empty name", func(in *DiscountRuleInput) { in.Name = "  " }},
		{"unknown rule type", func(in *DiscountRuleInput) { in.RuleType = "bogus" }},
		{"category without target", func(in *DiscountRuleInput) { in.TargetValue = "" }},
		{"brand without target", func(in *DiscountRuleInput) {
			in.RuleType = constants.RuleTypeBrand
			in.TargetValue = " "
		}},
		{"unknown discount type", func(in *DiscountRuleInput) { in.DiscountType = "bogo" }},
		{"zero amount", func(in *DiscountRuleInput) { in.Amount = moneyFromInt(0) }},
		{"percent over 100", func(in *DiscountRuleInput) { in.Amount = moneyFromInt(120) }},
		{"missing starts at", func(in *DiscountRuleInput) { in.StartsAt = nil }},
		{"missing ends at", func(in *DiscountRuleInput) { in.EndsAt = nil }},
		{"window inverted", func(in *DiscountRuleInput) {
			earlier := in.StartsAt.Add(-time.Hour)
			in.EndsAt = &earlier
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRuleInput(now)
			tc.mutate(&in)
			if err := validateDiscountRuleInput(&in); !errors.Is(err, ErrRuleInvalid) {
				t.Fatalf("expected ErrRuleInvalid, got %v", err)
			}
		})
	}
}

func TestValidateDiscountRuleInputNormalizes(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	input := validRuleInput(now)
	input.Name = "  spring sale  "
	input.RuleType = " Category "
	input.DiscountType = " PERCENT "
	input.TargetValue = " 3 "

	if err := validateDiscountRuleInput(&input); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if input.Name != "spring sale" {
		t.Fatalf("name not trimmed: %q", input.Name)
	}
	if input.RuleType != constants.RuleTypeCategory {
		t.Fatalf("rule type not normalized: %q", input.RuleType)
	}
	if input.DiscountType != constants.DiscountTypePercent {
		t.Fatalf("discount type not normalized: %q", input.DiscountType)
	}
	if input.TargetValue != "3" {
		t.Fatalf("target value not trimmed: %q", input.TargetValue)
	}
}

func TestDiscountRuleAdminCreateInactivePersists(t *testing.T) {
	db := newEngineTestDB(t, "rule_admin_inactive")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewDiscountRuleAdminService(repository.NewDiscountRuleRepository(db))

	category := createEngineCategory(t, db, "vitamins")
	product := createEngineProduct(t, db, "vitamin-c", category.ID, "NutriCore", 100)

	input := validRuleInput(now)
	input.TargetValue = strconv.FormatUint(uint64(category.ID), 10)
	inactive := false
	input.IsActive = &inactive

	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	var stored models.DiscountRule
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload rule failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("rule created as disabled was stored active")
	}

	engine := newEngineForTest(db, now)
	if _, err := engine.Run(); err != nil {
		t.Fatalf("engine run error: %v", err)
	}
	reloaded := loadEngineProduct(t, db, product.ID)
	if reloaded.CampaignPrice != nil {
		t.Fatalf("disabled rule set campaign price %v", reloaded.CampaignPrice)
	}
}

func TestValidateDiscountRuleInputCartAmountNeedsNoTarget(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	input := validRuleInput(now)
	input.RuleType = constants.RuleTypeCartAmount
	input.TargetValue = ""
	input.MinCartAmount = moneyFromInt(200)

	if err := validateDiscountRuleInput(&input); err != nil {
		t.Fatalf("cart_amount rule without target rejected: %v", err)
	}
}
