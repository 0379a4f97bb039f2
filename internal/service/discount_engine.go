package service

import (
	"fmt"
	"time"

	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/logger"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountEngineService 折扣引擎
// 负责把生效中的 category/brand 折扣规则批量应用为商品活动价，
// 并清理已过期的活动价。所有写入按稳定谓词幂等，允许并发触发。
type DiscountEngineService struct {
	ruleRepo    repository.DiscountRuleRepository
	productRepo repository.ProductRepository
	clock       Clock
}

// NewDiscountEngineService 创建折扣引擎
func NewDiscountEngineService(ruleRepo repository.DiscountRuleRepository, productRepo repository.ProductRepository, clock Clock) *DiscountEngineService {
	if clock == nil {
		clock = SystemClock()
	}
	return &DiscountEngineService{
		ruleRepo:    ruleRepo,
		productRepo: productRepo,
		clock:       clock,
	}
}

// RunSummary 引擎单次执行结果
type RunSummary struct {
	Success         bool     `json:"success"`
	RulesProcessed  int      `json:"rules_processed"`
	ProductsUpdated int      `json:"products_updated"`
	ProductsCleared int      `json:"products_cleared"`
	Errors          []string `json:"errors"`
}

// campaignCandidate 商品的候选活动价（冲突裁决后每个商品保留一个）
type campaignCandidate struct {
	ruleID   uint
	priority int
	price    models.Money
	startsAt time.Time
	endsAt   time.Time
}

// Run 执行一次完整的引擎批处理：先清理过期活动价，再应用生效规则。
// 单条规则的候选集读取或单个商品的写入失败只记入 Errors，不中断整体执行；
// 规则列表本身读不出来视为基础设施故障，整体失败。
func (s *DiscountEngineService) Run() (*RunSummary, error) {
	now := s.clock.Now()
	summary := &RunSummary{Errors: []string{}}

	cleared, err := s.productRepo.ClearExpiredCampaigns(now)
	if err != nil {
		return nil, err
	}
	summary.ProductsCleared = int(cleared)

	rules, err := s.ruleRepo.ListActive(now)
	if err != nil {
		return nil, err
	}

	// 先跨规则裁决出每个商品的最终活动价，再统一写回，
	// 保证同一商品被多条规则命中时只落一次赢家的价格。
	winners := map[uint]campaignCandidate{}
	current := map[uint]*models.Product{}
	for i := range rules {
		rule := &rules[i]
		if rule.RuleType != constants.RuleTypeCategory && rule.RuleType != constants.RuleTypeBrand {
			// cart_amount / user_group 规则在结算时评估，批处理不落价
			continue
		}
		products, err := s.productRepo.ListCandidatesForRule(rule)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("rule %d (%s): %v", rule.ID, rule.Name, err))
			continue
		}
		summary.RulesProcessed++

		startsAt := now
		if rule.StartsAt != nil && rule.StartsAt.After(now) {
			startsAt = *rule.StartsAt
		}
		for i := range products {
			product := &products[i]
			candidate := campaignCandidate{
				ruleID:   rule.ID,
				priority: rule.Priority,
				price:    computeCampaignPrice(product.SellingPrice, rule),
				startsAt: startsAt,
				endsAt:   *rule.EndsAt,
			}
			if existing, ok := winners[product.ID]; !ok || candidateBeats(candidate, existing) {
				winners[product.ID] = candidate
			}
			current[product.ID] = product
		}
	}

	for productID, winner := range winners {
		product := current[productID]
		// 价格未变化则跳过写入，避免无意义的 updated_at 抖动
		if product.CampaignPrice != nil && product.CampaignPrice.Decimal.Equal(winner.price.Decimal) {
			continue
		}
		if err := s.productRepo.SetCampaign(productID, winner.price, winner.startsAt, winner.endsAt); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("product %d: %v", productID, err))
			continue
		}
		summary.ProductsUpdated++
	}

	summary.Success = len(summary.Errors) == 0
	logger.Infow("discount_engine_run_completed",
		"rules_processed", summary.RulesProcessed,
		"products_updated", summary.ProductsUpdated,
		"products_cleared", summary.ProductsCleared,
		"errors", len(summary.Errors),
	)
	return summary, nil
}

// ClearExpired 清理已过期的活动价，返回清理条数
func (s *DiscountEngineService) ClearExpired() (int64, error) {
	return s.productRepo.ClearExpiredCampaigns(s.clock.Now())
}

// computeCampaignPrice 按规则计算活动价，下限为 0
func computeCampaignPrice(sellingPrice models.Money, rule *models.DiscountRule) models.Money {
	base := sellingPrice.Decimal
	var discounted decimal.Decimal
	switch rule.DiscountType {
	case constants.DiscountTypeFixed:
		discounted = base.Sub(rule.Amount.Decimal)
	case constants.DiscountTypePercent:
		percent := decimal.NewFromInt(100).Sub(rule.Amount.Decimal)
		discounted = base.Mul(percent).Div(decimal.NewFromInt(100))
	default:
		discounted = base
	}
	if discounted.LessThan(decimal.Zero) {
		discounted = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discounted)
}

// candidateBeats 冲突裁决：优先级高者胜，同级取更低价格，再同取规则ID小者，
// 保证重复执行的结果确定。
func candidateBeats(a, b campaignCandidate) bool {
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	if !a.price.Decimal.Equal(b.price.Decimal) {
		return a.price.Decimal.LessThan(b.price.Decimal)
	}
	return a.ruleID < b.ruleID
}
