package main

import (
	"strconv"
	"time"

	"github.com/pharmadirect/internal/config"
	"github.com/pharmadirect/internal/constants"
	"github.com/pharmadirect/internal/logger"
	"github.com/pharmadirect/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "感冒退烧", Slug: "cold-and-fever", SortOrder: 10},
		{Name: "维生素保健", Slug: "vitamins", SortOrder: 20},
		{Name: "皮肤护理", Slug: "skin-care", SortOrder: 30},
		{Name: "母婴用品", Slug: "baby-care", SortOrder: 40},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"cold-and-fever", "vitamins", "skin-care", "baby-care"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	money := func(v string) models.Money {
		m, err := models.NewMoneyFromString(v)
		if err != nil {
			stdLog.Fatalf("bad seed amount %q: %v", v, err)
		}
		return m
	}

	// 添加商品
	products := []models.Product{
		{
			CategoryID:   categoryIDs["cold-and-fever"],
			BrandName:    "Healwell",
			Slug:         "healwell-paracetamol-500",
			Name:         "Healwell 对乙酰氨基酚片 500mg",
			Description:  "用于缓解轻中度疼痛及退热。",
			SellingPrice: money("28.00"),
			MRP:          money("32.00"),
			Stock:        500,
			IsActive:     true,
			SortOrder:    10,
		},
		{
			CategoryID:           categoryIDs["cold-and-fever"],
			BrandName:            "Healwell",
			Slug:                 "healwell-amoxicillin-250",
			Name:                 "Healwell 阿莫西林胶囊 250mg",
			Description:          "处方抗生素，须凭处方购买。",
			SellingPrice:         money("45.00"),
			MRP:                  money("52.00"),
			Stock:                200,
			RequiresPrescription: true,
			IsActive:             true,
			SortOrder:            20,
		},
		{
			CategoryID:   categoryIDs["vitamins"],
			BrandName:    "NutriCore",
			Slug:         "nutricore-vitamin-c-1000",
			Name:         "NutriCore 维生素C咀嚼片 1000mg",
			Description:  "补充每日维生素C，增强抵抗力。",
			SellingPrice: money("89.00"),
			MRP:          money("109.00"),
			Stock:        300,
			IsActive:     true,
			SortOrder:    10,
		},
		{
			CategoryID:   categoryIDs["vitamins"],
			BrandName:    "NutriCore",
			Slug:         "nutricore-multivitamin-60",
			Name:         "NutriCore 复合维生素 60粒",
			Description:  "全面补充多种维生素与矿物质。",
			SellingPrice: money("129.00"),
			MRP:          money("159.00"),
			Stock:        250,
			IsActive:     true,
			SortOrder:    20,
		},
		{
			CategoryID:   categoryIDs["skin-care"],
			BrandName:    "PureDerm",
			Slug:         "purederm-moisturizer-100",
			Name:         "PureDerm 保湿修护霜 100g",
			Description:  "温和无刺激，适合敏感肌肤。",
			SellingPrice: money("68.00"),
			MRP:          money("78.00"),
			Stock:        400,
			IsActive:     true,
			SortOrder:    10,
		},
		{
			CategoryID:   categoryIDs["baby-care"],
			BrandName:    "TenderCare",
			Slug:         "tendercare-baby-lotion-200",
			Name:         "TenderCare 婴儿润肤乳 200ml",
			Description:  "新生儿可用，无香精配方。",
			SellingPrice: money("56.00"),
			MRP:          money("66.00"),
			Stock:        350,
			IsActive:     true,
			SortOrder:    10,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加折扣规则
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthLater := now.AddDate(0, 1, 0)
	rules := []models.DiscountRule{
		{
			Name:         "维生素季度促销",
			RuleType:     constants.RuleTypeCategory,
			TargetValue:  strconv.FormatUint(uint64(categoryIDs["vitamins"]), 10),
			DiscountType: constants.DiscountTypePercent,
			Amount:       money("20"),
			StartsAt:     &weekAgo,
			EndsAt:       &monthLater,
			Priority:     10,
			IsActive:     true,
			Description:  "维生素保健类全场8折",
		},
		{
			Name:         "NutriCore 品牌直降",
			RuleType:     constants.RuleTypeBrand,
			TargetValue:  "NutriCore",
			DiscountType: constants.DiscountTypeFixed,
			Amount:       money("10"),
			StartsAt:     &weekAgo,
			EndsAt:       &monthLater,
			Priority:     5,
			IsActive:     true,
			Description:  "NutriCore 品牌每件立减10元",
		},
	}
	for _, rule := range rules {
		var existing models.DiscountRule
		if err := models.DB.Where("name = ?", rule.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&rule).Error; err != nil {
				stdLog.Printf("Failed to create discount rule %s: %v", rule.Name, err)
			} else {
				stdLog.Printf("Created discount rule: %s", rule.Name)
			}
		} else {
			stdLog.Printf("Discount rule already exists: %s", rule.Name)
		}
	}

	// 添加优惠码
	coupons := []models.Coupon{
		{
			Code:          "WELCOME10",
			Type:          constants.DiscountTypePercent,
			Value:         money("10"),
			MinCartAmount: money("99"),
			MaxDiscount:   money("50"),
			PerUserLimit:  1,
			StartsAt:      &weekAgo,
			EndsAt:        &monthLater,
			IsActive:      true,
		},
		{
			Code:          "SAVE20",
			Type:          constants.DiscountTypeFixed,
			Value:         money("20"),
			MinCartAmount: money("150"),
			UsageLimit:    1000,
			StartsAt:      &weekAgo,
			EndsAt:        &monthLater,
			IsActive:      true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	// 添加首页轮播图
	banners := []models.Banner{
		{
			Name:      "维生素促销",
			Position:  constants.BannerPositionHome,
			Title:     "维生素保健 8 折起",
			Subtitle:  "限时活动，囤货正当时",
			Image:     "/uploads/banners/vitamins-sale.jpg",
			LinkURL:   "/category/vitamins",
			IsActive:  true,
			SortOrder: 10,
		},
	}
	for _, banner := range banners {
		var existing models.Banner
		if err := models.DB.Where("name = ?", banner.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&banner).Error; err != nil {
				stdLog.Printf("Failed to create banner %s: %v", banner.Name, err)
			} else {
				stdLog.Printf("Created banner: %s", banner.Name)
			}
		} else {
			stdLog.Printf("Banner already exists: %s", banner.Name)
		}
	}

	// 添加内容页
	posts := []models.Post{
		{
			Slug:        "about-us",
			Type:        constants.PostTypePage,
			Title:       "关于我们",
			Content:     "PharmaDirect 是一家提供正品药品与健康产品的在线药房。",
			IsPublished: true,
			PublishedAt: &now,
		},
		{
			Slug:        "how-to-upload-prescription",
			Type:        constants.PostTypeArticle,
			Title:       "如何上传处方",
			Summary:     "处方药购买前需要上传有效处方，本文介绍完整流程。",
			Content:     "登录账号后进入个人中心，选择“我的处方”并上传清晰的处方照片。",
			IsPublished: true,
			PublishedAt: &now,
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	stdLog.Printf("Seed finished")
}
