package router

import (
	"fmt"
	"strings"

	"github.com/pharmadirect/internal/cache"
	"github.com/pharmadirect/internal/config"
	adminhandlers "github.com/pharmadirect/internal/http/handlers/admin"
	publichandlers "github.com/pharmadirect/internal/http/handlers/public"
	"github.com/pharmadirect/internal/http/response"
	"github.com/pharmadirect/internal/logger"
	"github.com/pharmadirect/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pd"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的处方和商品图片）
	r.Static("/uploads", "./uploads")

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/banners", publicHandler.GetBanners)
			public.GET("/posts", publicHandler.GetPosts)
			public.GET("/posts/:slug", publicHandler.GetPost)
		}

		// 购物车优惠券试算（游客可用）
		apiV1.POST("/coupons/apply", publicHandler.ApplyCoupon)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.UserMe)
			user.POST("/prescriptions", publicHandler.SubmitPrescription)
			user.GET("/prescriptions", publicHandler.GetMyPrescriptions)
			user.GET("/prescriptions/:id", publicHandler.GetMyPrescription)
		}

		// 外部调度触发（共享密钥鉴权）
		cron := apiV1.Group("/cron")
		cron.Use(CronSecretMiddleware(cfg.Engine.CronSecret))
		{
			cron.POST("/discount-engine", adminHandler.RunDiscountEngine)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.GET("/me", adminHandler.Me)
				authorized.PUT("/password", adminHandler.ChangePassword)

				// 分类管理
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 折扣规则管理
				authorized.GET("/discount-rules", adminHandler.GetDiscountRules)
				authorized.GET("/discount-rules/:id", adminHandler.GetDiscountRule)
				authorized.POST("/discount-rules", adminHandler.CreateDiscountRule)
				authorized.PUT("/discount-rules/:id", adminHandler.UpdateDiscountRule)
				authorized.DELETE("/discount-rules/:id", adminHandler.DeleteDiscountRule)

				// 折扣引擎
				authorized.POST("/discount-engine/run", adminHandler.RunDiscountEngine)
				authorized.POST("/discount-engine/clear-expired", adminHandler.ClearExpiredCampaigns)

				// 优惠码管理
				authorized.GET("/coupons", adminHandler.GetCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetCoupon)
				authorized.GET("/coupons/:id/usages", adminHandler.GetCouponUsages)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

				// Banner 管理
				authorized.GET("/banners", adminHandler.GetAdminBanners)
				authorized.POST("/banners", adminHandler.CreateBanner)
				authorized.PUT("/banners/:id", adminHandler.UpdateBanner)
				authorized.DELETE("/banners/:id", adminHandler.DeleteBanner)

				// 内容页管理
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.GET("/posts/:id", adminHandler.GetAdminPost)
				authorized.POST("/posts", adminHandler.CreatePost)
				authorized.PUT("/posts/:id", adminHandler.UpdatePost)
				authorized.DELETE("/posts/:id", adminHandler.DeletePost)

				// 处方单审核
				authorized.GET("/prescriptions", adminHandler.GetAdminPrescriptions)
				authorized.GET("/prescriptions/:id", adminHandler.GetAdminPrescription)
				authorized.POST("/prescriptions/:id/review", adminHandler.ReviewPrescription)
			}
		}
	}

	return r
}
