package provider

import (
	"github.com/pharmadirect/internal/cache"
	"github.com/pharmadirect/internal/config"
	"github.com/pharmadirect/internal/logger"
	"github.com/pharmadirect/internal/models"
	"github.com/pharmadirect/internal/queue"
	"github.com/pharmadirect/internal/repository"
	"github.com/pharmadirect/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	CategoryRepo     repository.CategoryRepository
	ProductRepo      repository.ProductRepository
	DiscountRuleRepo repository.DiscountRuleRepository
	CouponRepo       repository.CouponRepository
	CouponUsageRepo  repository.CouponUsageRepository
	BannerRepo       repository.BannerRepository
	PostRepo         repository.PostRepository
	PrescriptionRepo repository.PrescriptionRepository

	// Services
	AuthService              *service.AuthService
	UserAuthService          *service.UserAuthService
	CategoryService          *service.CategoryService
	ProductService           *service.ProductService
	DiscountRuleAdminService *service.DiscountRuleAdminService
	DiscountEngineService    *service.DiscountEngineService
	CouponService            *service.CouponService
	CouponAdminService       *service.CouponAdminService
	BannerService            *service.BannerService
	PostService              *service.PostService
	PrescriptionService      *service.PrescriptionService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.DiscountRuleRepo = repository.NewDiscountRuleRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.PrescriptionRepo = repository.NewPrescriptionRepository(db)
}

func (c *Container) initServices() {
	clock := service.SystemClock()

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, clock)
	c.DiscountRuleAdminService = service.NewDiscountRuleAdminService(c.DiscountRuleRepo)
	c.DiscountEngineService = service.NewDiscountEngineService(c.DiscountRuleRepo, c.ProductRepo, clock)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo, clock)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo, c.CouponUsageRepo)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.PostService = service.NewPostService(c.PostRepo, clock)
	c.PrescriptionService = service.NewPrescriptionService(c.PrescriptionRepo, clock)
}
