package provider

import (
	"github.com/jamolstroy/admin-api/internal/cache"
	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/queue"
	"github.com/jamolstroy/admin-api/internal/repository"
	"github.com/jamolstroy/admin-api/internal/service"
)

// Container wires repositories and services for the HTTP layer,
// the bot and the worker.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	LoginSessionRepo repository.LoginSessionRepository
	ProductRepo      repository.ProductRepository
	CategoryRepo     repository.CategoryRepository
	OrderRepo        repository.OrderRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthService      *service.AuthService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	OrderService     *service.OrderService
	DashboardService *service.DashboardService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
	c.UserRepo = repository.NewUserRepository(db)
	c.LoginSessionRepo = repository.NewLoginSessionRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.LoginSessionRepo, c.QueueClient)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
