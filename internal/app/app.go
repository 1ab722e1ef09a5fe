// Package app wires repositories, services and handlers into a Fiber app.
package app

import (
	"time"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-level resources the app is built from.
// Publisher may be nil when messaging is disabled.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Publisher services.EventPublisher
	Payments  payment.Provider
}

// New builds the Fiber app with every route registered.
func New(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := d.Config

	userRepo := repositories.NewGORMUserRepository(d.DB)
	addressRepo := repositories.NewGORMAddressRepository(d.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(d.DB)
	productRepo := repositories.NewGORMProductRepository(d.DB)
	cartRepo := repositories.NewGORMCartRepository(d.DB)
	orderRepo := repositories.NewGORMOrderRepository(d.DB)
	analyticsRepo := repositories.NewGORMAnalyticsRepository(d.DB)
	wishlistRepo := repositories.NewGORMWishlistRepository(d.DB)
	reviewRepo := repositories.NewGORMReviewRepository(d.DB)

	authService := services.NewAuthService(userRepo, cartRepo, cfg.JWT.Secret, cfg.JWT.Expiration, log.Named("auth"))
	userService := services.NewUserService(userRepo, addressRepo, authService, log.Named("users"))
	categoryService := services.NewCategoryService(categoryRepo, log.Named("categories"))
	productService := services.NewProductService(productRepo, categoryRepo, d.Metrics, log.Named("products"))
	cartService := services.NewCartService(cartRepo, productRepo, d.Metrics, log.Named("cart"))
	orderService := services.NewOrderService(orderRepo, cartRepo, addressRepo, d.Publisher, d.Metrics, log.Named("orders"))
	engagementService := services.NewEngagementService(wishlistRepo, reviewRepo, productRepo, log.Named("engagement"))
	paymentService := services.NewPaymentService(d.Payments, cfg.Payment.Currency, log.Named("payment"))
	analyticsService := services.NewAnalyticsService(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		ErrorHandler: handlers.ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + logger.RequestIDHeader,
	}))
	// Metrics wraps the logger so it sees the status the error handler wrote.
	app.Use(d.Metrics.Middleware())
	app.Use(logger.Middleware(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics.Handler())
	}

	guards := handlers.Guards{
		Auth:  middleware.AuthRequired(authService),
		Admin: middleware.AdminOnly(),
	}

	handlers.NewAuthHandler(authService).RegisterRoutes(app)

	api := app.Group("/api")
	handlers.NewProductHandler(productService).RegisterRoutes(api, guards)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api, guards)
	handlers.NewCartHandler(cartService).RegisterRoutes(api, guards)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, guards)
	handlers.NewUserHandler(userService).RegisterRoutes(api, guards)
	handlers.NewAdminHandler(authService, userService, analyticsService).RegisterRoutes(api, guards)
	handlers.NewEngagementHandler(engagementService).RegisterRoutes(api, guards)
	handlers.NewPaymentHandler(paymentService).RegisterRoutes(api, guards)

	return app
}
