package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"carwash-api/internal/config"
	"carwash-api/internal/domain/enum"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/internal/presentation/http/handler"
	"carwash-api/internal/presentation/http/middleware"
	"carwash-api/pkg/utils"
)

// Handlers bundles every HTTP handler for route registration
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Order        *handler.OrderHandler
	Earning      *handler.EarningHandler
	Vehicle      *handler.VehicleHandler
	Catalog      *handler.CatalogHandler
	Product      *handler.ProductHandler
	Expense      *handler.ExpenseHandler
	Dashboard    *handler.DashboardHandler
	Notification *handler.NotificationHandler
	Exchange     *handler.ExchangeHandler
}

// Setup wires all routes onto a new Gin engine
func Setup(cfg *config.Config, logger zerolog.Logger, jwtManager *utils.JWTManager, h *Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	limiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Duration > 0 {
		limiterCfg.RequestsPerSecond = float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration)
		limiterCfg.BurstSize = cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewClientRateLimiter(limiterCfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	admin := enum.RoleAdmin.String()
	supervisor := enum.RoleSupervisor.String()
	cashier := enum.RoleCashier.String()
	washer := enum.RoleWasher.String()

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		// Public surface: login, the client portal and the live rate
		v1.POST("/auth/login", h.Auth.Login)
		v1.GET("/portal/orders/:id", h.Order.Portal)
		v1.GET("/portal/orders/:id/receipt", h.Order.Receipt)
		v1.GET("/exchange-rate", h.Exchange.Rate)

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(jwtManager))
		{
			authed.POST("/auth/register", middleware.RequireRole(admin), h.Auth.Register)
			authed.GET("/profile", h.Auth.Profile)

			users := authed.Group("/users")
			{
				users.GET("", middleware.RequireRole(admin, supervisor), h.User.List)
				users.GET("/washers", h.User.ListWashers)
				users.GET("/:id", middleware.RequireRole(admin, supervisor), h.User.Get)
				users.PATCH("/:id", middleware.RequireRole(admin), h.User.Update)
				users.DELETE("/:id", middleware.RequireRole(admin), h.User.Delete)
			}

			orders := authed.Group("/orders")
			{
				orders.POST("", middleware.RequireRole(admin, supervisor, cashier), h.Order.Create)
				orders.GET("", h.Order.List)
				orders.GET("/:id", h.Order.Get)
				orders.PATCH("/:id/status", middleware.RequireRole(admin, supervisor, cashier), h.Order.Transition)
				orders.POST("/:id/payments", middleware.RequireRole(admin, cashier), h.Order.RecordPayment)
				orders.GET("/:id/receipt", h.Order.Receipt)
				orders.DELETE("/:id", middleware.RequireRole(admin), h.Order.Delete)
			}

			earnings := authed.Group("/earnings")
			{
				earnings.GET("/order/:orderId", middleware.RequireRole(admin, supervisor), h.Earning.ListByOrder)
				earnings.POST("/mark-paid", middleware.RequireRole(admin, supervisor), h.Earning.MarkPaid)
			}

			washers := authed.Group("/washers")
			washers.Use(middleware.RequireRole(admin, supervisor, washer))
			{
				washers.GET("/:washerId/earnings", h.Earning.ListByWasher)
				washers.GET("/:washerId/earnings/export", h.Earning.Export)
			}

			vehicles := authed.Group("/vehicles")
			{
				vehicles.POST("", h.Vehicle.Create)
				vehicles.GET("", h.Vehicle.List)
				vehicles.GET("/:id", h.Vehicle.Get)
				vehicles.PUT("/:id", h.Vehicle.Update)
				vehicles.DELETE("/:id", middleware.RequireRole(admin, supervisor), h.Vehicle.Delete)
			}

			categories := authed.Group("/vehicle-categories")
			{
				categories.GET("", h.Vehicle.ListCategories)
				categories.POST("", middleware.RequireRole(admin), h.Vehicle.CreateCategory)
				categories.PUT("/:id", middleware.RequireRole(admin), h.Vehicle.UpdateCategory)
				categories.DELETE("/:id", middleware.RequireRole(admin), h.Vehicle.DeleteCategory)
			}

			services := authed.Group("/services")
			{
				services.GET("", h.Catalog.List)
				services.GET("/:id", h.Catalog.Get)
				services.POST("", middleware.RequireRole(admin), h.Catalog.Create)
				services.PUT("/:id", middleware.RequireRole(admin), h.Catalog.Update)
				services.DELETE("/:id", middleware.RequireRole(admin), h.Catalog.Delete)
			}

			products := authed.Group("/products")
			products.Use(middleware.RequireRole(admin, supervisor))
			{
				products.POST("", h.Product.Create)
				products.GET("", h.Product.List)
				products.GET("/:id", h.Product.Get)
				products.PUT("/:id", h.Product.Update)
				products.POST("/:id/stock", h.Product.AdjustStock)
				products.DELETE("/:id", middleware.RequireRole(admin), h.Product.Delete)
			}

			expenses := authed.Group("/expenses")
			expenses.Use(middleware.RequireRole(admin, supervisor))
			{
				expenses.POST("", h.Expense.Create)
				expenses.GET("", h.Expense.List)
				expenses.GET("/:id", h.Expense.Get)
				expenses.PUT("/:id", h.Expense.Update)
				expenses.DELETE("/:id", middleware.RequireRole(admin), h.Expense.Delete)
			}

			authed.GET("/dashboard/stats", middleware.RequireRole(admin, supervisor), h.Dashboard.Stats)

			notifications := authed.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.POST("/mark-read", h.Notification.MarkRead)
				notifications.GET("/order/:orderId", h.Notification.ListByOrder)
			}
		}
	}

	return router
}
