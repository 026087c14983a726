package main

import (
	"carwash-api/internal/application/service"
	"carwash-api/internal/config"
	"carwash-api/internal/infrastructure/database"
	"carwash-api/internal/infrastructure/events"
	"carwash-api/internal/infrastructure/metrics"
	"carwash-api/internal/infrastructure/repository"
	"carwash-api/internal/presentation/http/handler"
	"carwash-api/internal/presentation/http/routes"
	"carwash-api/pkg/exchange"
	"carwash-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := config.NewLogger(cfg.Log)

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed vehicle categories and the initial admin
	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn().Err(err).Msg("failed to seed default data")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	vehicleCategoryRepo := repository.NewVehicleCategoryRepository(db)
	washServiceRepo := repository.NewWashServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	earningRepo := repository.NewEarningRepository(db)
	productRepo := repository.NewProductRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Live VES reference rate source
	rateClient := exchange.NewClient(cfg.Exchange.RateURL)

	// KPI counters exposed on /metrics
	kpi := metrics.NewPrometheusEmitter()

	// Optional broker push. Without a broker URL, notifications are persisted
	// but not pushed.
	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.Broker.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Broker.URL)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to broker, notification push disabled")
		} else {
			publisher = amqpPublisher
			defer amqpPublisher.Close()
		}
	}

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, publisher, logger)
	paymentService := service.NewPaymentService(paymentRepo, rateClient, kpi)
	earningService := service.NewEarningService(earningRepo, kpi)
	orderService := service.NewOrderService(
		txManager,
		orderRepo,
		vehicleRepo,
		washServiceRepo,
		paymentService,
		earningService,
		notificationService,
		kpi,
		logger,
	)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, vehicleCategoryRepo)
	catalogService := service.NewCatalogService(washServiceRepo)
	productService := service.NewProductService(productRepo)
	expenseService := service.NewExpenseService(expenseRepo, rateClient)
	dashboardService := service.NewDashboardService(analyticsRepo)
	reportService := service.NewReportService(orderRepo, earningRepo, userRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Order:        handler.NewOrderHandler(orderService, reportService),
		Earning:      handler.NewEarningHandler(earningService, reportService),
		Vehicle:      handler.NewVehicleHandler(vehicleService),
		Catalog:      handler.NewCatalogHandler(catalogService),
		Product:      handler.NewProductHandler(productService),
		Expense:      handler.NewExpenseHandler(expenseService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Notification: handler.NewNotificationHandler(notificationService),
		Exchange:     handler.NewExchangeHandler(rateClient),
	}

	router := routes.Setup(cfg, logger, jwtManager, handlers)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info().
		Str("env", cfg.App.Env).
		Str("port", port).
		Msgf("starting %s", cfg.App.Name)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
