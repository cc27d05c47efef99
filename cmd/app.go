// Package cmd wires configuration, infrastructure, services and the
// HTTP server together and runs them until shutdown.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopcore/api"
	addressapi "shopcore/api/address"
	authapi "shopcore/api/auth"
	blogapi "shopcore/api/blog"
	cartapi "shopcore/api/cart"
	catalogapi "shopcore/api/catalog"
	couponapi "shopcore/api/coupon"
	"shopcore/api/health"
	orderapi "shopcore/api/order"
	reviewapi "shopcore/api/review"
	authapp "shopcore/application/auth"
	blogapp "shopcore/application/blog"
	cartapp "shopcore/application/cart"
	catalogapp "shopcore/application/catalog"
	couponapp "shopcore/application/coupon"
	customerapp "shopcore/application/customer"
	orderapp "shopcore/application/order"
	reviewapp "shopcore/application/review"
	"shopcore/config"
	"shopcore/domain/order"
	"shopcore/infrastructure/identity"
	"shopcore/infrastructure/mail"
	"shopcore/infrastructure/messaging/kafka"
	"shopcore/infrastructure/payment"
	"shopcore/infrastructure/persistence/mysql"
	"shopcore/infrastructure/persistence/retry"
	"shopcore/infrastructure/redisx"
	"shopcore/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// App holds everything that needs explicit shutdown.
type App struct {
	config       *config.Config
	server       *http.Server
	outboxWorker *mysql.OutboxWorker
	kafkaCloser  func() error
}

// NewApp builds the full dependency graph from configuration.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := mysql.Connect(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if !cfg.IsProduction() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	redisClient := redisx.NewClient(&cfg.Redis)

	// Repositories.
	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	manufacturerRepo := mysql.NewManufacturerRepository(db)
	publisherRepo := mysql.NewPublisherRepository(db)
	stockRepo := mysql.NewStockMovementRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	couponRepo := mysql.NewCouponRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	postRepo := mysql.NewPostRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	likeRepo := mysql.NewLikeRepository(db)
	followRepo := mysql.NewFollowRepository(db)
	outboxRepo := mysql.NewOutboxRepository(db)

	uow := mysql.NewUnitOfWork(db)
	uow.SetRetryConfig(retry.FromAppConfig(cfg))

	// External collaborators.
	gateway := payment.NewHTTPGateway(&cfg.Payment)
	provider := identity.NewHTTPProvider(&cfg.Identity)
	authStore := redisx.NewAuthStore(redisClient, cfg.Auth.OTPTTL, cfg.Auth.ResetTokenTTL)
	mailer := &mail.LoggingMailer{}

	deliveryCharge, err := decimal.NewFromString(cfg.Order.DefaultDeliveryCharge)
	if err != nil {
		return nil, fmt.Errorf("invalid default delivery charge: %w", err)
	}

	// Application services.
	orderService := orderapp.NewService(
		orderRepo, productRepo, couponRepo, stockRepo, cartRepo, addressRepo,
		uow, gateway, order.NewNumberGenerator(time.Now().UnixNano()), deliveryCharge,
	)
	catalogService := catalogapp.NewService(
		productRepo, categoryRepo, manufacturerRepo, publisherRepo, stockRepo, uow,
	)
	couponService := couponapp.NewService(couponRepo)
	cartService := cartapp.NewService(cartRepo, productRepo)
	customerService := customerapp.NewService(addressRepo)
	reviewService := reviewapp.NewService(reviewRepo, productRepo)
	blogService := blogapp.NewService(postRepo, commentRepo, likeRepo, followRepo)
	authService := authapp.NewService(provider, authStore, mailer)

	// Outbox relay. Without brokers configured, events only go to the log.
	var publisher mysql.OutboxPublisher = &mysql.LoggingOutboxPublisher{}
	var kafkaCloser func() error
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.EventTopic != "" {
		kafkaPublisher := kafka.NewEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.EventTopic)
		publisher = kafkaPublisher
		kafkaCloser = kafkaPublisher.Close
	}

	outboxWorker, err := mysql.NewOutboxWorker(
		outboxRepo, publisher,
		cfg.Outbox.PollInterval, cfg.Outbox.BatchSize, cfg.Outbox.MaxRetries,
	)
	if err != nil {
		return nil, err
	}

	// HTTP layer.
	router := api.NewRouter(cfg, api.Controllers{
		Health:  health.NewController(cfg, sqlDB, redisClient),
		Auth:    authapi.NewController(authService),
		Catalog: catalogapi.NewController(catalogService),
		Order:   orderapi.NewController(orderService),
		Coupon:  couponapi.NewController(couponService),
		Cart:    cartapi.NewController(cartService),
		Address: addressapi.NewController(customerService),
		Review:  reviewapi.NewController(reviewService),
		Blog:    blogapi.NewController(blogService),
	})
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config:       cfg,
		server:       server,
		outboxWorker: outboxWorker,
		kafkaCloser:  kafkaCloser,
	}, nil
}

// Run serves HTTP and relays outbox events until SIGINT or SIGTERM.
func (a *App) Run() error {
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	go func() {
		if err := a.outboxWorker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Outbox worker stopped", zap.Error(err))
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("env", a.config.App.Env),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-sigChan:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	if a.kafkaCloser != nil {
		if err := a.kafkaCloser(); err != nil {
			logger.Error("Kafka writer close failed", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
	return logger.Sync()
}
