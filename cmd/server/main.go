package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coin-desk.backend/internal/config"
	"coin-desk.backend/internal/infrastructure/events"
	"coin-desk.backend/internal/infrastructure/jobs"
	"coin-desk.backend/internal/infrastructure/pricing"
	"coin-desk.backend/internal/infrastructure/repositories"
	"coin-desk.backend/internal/interfaces/http/handlers"
	"coin-desk.backend/internal/interfaces/http/middleware"
	"coin-desk.backend/internal/usecases"
	"coin-desk.backend/pkg/jwt"
	"coin-desk.backend/pkg/logger"
	"coin-desk.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newIntentStore = redis.NewIntentStore
	runServer      = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB       = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize event feed and repositories
	feed := events.NewFeed()
	profileRepo := repositories.NewProfileRepository(db, feed)
	txRepo := repositories.NewTransactionRepository(db, feed)
	tradeRepo := repositories.NewTradeRepository(db, feed)
	walletRepo := repositories.NewWalletRepository(db, feed)
	uow := repositories.NewUnitOfWork(db)

	// Initialize withdrawal intent store
	intentStore, err := newIntentStore(cfg.Security.IntentEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize intent store: %w", err)
	}

	// Initialize the market price source. Without a feed URL the static
	// quote table is served.
	var upstream pricing.Source
	if cfg.PriceFeed.URL != "" {
		upstream = pricing.NewHTTPSource(cfg.PriceFeed.URL, cfg.PriceFeed.APIKey, nil)
	} else {
		upstream = pricing.NewDefaultStaticSource()
	}
	priceSource := pricing.NewCachedSource(upstream, cfg.PriceFeed.RefreshInterval)

	// Initialize usecases
	ledgerUsecase := usecases.NewLedgerUsecase(profileRepo, txRepo)
	authUsecase := usecases.NewAuthUsecase(profileRepo, jwtService)
	depositUsecase := usecases.NewDepositUsecase(txRepo, profileRepo, walletRepo, ledgerUsecase, uow)
	tradingUsecase := usecases.NewTradingUsecase(tradeRepo, txRepo, profileRepo, ledgerUsecase, priceSource, uow)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(profileRepo, txRepo, intentStore)
	transferUsecase := usecases.NewTransferUsecase(profileRepo, txRepo, ledgerUsecase, uow)
	adminUsecase := usecases.NewAdminUsecase(profileRepo, txRepo, tradeRepo, walletRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	walletHandler := handlers.NewWalletHandler(ledgerUsecase, depositUsecase)
	tradeHandler := handlers.NewTradeHandler(tradingUsecase)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalUsecase, transferUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, depositUsecase)
	marketHandler := handlers.NewMarketHandler(priceSource)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refreshJob := jobs.NewPriceRefreshJob(priceSource, feed, cfg.PriceFeed.RefreshInterval)
	go refreshJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		walletHandler:     walletHandler,
		tradeHandler:      tradeHandler,
		withdrawalHandler: withdrawalHandler,
		adminHandler:      adminHandler,
		marketHandler:     marketHandler,
		authMiddleware:    authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		refreshJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Coin-Desk Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
