package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	api "rentit-backend/cmd/api"
	authRepo "rentit-backend/internal/auth/repository"
	authUsecase "rentit-backend/internal/auth/usecase"
	productRepo "rentit-backend/internal/product/repository"
	productUsecase "rentit-backend/internal/product/usecase"
	"rentit-backend/pkg/config"
	"rentit-backend/pkg/database"
	"rentit-backend/pkg/logger"
	"rentit-backend/pkg/metrics"
	"rentit-backend/pkg/ratelimit"
	"rentit-backend/pkg/storage"
	"rentit-backend/pkg/token"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(0, false).Fatal("failed to load config", "error", err)
	}

	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	slog.SetDefault(log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Apply schema migrations before gorm touches the tables
	if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database handle", "error", err)
	}
	defer sqlDB.Close()

	// Login throttling is only enabled when redis is configured
	var limiter authUsecase.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, login limiter will fail open", "addr", cfg.Redis.Addr, "error", err)
		}
		limiter = ratelimit.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
		log.Info("login limiter enabled", "max_attempts", cfg.Login.MaxAttempts, "window", cfg.Login.Window)
	}

	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("failed to initialize image storage", "provider", cfg.Storage.Provider, "error", err)
	}

	tokens := token.NewJWTService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	productRepository := productRepo.NewGormProductRepository(db)

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(userRepository, tokens, limiter, log)
	productUc := productUsecase.NewProductUsecase(productRepository, images, cfg.Upload.MaxImageBytes, log)

	ping := func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
	handler := api.NewHandler(authUc, productUc, tokens, metrics.New(), ping, cfg, log)

	if err := handler.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal("server failed", "error", err)
	}
	log.Info("server stopped")
}
