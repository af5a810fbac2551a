package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kislikjeka/moonwallet/internal/infra/gateway/node"
	"github.com/kislikjeka/moonwallet/internal/infra/gateway/push"
	"github.com/kislikjeka/moonwallet/internal/infra/postgres"
	infraRedis "github.com/kislikjeka/moonwallet/internal/infra/redis"
	"github.com/kislikjeka/moonwallet/internal/platform/account"
	"github.com/kislikjeka/moonwallet/internal/platform/activity"
	"github.com/kislikjeka/moonwallet/internal/platform/addressbook"
	"github.com/kislikjeka/moonwallet/internal/platform/settings"
	"github.com/kislikjeka/moonwallet/internal/platform/user"
	"github.com/kislikjeka/moonwallet/internal/platform/wallet"
	"github.com/kislikjeka/moonwallet/internal/transport/httpapi"
	"github.com/kislikjeka/moonwallet/internal/transport/httpapi/handler"
	"github.com/kislikjeka/moonwallet/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/moonwallet/pkg/config"
	"github.com/kislikjeka/moonwallet/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting MoonWallet daemon",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize database connection pool
	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize Redis client for balance caching
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Initialize node gateway and push channel dialer
	nodeClient := node.NewClient(cfg.NodeAPIURL, log)
	pushDialer := push.NewDialer(cfg.NodeWSURL, log)
	balanceCache := infraRedis.NewBalanceCache(redisClient, log)

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db.Pool)
	userRepo := postgres.NewUserRepository(db.Pool)
	addressBookRepo := postgres.NewAddressBookRepository(db.Pool)
	settingsRepo := postgres.NewSettingsRepository(db.Pool)

	// Initialize services
	userSvc := user.NewService(userRepo, log)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)
	accountSvc := account.NewService(accountRepo)
	addressBookSvc := addressbook.NewService(addressBookRepo)
	settingsSvc := settings.NewService(settingsRepo)

	activityCfg := &activity.Config{PollInterval: cfg.PollInterval}
	walletSvc := wallet.NewService(nodeClient, pushDialer, balanceCache, accountSvc, activityCfg, log)
	walletSvc.Start(ctx)
	log.Info("Wallet service initialized", "poll_interval", cfg.PollInterval)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	accountHandler := handler.NewAccountHandler(accountSvc, walletSvc)
	activityHandler := handler.NewActivityHandler(walletSvc)
	sessionHandler := handler.NewSessionHandler(walletSvc)
	walletHandler := handler.NewWalletHandler(walletSvc)
	addressBookHandler := handler.NewAddressBookHandler(addressBookSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	healthHandler := handler.NewHealthHandler(db)

	// Create JWT middleware
	jwtMiddleware := middleware.JWTMiddleware(jwtSvc)

	// Determine allowed origins for CORS
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:5174"} // Vite ports
	if cfg.IsProduction() {
		if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins = []string{origins}
		}
	}

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     allowedOrigins,
		AuthHandler:        authHandler,
		AccountHandler:     accountHandler,
		ActivityHandler:    activityHandler,
		SessionHandler:     sessionHandler,
		WalletHandler:      walletHandler,
		AddressBookHandler: addressBookHandler,
		SettingsHandler:    settingsHandler,
		HealthHandler:      healthHandler,
		JWTMiddleware:      jwtMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Discard the active account context and wipe secret material
	walletSvc.Deactivate()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
