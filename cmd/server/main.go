// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saileshbalu94/ecommerce-ai/internal/ai"
	"github.com/saileshbalu94/ecommerce-ai/internal/cache"
	"github.com/saileshbalu94/ecommerce-ai/internal/config"
	"github.com/saileshbalu94/ecommerce-ai/internal/database"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/render"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/router"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := config.NewLogger(cfg)
	logrus.SetOutput(logger.Out)
	logrus.SetFormatter(logger.Formatter)
	logrus.SetLevel(logger.Level)

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db)

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
	}

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize i18n")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := newCache(cfg, logger)
	defer store.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	deps, err := wire(cfg, db, store, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to wire services")
	}
	r := router.Initialize(ctx, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func wire(cfg *config.Config, db *gorm.DB, store cache.Cache, logger *logrus.Logger) (router.Dependencies, error) {
	contents := repository.NewContentRepository(db)
	profiles := repository.NewProfileRepository(db)
	voices := repository.NewBrandVoiceRepository(db)
	campaigns := repository.NewCampaignRepository(db)

	storage, err := services.NewStorageService(cfg.Storage, logger)
	if err != nil {
		return router.Dependencies{}, err
	}

	gateway := ai.NewGateway(newProvider(cfg.AI, logger), ai.GatewayConfig{
		TextModel:   cfg.AI.DefaultModel,
		VisionModel: cfg.AI.VisionModel,
	}, logger)

	profileService := services.NewProfileService(profiles, contents, logger)
	brandVoiceService := services.NewBrandVoiceService(voices, store, time.Duration(cfg.Redis.BrandVoiceTTL)*time.Second, logger)

	return router.Dependencies{
		Config: cfg,
		Logger: logger,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Audits:      repository.NewAuditRepository(db),
		Auth:        services.NewAuthService(cfg.Supabase, profileService, logger),
		Content:     services.NewContentService(contents, gateway, profileService, render.New(), logger),
		Generation:  services.NewGenerationService(gateway, brandVoiceService, profileService, logger),
		BrandVoices: brandVoiceService,
		Campaigns:   services.NewCampaignService(campaigns, logger),
		Profiles:    profileService,
		Billing:     services.NewBillingService(cfg.Stripe, profileService, logger),
		Images:      storage,
	}, nil
}

// newProvider falls back to a provider that fails every call, so the
// service still starts without an API key.
func newProvider(cfg config.AIConfig, logger *logrus.Logger) ai.Provider {
	if !cfg.Configured() {
		logger.Warn("OPENAI_API_KEY not set, generation endpoints will fail")
		return ai.Unconfigured()
	}
	provider, err := ai.NewOpenAIProvider(ai.OpenAISettings{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout(),
	})
	if err != nil {
		logger.WithError(err).Error("Failed to create generation provider")
		return ai.Unconfigured()
	}
	return provider
}

func newCache(cfg *config.Config, logger *logrus.Logger) cache.Cache {
	if !cfg.Redis.Enabled() {
		return cache.NewMemoryCache()
	}
	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, using in-memory cache")
		return cache.NewMemoryCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.WithError(err).Warn("Redis ping failed, using in-memory cache")
		redisCache.Close()
		return cache.NewMemoryCache()
	}
	return redisCache
}
