// internal/router/router.go
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/config"
	"github.com/saileshbalu94/ecommerce-ai/internal/handlers"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
	"github.com/saileshbalu94/ecommerce-ai/internal/metrics"
	"github.com/saileshbalu94/ecommerce-ai/internal/middleware"
	"github.com/saileshbalu94/ecommerce-ai/internal/repository"
	"github.com/saileshbalu94/ecommerce-ai/internal/services"
	"github.com/saileshbalu94/ecommerce-ai/internal/utils"
)

// Version is reported by /health. It is overridden at build time.
var Version = "dev"

const healthTimeout = 2 * time.Second

// Dependencies are the wired services the router exposes.
type Dependencies struct {
	Config *config.Config
	Logger *logrus.Logger

	// Ping checks the database for /health.
	Ping   func(ctx context.Context) error
	Audits repository.AuditRepository

	Auth        middleware.Authenticator
	Content     *services.ContentService
	Generation  *services.GenerationService
	BrandVoices *services.BrandVoiceService
	Campaigns   *services.CampaignService
	Profiles    *services.ProfileService
	Billing     *services.BillingService
	Images      services.ImageStore
}

// Initialize builds the engine. Rate limiter cleanup runs until ctx is done.
func Initialize(ctx context.Context, deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	contentHandler := handlers.NewContentHandler(deps.Content)
	generationHandler := handlers.NewGenerationHandler(deps.Generation, deps.Content, deps.Images)
	brandVoiceHandler := handlers.NewBrandVoiceHandler(deps.BrandVoices)
	campaignHandler := handlers.NewCampaignHandler(deps.Campaigns)
	userHandler := handlers.NewUserHandler(deps.Profiles)
	adminHandler := handlers.NewAdminHandler(deps.Profiles)
	billingHandler := handlers.NewBillingHandler(deps.Billing)

	generalLimiter := middleware.NewGeneralLimiter(cfg.RateLimit)
	generationLimiter := middleware.NewGenerationLimiter(cfg.RateLimit)
	go generalLimiter.Run(ctx)
	go generationLimiter.Run(ctx)

	r := gin.New()
	r.MaxMultipartMemory = cfg.Storage.MaxUploadBytes() + 1<<20

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics(metrics.Get()))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())

	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if deps.Ping != nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := deps.Ping(pingCtx); err != nil {
				logger.WithError(err).Warn("Health check failed")
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(generalLimiter.Middleware())
	if deps.Audits != nil {
		api.Use(middleware.AuditLogMiddleware(deps.Audits))
	}

	// Signed by Stripe, no bearer token
	api.POST("/billing/webhook", billingHandler.Webhook)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(deps.Auth))
	{
		content := authed.Group("/content")
		{
			generate := content.Group("/generate")
			generate.Use(middleware.SubscriptionRequired(time.Now), generationLimiter.PerUser())
			{
				generate.POST("/description", generationHandler.Description)
				generate.POST("/title", generationHandler.Title)
				generate.POST("/alternatives", generationHandler.Alternatives)
			}

			content.POST("/upload-image", generationHandler.UploadImage)
			content.POST("/save", contentHandler.Save)
			content.GET("", contentHandler.List)
			content.GET("/:id", contentHandler.Get)
			content.PUT("/:id", contentHandler.Update)
			content.DELETE("/:id", contentHandler.Delete)
			content.POST("/:id/feedback", contentHandler.Feedback)
			content.POST("/:id/accept", contentHandler.Accept)
			content.GET("/:id/preview", contentHandler.Preview)
		}

		brandVoices := authed.Group("/brand-voices")
		{
			brandVoices.GET("", brandVoiceHandler.List)
			brandVoices.POST("", brandVoiceHandler.Create)
			brandVoices.GET("/:id", brandVoiceHandler.Get)
			brandVoices.PUT("/:id", brandVoiceHandler.Update)
			brandVoices.DELETE("/:id", brandVoiceHandler.Delete)
			brandVoices.POST("/:id/default", brandVoiceHandler.SetDefault)
		}

		campaigns := authed.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.List)
			campaigns.POST("", campaignHandler.Create)
			campaigns.GET("/:id", campaignHandler.Get)
			campaigns.PUT("/:id", campaignHandler.Update)
			campaigns.DELETE("/:id", campaignHandler.Delete)
		}

		users := authed.Group("/users")
		{
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/profile", userHandler.UpdateProfile)
			users.GET("/usage", userHandler.GetUsage)

			admin := users.Group("")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("", adminHandler.ListUsers)
				admin.GET("/:id", adminHandler.GetUser)
				admin.PUT("/:id/role", adminHandler.UpdateRole)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, i18n.KeyRouteNotFound), nil)
	})

	// Local uploads are only served directly in development
	if !cfg.IsProduction() {
		r.Static("/uploads", "./"+services.LocalUploadDir)
	}

	return r
}
