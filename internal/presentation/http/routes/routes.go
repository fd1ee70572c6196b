package routes

import (
	"time"

	"github.com/blagajna/pos-api/internal/config"
	domainRepo "github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/internal/presentation/http/handler"
	"github.com/blagajna/pos-api/internal/presentation/http/middleware"
	"github.com/blagajna/pos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Article     *handler.ArticleHandler
	Category    *handler.CategoryHandler
	Receipt     *handler.ReceiptHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
	User        *handler.UserHandler
	Health      *handler.HealthHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", h.Health.Check)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	// Articles
	articles := protected.Group("/articles")
	{
		articles.GET("", h.Article.List)
		articles.GET("/:id", h.Article.Get)
		articles.POST("", middleware.RequireRole("ADMIN"), h.Article.Create)
		articles.PUT("/:id", middleware.RequireRole("ADMIN"), h.Article.Update)
		articles.DELETE("/:id", middleware.RequireRole("ADMIN"), h.Article.Delete)
	}

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", middleware.RequireRole("ADMIN"), h.Category.Create)
		categories.PUT("/:id", middleware.RequireRole("ADMIN"), h.Category.Update)
		categories.DELETE("/:id", middleware.RequireRole("ADMIN"), h.Category.Delete)
	}

	// Receipts. The idempotency middleware dedupes sales replayed from an
	// offline queue.
	receipts := protected.Group("/receipts")
	receipts.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.POST("", h.Receipt.Create)
		receipts.PUT("/:id", h.Receipt.Update)
		receipts.PUT("/:id/storno", h.Receipt.Reverse)
		receipts.GET("/:id/print", h.Receipt.Print)
	}

	// Transactions (read-only ledger)
	protected.GET("/transactions", h.Transaction.List)

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("", h.Report.List)
		reports.POST("", middleware.RequireRole("ADMIN"), h.Report.Create)
		reports.POST("/generate", middleware.RequireRole("ADMIN"), h.Report.Generate)
	}

	// Users (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole("ADMIN"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
