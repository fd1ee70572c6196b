package main

import (
	"context"
	"log"
	"time"

	"github.com/blagajna/pos-api/internal/application/service"
	"github.com/blagajna/pos-api/internal/config"
	"github.com/blagajna/pos-api/internal/infrastructure/database"
	"github.com/blagajna/pos-api/internal/infrastructure/repository"
	"github.com/blagajna/pos-api/internal/presentation/http/handler"
	"github.com/blagajna/pos-api/internal/presentation/http/routes"
	"github.com/blagajna/pos-api/pkg/email"
	"github.com/blagajna/pos-api/pkg/fiscal"
	"github.com/blagajna/pos-api/pkg/oauth"
	"github.com/blagajna/pos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Sweep expired idempotency keys hourly
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Failed to delete expired idempotency keys: %v", err)
			}
		}
	}()

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		OperatorAddr: cfg.Email.OperatorAddr,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize fiscal gateway client
	fiscalClient := fiscal.NewClient(fiscal.Config{
		APIURL:      cfg.Fiscal.APIURL,
		APIKey:      cfg.Fiscal.APIKey,
		InvoiceType: cfg.Fiscal.InvoiceType,
		Country:     cfg.Fiscal.Country,
		Timeout:     cfg.Fiscal.Timeout,
	})

	// Alerts only work with a configured mailbox
	var notifier service.Notifier
	var reportSender service.ReportSender
	if emailService.IsConfigured() {
		notifier = emailService
		reportSender = emailService
	} else {
		log.Println("SMTP not configured, operator notifications disabled")
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, googleOAuthService, jwtManager, cfg.Org.AllowedDomain)
	articleService := service.NewArticleService(articleRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	receiptService := service.NewReceiptService(receiptRepo, articleRepo, addressRepo, fiscalClient, notifier)
	printService := service.NewPrintService(receiptRepo, cfg.Org)
	transactionService := service.NewTransactionService(transactionRepo)
	reportService := service.NewReportService(reportRepo, receiptRepo, reportSender)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Article:     handler.NewArticleHandler(articleService),
		Category:    handler.NewCategoryHandler(categoryService),
		Receipt:     handler.NewReceiptHandler(receiptService, printService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Report:      handler.NewReportHandler(reportService),
		User:        handler.NewUserHandler(userService),
		Health:      handler.NewHealthHandler(receiptRepo, userRepo, transactionRepo),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
