package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/blagajna/pos-api/internal/config"
	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Duplicate invoice numbers have to surface as gorm.ErrDuplicatedKey
		// so the receipt flow can retry with a suffixed number.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User entities
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.Article{},

		// Sales entities
		&entity.Receipt{},
		&entity.ReceiptItem{},
		&entity.Transaction{},
		&entity.BillingAddress{},
		&entity.ShippingAddress{},

		// Reporting entities
		&entity.SalesReport{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the admin allow-list and the
// break-glass local admin account
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Promote allow-listed emails to ADMIN. These users still sign in
	// through Google; the allow-list only fixes their role.
	adminEmails := viper.GetString("ADMIN_EMAILS")
	if adminEmails != "" {
		for _, email := range strings.Split(adminEmails, ",") {
			email = strings.TrimSpace(email)
			if email == "" {
				continue
			}
			if err := db.Model(&entity.User{}).
				Where("email = ?", email).
				Update("role", enum.RoleAdmin).Error; err != nil {
				log.Printf("Warning: failed to promote admin %s: %v", email, err)
			}
		}
	}

	// Create local admin user if configured via environment variables.
	// This account can log in with a password when Google OAuth is down.
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrator"
				}
				hashed := string(hashedPassword)
				adminUser := entity.User{
					ID:       uuid.New(),
					GoogleID: "local:" + adminEmail,
					Name:     adminName,
					Email:    adminEmail,
					Role:     enum.RoleAdmin,
					Password: &hashed,
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
