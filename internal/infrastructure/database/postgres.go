package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hmidach/librapos-api/internal/config"
	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Store and account entities
		&entity.Location{},
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},

		// Contact entities
		&entity.Customer{},
		&entity.Supplier{},

		// Transaction entities
		&entity.Sale{},
		&entity.SaleDetail{},
		&entity.Return{},
		&entity.ReturnDetail{},
		&entity.ExchangeDetail{},
		&entity.Purchase{},
		&entity.PurchaseDetail{},
		&entity.Cheque{},
		&entity.StockTransfer{},
		&entity.StockTransferItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default location and, when
// configured, an admin user
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create the main store location if none exists
	var locationCount int64
	if err := db.Model(&entity.Location{}).Count(&locationCount).Error; err != nil {
		return fmt.Errorf("failed to count locations: %w", err)
	}

	var mainLocation entity.Location
	if locationCount == 0 {
		name := viper.GetString("STORE_NAME")
		if name == "" {
			name = "Main Store"
		}
		mainLocation = entity.Location{
			Name:     name,
			Slug:     utils.Slugify(name),
			IsActive: true,
		}
		if err := db.Create(&mainLocation).Error; err != nil {
			return fmt.Errorf("failed to create default location: %w", err)
		}
		log.Printf("Default location created: %s", mainLocation.Name)
	} else {
		if err := db.Order("created_at ASC").First(&mainLocation).Error; err != nil {
			return fmt.Errorf("failed to load default location: %w", err)
		}
	}

	// Create the admin user if configured via environment variables
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
					adminName = "Admin"
				}
				firstName := adminName
				lastName := ""
				for i, c := range adminName {
					if c == ' ' {
						firstName = adminName[:i]
						lastName = adminName[i+1:]
						break
					}
				}
				adminUser := entity.User{
					LocationID: mainLocation.ID,
					FirstName:  firstName,
					LastName:   lastName,
					Email:      adminEmail,
					Password:   string(hashedPassword),
					Role:       entity.RoleAdmin,
					IsActive:   true,
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
