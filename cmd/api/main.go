package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/hmidach/librapos-api/internal/application/service"
	"github.com/hmidach/librapos-api/internal/config"
	"github.com/hmidach/librapos-api/internal/infrastructure/database"
	"github.com/hmidach/librapos-api/internal/infrastructure/repository"
	"github.com/hmidach/librapos-api/internal/presentation/http/handler"
	"github.com/hmidach/librapos-api/internal/presentation/http/routes"
	"github.com/hmidach/librapos-api/pkg/printer"
	"github.com/hmidach/librapos-api/pkg/utils"
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
	locationRepo := repository.NewLocationRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleDetailRepo := repository.NewSaleDetailRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	chequeRepo := repository.NewChequeRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize receipt printer
	receiptPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		receiptPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo, locationRepo)
	locationService := service.NewLocationService(locationRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	saleService := service.NewSaleService(saleRepo, saleDetailRepo, productRepo, customerRepo)
	returnService := service.NewReturnService(returnRepo, saleRepo, productRepo)
	customerService := service.NewCustomerService(customerRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo)
	chequeService := service.NewChequeService(chequeRepo, customerRepo, supplierRepo)
	transferService := service.NewTransferService(transferRepo, productRepo, locationRepo)
	reportService := service.NewReportService(reportRepo)
	printerService := service.NewPrinterService(receiptPrinter, cfg.Printer.Width, saleRepo, returnRepo, locationRepo, userRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Sale:     handler.NewSaleHandler(saleService),
		Return:   handler.NewReturnHandler(returnService),
		Customer: handler.NewCustomerHandler(customerService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Cheque:   handler.NewChequeHandler(chequeService),
		Transfer: handler.NewTransferHandler(transferService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
		User:     handler.NewUserHandler(userService),
		Location: handler.NewLocationHandler(locationService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		LocationRepo:    locationRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
