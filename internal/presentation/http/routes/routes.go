package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmidach/librapos-api/internal/config"
	"github.com/hmidach/librapos-api/internal/domain/entity"
	domainRepo "github.com/hmidach/librapos-api/internal/domain/repository"
	"github.com/hmidach/librapos-api/internal/presentation/http/handler"
	"github.com/hmidach/librapos-api/internal/presentation/http/middleware"
	"github.com/hmidach/librapos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Sale     *handler.SaleHandler
	Return   *handler.ReturnHandler
	Customer *handler.CustomerHandler
	Supplier *handler.SupplierHandler
	Purchase *handler.PurchaseHandler
	Cheque   *handler.ChequeHandler
	Transfer *handler.TransferHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
	User     *handler.UserHandler
	Location *handler.LocationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	LocationRepo    domainRepo.LocationRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication plus location resolution)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.LocationMiddleware(deps.LocationRepo))

		// Per-location rate limiter
		rateLimiter := middleware.NewLocationRateLimiter(middleware.RateLimiterConfig{
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
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Catalog
	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)

	// Register
	registerSaleRoutes(protected, h, deps)
	registerReturnRoutes(protected, h, deps)

	// Contacts
	registerCustomerRoutes(protected, h)
	registerSupplierRoutes(protected, h)

	// Back office
	registerPurchaseRoutes(protected, h)
	registerChequeRoutes(protected, h)
	registerTransferRoutes(protected, h)
	registerReportRoutes(protected, h)

	// Hardware
	registerPrinterRoutes(protected, h)

	// Administration
	registerUserRoutes(protected, h)
	registerLocationRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/lookup", h.Product.Lookup)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)

		managed := products.Group("")
		managed.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
		{
			managed.POST("", h.Product.Create)
			managed.PUT("/:id", h.Product.Update)
			managed.DELETE("/:id", h.Product.Delete)
		}
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Product.ListCategories)

		managed := categories.Group("")
		managed.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
		{
			managed.POST("", h.Product.CreateCategory)
			managed.PUT("/:id", h.Product.UpdateCategory)
			managed.DELETE("/:id", h.Product.DeleteCategory)
		}
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		// Checkout uses idempotency so a retried submission never double-charges
		sales.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.Sale.Create)
		sales.GET("/due", h.Sale.ListDue)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", h.Sale.Cancel)
		sales.POST("/:id/pay", h.Sale.PayDue)
	}
}

func registerReturnRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	returns := protected.Group("/returns")
	{
		returns.GET("", h.Return.List)
		returns.POST("", middleware.Idempotency(deps.IdempotencyRepo), h.Return.Create)
		returns.GET("/:id", h.Return.Get)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	suppliers.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/receive", h.Purchase.Receive)
		purchases.DELETE("/:id", h.Purchase.Delete)
	}
}

func registerChequeRoutes(protected *gin.RouterGroup, h *Handlers) {
	cheques := protected.Group("/cheques")
	{
		cheques.GET("", h.Cheque.List)
		cheques.POST("", h.Cheque.Create)
		cheques.GET("/due-soon", h.Cheque.DueSoon)
		cheques.GET("/:id", h.Cheque.Get)
		cheques.PUT("/:id/status", h.Cheque.UpdateStatus)
		cheques.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Cheque.Delete)
	}
}

func registerTransferRoutes(protected *gin.RouterGroup, h *Handlers) {
	transfers := protected.Group("/transfers")
	transfers.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		transfers.GET("", h.Transfer.List)
		transfers.POST("", h.Transfer.Create)
		transfers.GET("/:id", h.Transfer.Get)
		transfers.POST("/:id/receive", h.Transfer.Receive)
		transfers.POST("/:id/cancel", h.Transfer.Cancel)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/daily-range", h.Report.DailyRange)
		reports.GET("/top-products", h.Report.TopProducts)
		reports.GET("/payment-breakdown", h.Report.PaymentBreakdown)
		reports.GET("/total-due", h.Report.TotalDue)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.POST("/print", h.Printer.Print)
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.Test)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerLocationRoutes(protected *gin.RouterGroup, h *Handlers) {
	locations := protected.Group("/locations")
	locations.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		locations.GET("", h.Location.List)
		locations.POST("", h.Location.Create)
		locations.GET("/:id", h.Location.Get)
		locations.PUT("/:id", h.Location.Update)
		locations.DELETE("/:id", h.Location.Deactivate)
	}
}
