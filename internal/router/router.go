package router

import (
	"github.com/gin-gonic/gin"

	"finvoice/internal/config"
	"finvoice/internal/handler"
	"finvoice/internal/middleware"
	"finvoice/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	billH *handler.BillHandler,
	uploadH *handler.UploadHandler,
	analyticsH *handler.AnalyticsHandler,
	maintenanceH *handler.MaintenanceHandler,
	systemH *handler.SystemHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Healthz)
	r.GET("/readyz", healthH.Readyz)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Bill routes
	bills := protected.Group("/bills")
	bills.POST("/upload",
		middleware.RateLimit(cfg.Upload.RatePerSec, cfg.Upload.RateBurst),
		uploadH.Upload)
	bills.POST("", billH.Create)
	bills.GET("", billH.List)
	bills.GET("/search", billH.Search)
	bills.GET("/export", billH.Export)
	bills.GET("/:id", billH.GetByID)
	bills.PUT("/:id", billH.Update)
	bills.DELETE("/:id", billH.Delete)
	bills.POST("/:id/render", billH.Render)
	bills.GET("/:id/document", billH.Download)
	bills.POST("/:id/email", billH.Email)

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.GET("/summary", analyticsH.Summary)
	analytics.GET("/monthly", analyticsH.Monthly)
	analytics.GET("/categories", analyticsH.Categories)
	analytics.GET("/manufacturers", analyticsH.Manufacturers)

	// Maintenance routes
	maintenance := protected.Group("/maintenance")
	maintenance.POST("/fix-idfc", maintenanceH.FixIDFC)
	maintenance.POST("/archive", maintenanceH.Archive)
	maintenance.POST("/cleanup", maintenanceH.Cleanup)

	// System routes
	system := protected.Group("/system")
	system.GET("/storage", systemH.StorageUsage)

	return r
}
