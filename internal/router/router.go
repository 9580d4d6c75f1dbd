// Package router assembles the HTTP surface: services, handlers, middleware
// and routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"homebook/internal/config"
	_ "homebook/internal/docs" // Import swagger docs
	"homebook/internal/handlers"
	"homebook/internal/middleware"
	"homebook/internal/services"
)

// New wires every service and handler on db and returns the engine.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	accountService := services.NewAccountService(db)
	userService := services.NewUserService(db, accountService)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, accountService, categoryService)
	plannedService := services.NewPlannedTransactionService(db, accountService, categoryService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	accountHandler := handlers.NewAccountHandler(accountService, transactionService, cfg.LatestLimit)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	plannedHandler := handlers.NewPlannedHandler(plannedService, auditService)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public category listing, also served under /api/v1
	router.GET("/api/categories", categoryHandler.ListCategories)

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", middleware.RateLimit(cfg.LoginRatePerMinute), authHandler.Login)
	v1.GET("/categories", categoryHandler.ListCategories)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/account", accountHandler.GetAccount)
	protected.GET("/latest", accountHandler.GetLatest)

	protected.POST("/add_transaction", transactionHandler.CreateTransaction)
	protected.GET("/transaction/:id", transactionHandler.GetTransactionByID)
	protected.POST("/del_transaction/:id", transactionHandler.DeleteTransaction)
	protected.GET("/filter", transactionHandler.FilterTransactions)
	protected.GET("/transaction_statistics", transactionHandler.GetStatistics)

	planned := protected.Group("/planned")
	planned.GET("/transactions", plannedHandler.ListPlanned)
	planned.POST("/add_scheduled_transaction", plannedHandler.CreatePlanned)
	planned.POST("/del_scheduled_transaction/:id", plannedHandler.DeletePlanned)
	planned.GET("/statistics", plannedHandler.GetPlannedStatistics)

	// Category administration
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminKeyMiddleware(cfg.AdminAPIKey))
	admin.POST("/categories", categoryHandler.CreateCategory)
	admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.AdminKeyHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
