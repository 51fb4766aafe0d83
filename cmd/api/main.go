package main

import (
	"fmt"
	"net/http"
	"os"

	"estudio/internal/config"
	"estudio/internal/database"
	"estudio/internal/handlers"
	"estudio/internal/logger"
	"estudio/internal/middleware"
	"estudio/internal/services"
	"estudio/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "estudio/internal/docs" // Import swagger docs
)

// @title           Estudio API
// @version         1.0
// @description     Estudio is a business-management API for an architecture firm: projects, clients, bank statement ingestion, and transaction-to-project allocation.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)
	projectService := services.NewProjectService(db)
	statementService := services.NewStatementService(db)
	allocationService := services.NewAllocationService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	clientHandler := handlers.NewClientHandler(clientService)
	projectHandler := handlers.NewProjectHandler(projectService)
	statementHandler := handlers.NewStatementHandler(statementService)
	allocationHandler := handlers.NewAllocationHandler(allocationService, projectService)

	// Initialize Gin router
	router := gin.New()
	// Statement keys are date strings with slashes; clients send them
	// percent-encoded, so match on the raw path.
	router.UseRawPath = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// User administration (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	users.GET("", userHandler.ListUsers)
	users.PUT("/role", userHandler.SetRole)

	// Client routes
	clients := protected.Group("/clients")
	clients.POST("", clientHandler.CreateClient)
	clients.GET("", clientHandler.GetClients)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)

	// Project routes
	projects := protected.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)

	// Statement routes
	statements := protected.Group("/statements")
	statements.POST("", statementHandler.UploadStatement)
	statements.GET("", statementHandler.GetStatements)
	statements.GET("/:key", statementHandler.GetStatement)
	protected.GET("/uploads", statementHandler.GetUploads)

	// Allocation routes
	transactions := protected.Group("/transactions")
	transactions.GET("/:txnId/allocation", allocationHandler.GetAllocation)
	transactions.PUT("/:txnId/allocation", allocationHandler.SetAllocation)
	transactions.PUT("/:txnId/prorate", allocationHandler.Prorate)
	transactions.GET("/:txnId/splits", allocationHandler.GetSplits)

	log.Infof("Starting Estudio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
