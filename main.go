package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant-catalog/pkg/config"
	"restaurant-catalog/pkg/controllers/inventory"
	"restaurant-catalog/pkg/controllers/menu"
	"restaurant-catalog/pkg/controllers/restaurant"
	"restaurant-catalog/pkg/database"
	"restaurant-catalog/pkg/middleware"
	"restaurant-catalog/pkg/routes"
	"restaurant-catalog/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	log.Println("🔌 Initializing database connection...")
	db, err := database.Connect(config.AppConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Owner accounts service client
	owners := services.NewOwnerAccountClient(
		config.AppConfig.OwnerServiceURL,
		time.Duration(config.AppConfig.OwnerServiceTimeoutMS)*time.Millisecond,
	)

	// Set Gin mode based on environment
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())
	router.NoRoute(middleware.NotFoundHandler())

	// CORS middleware
	setupCORS(router)

	// Routes
	setupRoutes(router, db, owners)

	// Start server
	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: router,
	}

	// Server startup in goroutine
	go func() {
		log.Printf("🚀 Server running in %s mode\n", config.AppConfig.Environment)
		log.Printf("📡 Server listening on http://localhost:%s\n", config.AppConfig.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// setupCORS configures CORS for the gateway origins
func setupCORS(router *gin.Engine) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if config.IsProduction() && config.AppConfig.AllowedOrigins != "" {
		corsConfig.AllowOrigins = parseOrigins(config.AppConfig.AllowedOrigins)
		router.Use(cors.New(corsConfig))
		log.Printf("🔒 CORS enabled for origins: %v\n", corsConfig.AllowOrigins)
		return
	}

	// Development: trust any origin
	corsConfig.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(corsConfig))
	log.Println("🔓 CORS enabled for all origins (development mode)")
}

// parseOrigins splits comma-separated origin string
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setupRoutes sets up all application routes
func setupRoutes(router *gin.Engine, db *gorm.DB, owners *services.OwnerAccountClient) {
	// Root route
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Restaurant Catalog Server is running...")
	})

	api := router.Group("/api")
	{
		routes.RegisterCatalogRoutes(api, restaurant.NewHandler(db, owners))
		routes.RegisterMenuRoutes(api, menu.NewHandler(db))
		routes.RegisterInventoryRoutes(api, inventory.NewHandler(db))

		// Health check route
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":      "ok",
				"environment": config.AppConfig.Environment,
				"database":    "connected",
			})
		})
	}
}
