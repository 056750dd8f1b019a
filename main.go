package main

import (
	"log"
	"net/http"
	"os"

	"food-marketplace-api/config"
	"food-marketplace-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load environment and initialize database
	cfg := config.Load()
	config.InitDB(cfg)
	if err := config.SeedAdmin(config.DB); err != nil {
		log.Fatal("Failed to seed admin:", err)
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS for the dashboard frontends
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Marketplace API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍕 Welcome to the Food Marketplace API",
			"health":  "/health",
			"roles":   []string{"customer", "vendor", "rider", "restaurant", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, cfg)

	// Start server
	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
