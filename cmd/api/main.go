package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ream-lab/catex/internal/api/handlers"
	"github.com/ream-lab/catex/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers. nil selects the built-in reference solver; a
	// deployment wrapping a production QP solver swaps its own constructor
	// in here.
	solveHandler := handlers.NewSolveHandler(nil)
	validateHandler := handlers.NewValidateHandler()
	congestionHandler := handlers.NewCongestionHandler(nil)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/solve", solveHandler.RunSolve)
		api.POST("/validate", validateHandler.Validate)
		api.POST("/congestion", congestionHandler.RankCongestion)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
