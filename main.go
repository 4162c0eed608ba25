package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vetscribe-server/internal/ai"
	"vetscribe-server/internal/config"
	"vetscribe-server/internal/routes"
	"vetscribe-server/internal/scribe"
	"vetscribe-server/internal/store"
)

func main() {
	// Load environment variables; a missing .env is fine outside development
	_ = godotenv.Load()

	// Initialize configuration. A missing OpenAI credential halts startup
	// with setup instructions rather than running degraded.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Hydrate the session state from the data file. Missing or corrupt
	// files start an empty session.
	st := store.New(cfg.DataFile)
	st.Load()

	aiClient := ai.NewClient(cfg.OpenAI)
	svc := scribe.NewService(st, aiClient, ai.BuildCaseText)

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, svc, aiClient, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
