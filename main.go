package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safal11goyal/GreenWise/config"
	"github.com/safal11goyal/GreenWise/database"
	"github.com/safal11goyal/GreenWise/handlers"
	"github.com/safal11goyal/GreenWise/metrics"
	"github.com/safal11goyal/GreenWise/middleware"
	"github.com/safal11goyal/GreenWise/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Register Prometheus metrics
	metrics.Register()

	// Initialize WebSocket hub for the live dashboard feed
	websocketHub := services.NewWebSocketHub()
	go websocketHub.Start()
	defer websocketHub.Stop()

	// Initialize handlers
	h := handlers.NewHandlers(db, websocketHub)
	websocketHandler := handlers.NewWebSocketHandler(websocketHub)

	router := gin.Default()

	// CORS middleware for Gin
	router.Use(middleware.CORSMiddleware())

	// Public routes
	api := router.Group("/api/v3")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/analyze-materials", h.AnalyzeMaterials)
	}

	// Protected dashboard routes
	protected := router.Group("/api/v3")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/materials/stats", h.GetMaterialStats)
		protected.GET("/products/:id/analysis", h.GetProductScans)
	}

	ws := router.Group("/ws")
	ws.Use(middleware.AuthMiddleware(cfg))
	{
		ws.GET("/material-feed", websocketHandler.ListenMaterialFeed)
		ws.GET("/health", websocketHandler.HealthCheck)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: router,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Printf("Starting material analysis service on %s:%s", cfg.Host, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
