package main

import (
	"log"
	"os"

	"github.com/mmada170699-cpu/RiyadhRE/internal/config"
	"github.com/mmada170699-cpu/RiyadhRE/internal/db"
	"github.com/mmada170699-cpu/RiyadhRE/internal/handlers"
	"github.com/mmada170699-cpu/RiyadhRE/internal/middleware"
	"github.com/mmada170699-cpu/RiyadhRE/internal/moderation"
	"github.com/mmada170699-cpu/RiyadhRE/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// In a container .env may be absent; env vars are passed directly.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := middleware.InitRedis(cfg.RedisURL); err != nil {
		log.Printf("Warning: Redis not available, rate limiting disabled: %v", err)
	}

	listings := store.NewListings(db.DB)
	ledger := moderation.NewLedger(db.DB)
	handlers.InitAPI(listings, ledger)

	r := setupRouter(cfg)

	go func() {
		if err := handlers.RunBot(cfg, listings, ledger); err != nil {
			log.Fatal("Failed to start bot:", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.SafeLoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin))
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/listings", handlers.GetListings)
		api.GET("/listings/:id/photo", handlers.GetListingPhoto)
		api.GET("/offenders/:id", handlers.CheckOffender)
	}

	return r
}
