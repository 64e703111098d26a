// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/interfaces/http/routes"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"github.com/your-org/storefront-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg)
	logg.WithField("version", cfg.App.Version).
		WithField("environment", cfg.App.Environment).
		Infof("starting %s", cfg.App.Name)

	// Connect to Redis (catalog cache, rate limiting, wishlist, and the
	// default cart storage)
	redisClient, err := redis.NewConnection(cfg, logg)
	if err != nil {
		logg.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		logg.Fatalf("Redis health check failed: %v", err)
	}

	// Select the cart storage backend
	var backend storage.Backend
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := postgres.NewConnection(cfg, logg)
		if err != nil {
			logg.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Migrate(); err != nil {
			logg.Fatalf("Database migration failed: %v", err)
		}
		backend = storage.NewPostgresBackend(db.GetDB())
	case "memory":
		backend = storage.NewMemoryBackend()
	default:
		backend = storage.NewRedisBackend(redisClient.GetClient(), cfg.Storage.CartTTL)
	}
	logg.WithField("driver", cfg.Storage.Driver).Info("cart storage ready")

	// Build domain services
	carts := cart.NewManager(backend, logg)
	catalogClient := catalog.NewClient(cfg, redisClient.GetClient(), logg)
	services := &routes.Services{
		Carts:    carts,
		Catalog:  catalogClient,
		Checkout: checkout.NewService(carts, catalogClient, cfg, logg),
		Wishlist: wishlist.NewService(redisClient.GetClient(), logg),
	}

	// Create and start HTTP server
	server := http.NewServer(cfg, logg, services, redisClient.GetClient())

	go func() {
		if err := server.Start(); err != nil {
			logg.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logg.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logg.Info("server shutdown completed")
}
