package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	inventoryAPI "github.com/stokku/grocery-inventory/internal/inventory/api"
	inventoryRepo "github.com/stokku/grocery-inventory/internal/inventory/repository"
	inventoryService "github.com/stokku/grocery-inventory/internal/inventory/service"
	"github.com/stokku/grocery-inventory/internal/platform/config"
	"github.com/stokku/grocery-inventory/internal/platform/database"
	"github.com/stokku/grocery-inventory/internal/platform/logger"
)

func main() {
	// Load Config
	dbCfg := config.LoadInventoryDBConfig()
	redisCfg := config.LoadRedisConfig()
	serverCfg := config.LoadServerConfig("3000")

	logger.Info("Starting Inventory Service...")

	// Setup Database
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database for Inventory Service", err)
		return
	}
	defer db.Close()

	// Setup list cache. The service runs fine without Redis; an unreachable
	// instance just means every list hits the store.
	var listCache inventoryRepo.ListCache
	if redisCfg.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisCfg.Addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unavailable at "+redisCfg.Addr+", running without list cache: %v", err)
		} else {
			cacheTTL := time.Duration(config.GetEnvAsInt("CACHE_TTL_MINUTES", 10)) * time.Minute
			listCache = inventoryRepo.NewRedisListCache(redisClient, cacheTTL)
			logger.Info("List cache enabled via Redis at " + redisCfg.Addr)
		}
	}

	// Setup Dependencies
	repo := inventoryRepo.NewPostgresInventoryRepository(db)
	svc := inventoryService.NewInventoryService(repo, listCache)
	handler := inventoryAPI.NewInventoryHandler(svc)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{config.CORSOrigin()}
	router.Use(cors.New(corsCfg))

	apiGroup := router.Group("/api")
	handler.RegisterRoutes(apiGroup)

	logger.Info("Inventory Service running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Inventory Service server", err)
	}
}
