package api

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lanscan/backend/logging"
	"lanscan/macvendor"
	"lanscan/network"
	"lanscan/rdns"
)

const (
	numWorkers = 5
	// maxQueuedScans bounds how many tasks may wait in the queue (not
	// counting running ones) before new submissions are rejected, sized as a small multiple of
	// numWorkers so the queue drains in a bounded time.
	maxQueuedScans = numWorkers * 4
)

// Run initializes dependencies and starts the API server. It loads a
// .env file if present (a missing file is not an error, for local-dev
// convenience), connects to Redis, resolves the scanning interface, and
// launches the background workers before serving HTTP.
func Run() error {
	_ = godotenv.Load()
	logger := logging.Logger()

	redisAddr := getenv("REDIS_ADDR", "localhost:6379")
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
	}

	ifaceName := getenv("LANSCAN_INTERFACE", "")
	iface, err := resolveInterface(ifaceName)
	if err != nil {
		return fmt.Errorf("failed to resolve scanning interface: %w", err)
	}

	vendorDB := macvendor.NewDB()
	resolver, err := rdns.NewResolver("")
	if err != nil {
		logger.Warn("reverse DNS resolver unavailable, include_hostnames requests will return empty hostnames", "error", err)
		resolver = nil
	}

	store := NewRedisStore(redisClient)
	StartWorkers(store, iface, vendorDB, resolver, numWorkers)

	router := gin.Default()
	router.Use(
		RequestLoggingMiddleware(logger),
		SecurityHeadersMiddleware(),
		ScanQueueLimitMiddleware(store, maxQueuedScans, logger),
	)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiKey := getenv("LANSCAN_API_KEY", "")
	server := NewServer(store)
	if apiKey != "" {
		v1 := router.Group("/api/v1", AuthMiddleware(apiKey, logger))
		server.RegisterRoutes(v1)
	} else {
		logger.Warn("LANSCAN_API_KEY not set, serving /api/v1 without authentication")
		server.RegisterRoutes(router.Group("/api/v1"))
	}

	addr := getenv("LANSCAN_API_ADDR", ":8080")
	logger.Info("starting lanscan API server", "addr", addr, "interface", iface.Name)
	return router.Run(addr)
}

func resolveInterface(name string) (*network.InterfaceInfo, error) {
	if name == "" {
		return network.GetDefaultInterface()
	}
	return network.GetInterfaceByName(name)
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
