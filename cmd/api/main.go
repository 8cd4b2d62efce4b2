package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/foodyshare/backend/config"
	"github.com/foodyshare/backend/internal/api"
	"github.com/foodyshare/backend/internal/database"
	"github.com/foodyshare/backend/internal/middleware"
	"github.com/foodyshare/backend/internal/router"
	"github.com/foodyshare/backend/internal/search"
	"github.com/foodyshare/backend/internal/server"
	"github.com/foodyshare/backend/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	var cache *redis.Client
	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		cache, err = database.NewRedisClient(cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		limiter = middleware.NewRecipeCreationRateLimiter(cache)
	} else {
		logger.Warn("redis not configured, rating cache and rate limiting disabled")
	}

	var index search.Index = search.Noop{}
	if cfg.SearchHost != "" {
		index = search.NewMeilisearch(cfg.SearchHost, cfg.SearchAPIKey)
		logger.Info("search index configured", zap.String("host", cfg.SearchHost))
	} else {
		logger.Info("no search index configured, using database fallback")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, index, logger)
	ratingService := service.NewRatingService(db, cache, logger)
	searchService := service.NewSearchService(db, index, logger)

	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, ratingService, searchService)

	engine := router.SetupRouter(authHandler, recipeHandler, authService, limiter, cfg.AllowedOrigins, logger)
	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
