package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf/database"
	"bookshelf/internal/cache"
	"bookshelf/internal/config"
	"bookshelf/internal/microservices/http-api/handler"
	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/microservices/http-api/router"
	"bookshelf/internal/microservices/http-api/service"
)

// serve runs the HTTP API until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect to the database
	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	checks := map[string]handler.Pinger{
		"database": handler.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
	}

	// 2. Optional reading-list cache
	var readingCache service.ReadingListCache = cache.Noop{}
	if cfg.CacheEnabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rdb.Close()
		redisCache := cache.NewRedisReadingListCache(rdb, cfg.CacheTTLDuration())
		readingCache = redisCache
		checks["redis"] = redisCache
		log.Info("Reading list cache enabled", "ttl", cfg.CacheTTLDuration())
	}

	// 3. Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	readingRepo := repository.NewReadingListRepository(db)

	deps := router.Deps{
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		Users:       handler.NewUserHandler(service.NewUserService(userRepo)),
		Books:       handler.NewBookHandler(service.NewBookService(bookRepo, readingRepo, readingCache)),
		ReadingList: handler.NewReadingListHandler(service.NewReadingListService(readingRepo, userRepo, bookRepo, readingCache)),
		Health:      handler.NewHealthHandler(checks),
	}
	if cfg.RateLimitRPS > 0 {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
		go sweepLimiter(ctx, deps.RateLimiter)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. Serve until a shutdown signal arrives
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func sweepLimiter(ctx context.Context, rl *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep()
		}
	}
}
