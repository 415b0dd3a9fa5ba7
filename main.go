package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"loginapp/internal/cache"
	"loginapp/internal/config"
	"loginapp/internal/controllers"
	"loginapp/internal/database"
	"loginapp/internal/logger"
	"loginapp/internal/middleware"
	"loginapp/internal/repository"
	"loginapp/internal/router"
	"loginapp/internal/service"
)

func main() {
	cfg := config.Load()
	lg := logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage: Postgres when configured, otherwise in-memory
	var userRepo repository.UserRepository
	if cfg.DatabaseURL != "" {
		db, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.DBConnectRetries)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		userRepo = repository.NewUserRepository(db)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory user store")
		userRepo = repository.NewMemoryUserRepository()
	}

	// Redis is optional - without it only the per-process limiters apply
	var sharedLimit gin.HandlerFunc
	if cfg.RedisURL != "" {
		counter, err := cache.NewRedisCounter(ctx, cfg.RedisURL, "loginapp:ratelimit:")
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without shared rate limit")
		} else {
			log.Info().Msg("connected to Redis")
			defer counter.Close()
			sharedLimit = middleware.SharedRateLimit(counter, "users", cfg.SharedLimit, cfg.SharedLimitWindow)
		}
	}

	userService := service.NewUserService(userRepo)
	userController := controllers.NewUserController(userService)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	handler := router.New(router.Dependencies{
		Logger:          lg,
		UserController:  userController,
		GeneralLimiter:  middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		AuthRateLimiter: middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst),
		SharedLimit:     sharedLimit,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
