package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"mpt_backend/internal/app/config"
	"mpt_backend/internal/app/di"
	"mpt_backend/internal/app/router"
	assetadapters "mpt_backend/internal/feature/assets/adapters"
	assethandler "mpt_backend/internal/feature/assets/transport/handler"
	assetusecase "mpt_backend/internal/feature/assets/usecase"
	portfoliohandler "mpt_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "mpt_backend/internal/feature/portfolio/usecase"
	infradb "mpt_backend/internal/platform/db"
	"mpt_backend/internal/platform/externalapi/optimizer"
	platformhandler "mpt_backend/internal/platform/http/handler"
	"mpt_backend/internal/platform/http/middleware"
	"mpt_backend/internal/platform/logger"
	"mpt_backend/internal/platform/metrics"
	infraredis "mpt_backend/internal/platform/redis"
	"mpt_backend/internal/shared/ratelimiter"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	lg, err := logger.New(logger.LoadConfig(), os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	serverCfg, err := config.LoadServer()
	if err != nil {
		lg.Fatal().Err(err).Msg("invalid server config")
	}
	engineCfg, err := optimizer.LoadConfig()
	if err != nil {
		lg.Fatal().Err(err).Msg("invalid optimisation engine config")
	}

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to open database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to get sql.DB")
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			lg.Error().Err(err).Msg("failed to close database")
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if redisCfg := infraredis.LoadConfig(); redisCfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(redisCfg); err != nil {
			lg.Warn().Err(err).Msg("redis unavailable, rate limiting in-process")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					lg.Error().Err(err).Msg("failed to close redis client")
				}
			}()
		}
	}

	rec := metrics.New()

	// Repository
	assetRepo := assetadapters.NewAssetRepository(db)

	// Usecase
	engine := di.NewOptimizer(engineCfg, lg, rec)
	assetUC := assetusecase.NewAssetUsecase(assetRepo)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(assetRepo, engine, rec)

	// Handler
	assetH := assethandler.NewAssetHandler(assetUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)
	healthH := platformhandler.NewHealthHandler(sqlDB)

	limitCfg := ratelimiter.LoadConfig()
	r := router.NewRouter(assetH, portfolioH, healthH, router.Options{
		AllowedOrigins: middleware.AllowedOriginsFromEnv(),
		TrustedProxies: middleware.TrustedProxiesFromEnv(),
		Limiter:        di.NewOptimiseLimiter(rdb, limitCfg),
		RateWindow:     limitCfg.Window,
		Metrics:        rec,
	})

	srv := &http.Server{
		Addr:         serverCfg.Addr(),
		Handler:      r,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info().Str("addr", srv.Addr).Str("engine", engineCfg.BaseURL).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
