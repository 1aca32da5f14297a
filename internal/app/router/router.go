// Package router wires HTTP routes to their handlers.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	assethandler "mpt_backend/internal/feature/assets/transport/handler"
	portfoliohandler "mpt_backend/internal/feature/portfolio/transport/handler"
	platformhandler "mpt_backend/internal/platform/http/handler"
	"mpt_backend/internal/platform/http/middleware"
	"mpt_backend/internal/platform/metrics"
	"mpt_backend/internal/shared/ratelimiter"
)

// Options carries cross-cutting settings for the router.
type Options struct {
	AllowedOrigins []string            // CORS origins; empty disables CORS headers
	TrustedProxies []string            // proxies whose X-Forwarded-For is honoured; nil trusts none
	Limiter        ratelimiter.Limiter // guards /optimise routes; nil disables limiting
	RateWindow     time.Duration
	Metrics        *metrics.Recorder // nil disables /metrics
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(assets *assethandler.AssetHandler, portfolio *portfoliohandler.PortfolioHandler,
	health *platformhandler.HealthHandler, opts Options) *gin.Engine {
	r := gin.New()
	// ClientIP keys the rate limiter, so forwarded headers count only from known proxies.
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", opts.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}

	r.GET("/healthz", health.Live)
	r.HEAD("/healthz", health.Live)
	r.OPTIONS("/healthz", health.Live)
	r.GET("/readyz", health.Ready)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := r.Group("/api/assets")
	{
		api.GET("", assets.List)
		api.POST("", assets.Create)
		api.DELETE("", assets.DeleteAll)
		api.GET("/:id", assets.Get)
		api.PUT("/:id", assets.Update)
		api.DELETE("/:id", assets.Delete)
	}

	// Optimisation calls hit the external engine, so they are rate limited.
	optimise := api.Group("/optimise")
	if opts.Limiter != nil {
		optimise.Use(ratelimiter.Middleware(opts.Limiter, opts.RateWindow))
	}
	{
		optimise.GET("", portfolio.OptimiseAll)
		optimise.POST("", portfolio.OptimiseByIDs)
		optimise.POST("/chosen", portfolio.OptimiseChosen)
	}

	return r
}
